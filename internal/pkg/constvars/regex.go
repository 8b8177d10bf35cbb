package constvars

const (
	RegexFHIRID = `^[A-Za-z0-9\-\.]{1,64}$`
)
