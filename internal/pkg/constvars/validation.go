package constvars

var CustomValidationErrorMessages = map[string]string{
	"required":             "is required",
	"min":                  "must be at least %s",
	"max":                  "must be at most %s",
	"oneof":                "must be one of [%s]",
	"datetime":             "must be a date in %s format",
	"printascii":           "must contain only printable characters",
	"required_without_all": "is required when no other search field is given",
}

var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"datetime": true,
}
