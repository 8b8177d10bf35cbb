package requests

type SearchPatients struct {
	Name       string `json:"name" validate:"omitempty,min=2,max=100"`
	Identifier string `json:"identifier" validate:"omitempty,max=100"`
	BirthDate  string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=100"`
}
