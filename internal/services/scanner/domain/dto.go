package domain

import "strconv"

// FormInput is the urlencoded form posted by the front end.
// Resolution is parsed by the service, which tolerates surrounding spaces
type FormInput struct {
	Date            string `form:"date" validate:"required,max=128"`
	Name            string `form:"name" validate:"required,max=128"`
	Mode            string `form:"mode" validate:"required"`
	Resolution      string `form:"resolution" validate:"required,max=16"`
	Source          string `form:"source" validate:"required"`
	Tags            string `form:"tags" validate:"max=512"`
	Correspondent   string `form:"correspondent" validate:"max=256"`
	SendToPaperless string `form:"send_to_paperless"`
}

// Request converts the form into a ScanRequest; only the literal "on" forwards to Paperless
func (in FormInput) Request() ScanRequest {
	return ScanRequest{
		Date:            in.Date,
		Name:            in.Name,
		Mode:            in.Mode,
		Resolution:      in.Resolution,
		Source:          in.Source,
		Tags:            in.Tags,
		Correspondent:   in.Correspondent,
		SendToPaperless: in.SendToPaperless == "on",
	}
}

// JobInput is the JSON body of POST /scanner/jobs. Date defaults to now
type JobInput struct {
	Date            string `json:"date,omitempty" validate:"max=128" example:"2024-01-01-00-00-00"`
	Name            string `json:"name" validate:"required,max=128" example:"invoice"`
	Mode            string `json:"mode" validate:"required" example:"Color"`
	Resolution      int    `json:"resolution" validate:"required,min=1" example:"300"`
	Source          string `json:"source" validate:"required" example:"ADF Front"`
	Tags            string `json:"tags,omitempty" validate:"max=512" example:"inbox,tax"`
	Correspondent   string `json:"correspondent,omitempty" validate:"max=256" example:"ACME"`
	SendToPaperless bool   `json:"send_to_paperless,omitempty" example:"true"`
}

// Request converts the JSON body into a ScanRequest
func (in JobInput) Request() ScanRequest {
	return ScanRequest{
		Date:            in.Date,
		Name:            in.Name,
		Mode:            in.Mode,
		Resolution:      strconv.Itoa(in.Resolution),
		Source:          in.Source,
		Tags:            in.Tags,
		Correspondent:   in.Correspondent,
		SendToPaperless: in.SendToPaperless,
	}
}
