package dto

type ResolveAlertRequest struct {
	Note string `json:"note,omitempty" validate:"max=1000"`
}
