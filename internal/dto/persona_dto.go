package dto

type PersonaResponse struct {
	Id          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsDefault   bool   `json:"is_default"`
}
