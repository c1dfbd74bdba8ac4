package entity

// Persona is a named system-prompt profile ("brain") a session is bound to.
type Persona struct {
	Id           string `json:"id" yaml:"id"`
	DisplayName  string `json:"display_name" yaml:"display_name"`
	SystemPrompt string `json:"system_prompt" yaml:"system_prompt"`
}
