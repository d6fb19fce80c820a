package models

// SearchRequest is the resolver input, as received from the CRUD layer.
// AgentCode is optional; the other fields are required.
type SearchRequest struct {
	ServerID      string `json:"serverId" validate:"required"`
	CallTimestamp string `json:"callTimestamp" validate:"required"` // ISO-8601, e.g. "2025-10-15T21:54:06"
	ContactNumber string `json:"contactNumber" validate:"required"`
	AgentCode     string `json:"agentCode,omitempty"`
}

// SearchResult is the resolver output. An empty Audios list with
// Success=true is a valid outcome ("no audio found"), not a fault.
type SearchResult struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Audios      []AudioDescriptor `json:"audios"`
	TotalAudios int               `json:"totalAudios"`
}
