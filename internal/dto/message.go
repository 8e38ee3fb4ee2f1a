package dto

// MessageDTO represents a data transfer object (DTO) for a plain message.
type MessageDTO struct {
	Message string `json:"message"`
}

// HealthDTO represents a data transfer object (DTO) for a health check.
type HealthDTO struct {
	Status string `json:"status"`
}
