package dto

// ErrorDTO represents a data transfer object (DTO) for an error.
type ErrorDTO struct {
	Detail string `json:"detail"`
}
