package domain

// Space represents a bookable amenity area of the condominium.
// Immutable once loaded in a session; sourced entirely from the backend.
type Space struct {
	ID          int64
	Name        string
	Capacity    int
	Description *string
}
