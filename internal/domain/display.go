package domain

// Display attributes are total functions over the closed status enum,
// defined once and shared instead of re-declared per screen.

// StatusLabel returns the user-facing label for a reservation status
func StatusLabel(s ReservationStatus) string {
	switch s {
	case StatusActive:
		return "Ativa"
	case StatusCancelled:
		return "Cancelada"
	default:
		return "Desconhecida"
	}
}

// StatusColor returns the ANSI color name used by terminal renderings
func StatusColor(s ReservationStatus) string {
	switch s {
	case StatusActive:
		return "green"
	case StatusCancelled:
		return "red"
	default:
		return "yellow"
	}
}
