package models

// BookingStatus enumerates the server-side states of a facility booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a gym-facility reservation. Server-owned after submission.
type Booking struct {
	ID       string        `json:"_id,omitempty"`
	BranchID string        `json:"gym"`
	Facility string        `json:"facility"`
	Date     string        `json:"date"` // YYYY-MM-DD
	Slot     string        `json:"slot"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Phone    string        `json:"phone"`
	Status   BookingStatus `json:"status,omitempty"`
}

// Branch is a gym location offering bookable facilities.
type Branch struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}
