package shopapi

import (
	"context"
	"net/url"

	"github.com/peakform/storefront/internal/models"
)

type bookedSlotsResponse struct {
	Success     bool     `json:"success"`
	BookedSlots []string `json:"bookedSlots"`
}

type userBookingsResponse struct {
	Success  bool             `json:"success"`
	Bookings []models.Booking `json:"bookings"`
}

// BookedSlots returns the already-taken slots for a (branch, date, facility)
// triple so the wizard can disable them.
func (c *Client) BookedSlots(ctx context.Context, branchID, date, facility string) ([]string, error) {
	q := url.Values{}
	q.Set("gym", branchID)
	q.Set("date", date)
	q.Set("facility", facility)

	var resp bookedSlotsResponse
	if err := c.get(ctx, "/api/bookings/booked-slots", q, &resp); err != nil {
		return nil, err
	}
	return resp.BookedSlots, nil
}

// UserBookings fetches the session user's facility bookings.
func (c *Client) UserBookings(ctx context.Context) ([]models.Booking, error) {
	var resp userBookingsResponse
	if err := c.get(ctx, "/api/bookings/user", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bookings, nil
}

// CreateBooking submits a facility booking.
func (c *Client) CreateBooking(ctx context.Context, b models.Booking) error {
	return c.post(ctx, "/api/bookings", b, nil)
}
