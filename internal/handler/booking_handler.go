package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/peakform/storefront/internal/booking"
	"github.com/peakform/storefront/internal/models"
	"github.com/peakform/storefront/internal/notify"
	"github.com/peakform/storefront/internal/utils"
	"github.com/peakform/storefront/pkg/shopapi"
)

// Branches is the fixed catalog of gym locations offering bookable facilities.
var Branches = []models.Branch{
	{ID: "pf-andheri", Name: "PeakForm Andheri", City: "Mumbai", Address: "14 Veera Desai Road"},
	{ID: "pf-koramangala", Name: "PeakForm Koramangala", City: "Bengaluru", Address: "80 Feet Road, 6th Block"},
	{ID: "pf-gurgaon", Name: "PeakForm Cyber Hub", City: "Gurgaon", Address: "DLF Phase 2"},
}

// BookingHandler drives the facility booking wizard and the bookings page.
type BookingHandler struct {
	wizard   *booking.Wizard
	api      *shopapi.Client
	notifier notify.Notifier
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(wizard *booking.Wizard, api *shopapi.Client, notifier notify.Notifier) *BookingHandler {
	return &BookingHandler{wizard: wizard, api: api, notifier: notifier}
}

// Page returns the wizard state plus the fixed branch, facility and slot catalogs.
func (h *BookingHandler) Page(c *gin.Context) {
	utils.Success(c, 200, "Booking page", gin.H{
		"wizard":     h.wizard.Snapshot(),
		"branches":   Branches,
		"facilities": booking.Facilities,
		"slots":      booking.Slots,
	})
}

type selectRequest struct {
	Value string `json:"value" binding:"required"`
}

// SelectBranch sets the wizard branch.
func (h *BookingHandler) SelectBranch(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "value is required")
		return
	}
	for _, b := range Branches {
		if b.ID == req.Value {
			h.wizard.SelectBranch(req.Value)
			utils.Success(c, 200, "Branch selected", h.wizard.Snapshot())
			return
		}
	}
	utils.Error(c, 400, "INVALID_REQUEST", "Unknown branch")
}

// SelectFacility sets the wizard facility.
func (h *BookingHandler) SelectFacility(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "value is required")
		return
	}
	if err := h.wizard.SelectFacility(req.Value); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", err.Error())
		return
	}
	utils.Success(c, 200, "Facility selected", h.wizard.Snapshot())
}

// SelectDate sets the booking date and refreshes slot availability.
func (h *BookingHandler) SelectDate(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "value is required")
		return
	}
	h.wizard.SelectDate(req.Value)
	if err := h.wizard.LoadSlots(c.Request.Context()); err != nil {
		h.notifier.Notify(notify.LevelError, "Could not load slot availability")
		utils.Error(c, 502, "BACKEND_UNAVAILABLE", err.Error())
		return
	}
	utils.Success(c, 200, "Date selected", h.wizard.Snapshot())
}

// SelectSlot chooses a time slot; already-booked slots are rejected.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "value is required")
		return
	}
	if err := h.wizard.SelectSlot(req.Value); err != nil {
		if errors.Is(err, utils.ErrSlotUnavailable) {
			utils.Error(c, 409, "SLOT_UNAVAILABLE", "That slot is already booked")
			return
		}
		utils.Error(c, 400, "INVALID_REQUEST", err.Error())
		return
	}
	utils.Success(c, 200, "Slot selected", h.wizard.Snapshot())
}

// Contact stores the final step's contact details.
func (h *BookingHandler) Contact(c *gin.Context) {
	var contact booking.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "name, email and phone are required")
		return
	}
	h.wizard.SetContact(contact)
	utils.Success(c, 200, "Contact saved", h.wizard.Snapshot())
}

// Next advances the wizard; Back moves it one step back.
func (h *BookingHandler) Next(c *gin.Context) {
	if err := h.wizard.Next(); err != nil {
		utils.Error(c, 400, "STEP_INCOMPLETE", err.Error())
		return
	}
	utils.Success(c, 200, "Step advanced", h.wizard.Snapshot())
}

// Back moves the wizard one step back; always permitted.
func (h *BookingHandler) Back(c *gin.Context) {
	h.wizard.Back()
	utils.Success(c, 200, "Step back", h.wizard.Snapshot())
}

// Submit sends the booking. On rejection the wizard state is left untouched
// so the user stays on the final step.
func (h *BookingHandler) Submit(c *gin.Context) {
	if err := h.wizard.Submit(c.Request.Context()); err != nil {
		if errors.Is(err, utils.ErrValidationFailed) {
			utils.Error(c, 400, "VALIDATION_FAILED", err.Error())
			return
		}
		h.notifier.Notify(notify.LevelError, "Could not submit your booking")
		utils.Error(c, 502, "BACKEND_REJECTED", err.Error())
		return
	}
	h.notifier.Notify(notify.LevelSuccess, "Booking confirmed")
	utils.Success(c, 200, "Booking submitted", gin.H{"redirect": "/bookings"})
}

// List returns the session user's bookings.
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.api.UserBookings(c.Request.Context())
	if err != nil {
		utils.Error(c, 502, "BACKEND_UNAVAILABLE", "Could not load your bookings")
		return
	}
	utils.Success(c, 200, "Bookings retrieved successfully", gin.H{"bookings": bookings})
}
