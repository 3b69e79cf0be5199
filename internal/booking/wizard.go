// Package booking implements the gym-facility booking wizard: a linear flow
// of branch, facility, date+slot and contact details, with forward gating on
// the current step and free backward movement.
package booking

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/peakform/storefront/internal/models"
	"github.com/peakform/storefront/internal/utils"
)

// Step is the wizard position.
type Step int

const (
	StepBranch Step = iota
	StepFacility
	StepDateSlot
	StepContact
)

// Facilities is the fixed catalog of bookable facilities.
var Facilities = []string{
	"Gym Floor",
	"Swimming Pool",
	"CrossFit Box",
	"Yoga Studio",
	"Sauna",
	"Boxing Ring",
}

// Slots is the fixed list of hourly booking windows.
var Slots = []string{
	"06:00 - 07:00",
	"07:00 - 08:00",
	"08:00 - 09:00",
	"09:00 - 10:00",
	"10:00 - 11:00",
	"11:00 - 12:00",
	"16:00 - 17:00",
	"17:00 - 18:00",
	"18:00 - 19:00",
	"19:00 - 20:00",
	"20:00 - 21:00",
	"21:00 - 22:00",
}

// Contact holds the final step's required fields.
type Contact struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=7"`
}

// API is the slice of the backend client the wizard uses.
type API interface {
	BookedSlots(ctx context.Context, branchID, date, facility string) ([]string, error)
	CreateBooking(ctx context.Context, b models.Booking) error
}

// Wizard is the booking flow state machine. All mutation happens on discrete
// user events; the booked-slot set is fetched per (branch, date, facility)
// and must be loaded before a slot can be selected.
type Wizard struct {
	mu       sync.Mutex
	api      API
	validate *validator.Validate

	step     Step
	branchID string
	facility string
	date     string
	slot     string
	contact  Contact

	booked    map[string]bool
	bookedKey string // triple the booked set was fetched for
}

// NewWizard constructs a wizard at the branch step.
func NewWizard(api API) *Wizard {
	return &Wizard{api: api, validate: validator.New()}
}

// Snapshot is the renderable wizard state.
type Snapshot struct {
	Step        Step     `json:"step"`
	BranchID    string   `json:"branch"`
	Facility    string   `json:"facility"`
	Date        string   `json:"date"`
	Slot        string   `json:"slot"`
	Contact     Contact  `json:"contact"`
	BookedSlots []string `json:"bookedSlots"`
}

// Snapshot returns the current state for rendering.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	var booked []string
	for _, s := range Slots {
		if w.booked[s] {
			booked = append(booked, s)
		}
	}
	return Snapshot{
		Step:        w.step,
		BranchID:    w.branchID,
		Facility:    w.facility,
		Date:        w.date,
		Slot:        w.slot,
		Contact:     w.contact,
		BookedSlots: booked,
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Next advances one step. The transition is gated on the current step's
// required fields being set.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepBranch:
		if w.branchID == "" {
			return fmt.Errorf("%w: select a branch", utils.ErrStepIncomplete)
		}
	case StepFacility:
		if w.facility == "" {
			return fmt.Errorf("%w: select a facility", utils.ErrStepIncomplete)
		}
	case StepDateSlot:
		if w.date == "" || w.slot == "" {
			return fmt.Errorf("%w: select a date and time slot", utils.ErrStepIncomplete)
		}
	case StepContact:
		return nil
	}
	w.step++
	return nil
}

// Back moves one step back. Always permitted; later-step selections are kept.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepBranch {
		w.step--
	}
}

// SelectBranch sets the branch. A branch change invalidates a previously
// chosen slot and the fetched booked-slot set.
func (w *Wizard) SelectBranch(branchID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if branchID != w.branchID {
		w.slot = ""
		w.booked = nil
		w.bookedKey = ""
	}
	w.branchID = branchID
}

// SelectFacility sets the facility, which must be in the fixed catalog. A
// facility change invalidates a previously chosen slot.
func (w *Wizard) SelectFacility(name string) error {
	found := false
	for _, f := range Facilities {
		if f == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: unknown facility %q", utils.ErrInvalidRequest, name)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if name != w.facility {
		w.slot = ""
		w.booked = nil
		w.bookedKey = ""
	}
	w.facility = name
	return nil
}

// SelectDate sets the booking date (YYYY-MM-DD). The booked set is per date,
// so a date change forces a reload before the next slot selection.
func (w *Wizard) SelectDate(date string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if date != w.date {
		w.booked = nil
		w.bookedKey = ""
	}
	w.date = date
}

// LoadSlots fetches the booked-slot set for the current (branch, date,
// facility) triple. A previously chosen slot that turns out to be taken is
// cleared.
func (w *Wizard) LoadSlots(ctx context.Context) error {
	w.mu.Lock()
	branch, date, facility := w.branchID, w.date, w.facility
	w.mu.Unlock()

	if branch == "" || date == "" || facility == "" {
		return fmt.Errorf("%w: branch, date and facility are required first", utils.ErrStepIncomplete)
	}

	slots, err := w.api.BookedSlots(ctx, branch, date, facility)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.booked = make(map[string]bool, len(slots))
	for _, s := range slots {
		w.booked[s] = true
	}
	w.bookedKey = tripleKey(branch, date, facility)
	if w.slot != "" && w.booked[w.slot] {
		log.Info().Str("slot", w.slot).Msg("previously chosen slot is now taken")
		w.slot = ""
	}
	return nil
}

// SelectSlot chooses a time slot. The slot must be in the fixed list, the
// booked set must have been loaded for the current triple, and a slot in
// that set is rejected.
func (w *Wizard) SelectSlot(slot string) error {
	found := false
	for _, s := range Slots {
		if s == slot {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: unknown slot %q", utils.ErrInvalidRequest, slot)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.bookedKey != tripleKey(w.branchID, w.date, w.facility) {
		return fmt.Errorf("%w: availability not loaded", utils.ErrStepIncomplete)
	}
	if w.booked[slot] {
		return utils.ErrSlotUnavailable
	}
	w.slot = slot
	return nil
}

// SetContact stores the contact details for the final step.
func (w *Wizard) SetContact(c Contact) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.contact = c
}

// Submit validates the full selection and sends the booking. On backend
// rejection the error is returned and no state is cleared, leaving the user
// on the final step. On success the wizard resets.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.branchID == "" || w.facility == "" || w.date == "" || w.slot == "" {
		w.mu.Unlock()
		return fmt.Errorf("%w: booking selection incomplete", utils.ErrValidationFailed)
	}
	b := models.Booking{
		BranchID: w.branchID,
		Facility: w.facility,
		Date:     w.date,
		Slot:     w.slot,
		Name:     w.contact.Name,
		Email:    w.contact.Email,
		Phone:    w.contact.Phone,
	}
	contact := w.contact
	w.mu.Unlock()

	if err := w.validate.Struct(contact); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrValidationFailed, err)
	}

	if err := w.api.CreateBooking(ctx, b); err != nil {
		return err
	}

	log.Info().Str("facility", b.Facility).Str("date", b.Date).Str("slot", b.Slot).Msg("booking submitted")
	w.Reset()
	return nil
}

// Reset returns the wizard to a fresh branch step.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepBranch
	w.branchID = ""
	w.facility = ""
	w.date = ""
	w.slot = ""
	w.contact = Contact{}
	w.booked = nil
	w.bookedKey = ""
}

func tripleKey(branch, date, facility string) string {
	return branch + "|" + date + "|" + facility
}
