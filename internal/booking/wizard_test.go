package booking_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakform/storefront/internal/booking"
	"github.com/peakform/storefront/internal/models"
	"github.com/peakform/storefront/internal/utils"
)

type fakeBookingAPI struct {
	mu        sync.Mutex
	booked    []string
	bookedErr error
	createErr error
	created   []models.Booking
}

func (f *fakeBookingAPI) BookedSlots(_ context.Context, _, _, _ string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.booked, f.bookedErr
}

func (f *fakeBookingAPI) CreateBooking(_ context.Context, b models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	return nil
}

// readyWizard builds a wizard positioned at the contact step with a full
// valid selection.
func readyWizard(t *testing.T, api *fakeBookingAPI) *booking.Wizard {
	t.Helper()
	w := booking.NewWizard(api)
	w.SelectBranch("pf-andheri")
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectFacility("Swimming Pool"))
	require.NoError(t, w.Next())
	w.SelectDate("2026-09-15")
	require.NoError(t, w.LoadSlots(context.Background()))
	require.NoError(t, w.SelectSlot("07:00 - 08:00"))
	require.NoError(t, w.Next())
	w.SetContact(booking.Contact{Name: "Asha", Email: "asha@example.com", Phone: "9998887771"})
	return w
}

func TestNextGatesOnCurrentStep(t *testing.T) {
	w := booking.NewWizard(&fakeBookingAPI{})

	assert.ErrorIs(t, w.Next(), utils.ErrStepIncomplete)
	w.SelectBranch("pf-andheri")
	require.NoError(t, w.Next())
	assert.Equal(t, booking.StepFacility, w.Step())

	assert.ErrorIs(t, w.Next(), utils.ErrStepIncomplete)
	require.NoError(t, w.SelectFacility("Gym Floor"))
	require.NoError(t, w.Next())
	assert.Equal(t, booking.StepDateSlot, w.Step())

	w.SelectDate("2026-09-15")
	assert.ErrorIs(t, w.Next(), utils.ErrStepIncomplete, "date without slot does not advance")
}

func TestNextStopsAtContactStep(t *testing.T) {
	w := readyWizard(t, &fakeBookingAPI{})
	require.Equal(t, booking.StepContact, w.Step())
	require.NoError(t, w.Next())
	assert.Equal(t, booking.StepContact, w.Step())
}

func TestBackAlwaysAllowedAndKeepsSelections(t *testing.T) {
	w := readyWizard(t, &fakeBookingAPI{})

	w.Back()
	assert.Equal(t, booking.StepDateSlot, w.Step())
	snap := w.Snapshot()
	assert.Equal(t, "07:00 - 08:00", snap.Slot)
	assert.Equal(t, "Swimming Pool", snap.Facility)

	w.Back()
	w.Back()
	assert.Equal(t, booking.StepBranch, w.Step())
	w.Back()
	assert.Equal(t, booking.StepBranch, w.Step(), "back at the first step is a no-op")
}

func TestSelectFacilityRejectsUnknown(t *testing.T) {
	w := booking.NewWizard(&fakeBookingAPI{})
	assert.ErrorIs(t, w.SelectFacility("Trampoline Park"), utils.ErrInvalidRequest)
}

func TestSelectSlotRequiresLoadedAvailability(t *testing.T) {
	w := booking.NewWizard(&fakeBookingAPI{})
	w.SelectBranch("pf-andheri")
	require.NoError(t, w.SelectFacility("Sauna"))
	w.SelectDate("2026-09-15")

	assert.ErrorIs(t, w.SelectSlot("07:00 - 08:00"), utils.ErrStepIncomplete)
}

func TestSelectSlotRejectsBooked(t *testing.T) {
	api := &fakeBookingAPI{booked: []string{"07:00 - 08:00"}}
	w := booking.NewWizard(api)
	w.SelectBranch("pf-andheri")
	require.NoError(t, w.SelectFacility("Sauna"))
	w.SelectDate("2026-09-15")
	require.NoError(t, w.LoadSlots(context.Background()))

	assert.ErrorIs(t, w.SelectSlot("07:00 - 08:00"), utils.ErrSlotUnavailable)
	require.NoError(t, w.SelectSlot("08:00 - 09:00"))
	assert.ErrorIs(t, w.SelectSlot("03:00 - 04:00"), utils.ErrInvalidRequest, "slot must be in the fixed list")
}

func TestBranchChangeInvalidatesSlot(t *testing.T) {
	w := readyWizard(t, &fakeBookingAPI{})

	w.SelectBranch("pf-gurgaon")
	snap := w.Snapshot()
	assert.Empty(t, snap.Slot)
	assert.ErrorIs(t, w.SelectSlot("07:00 - 08:00"), utils.ErrStepIncomplete, "availability must be reloaded")
}

func TestFacilityChangeInvalidatesSlot(t *testing.T) {
	w := readyWizard(t, &fakeBookingAPI{})

	require.NoError(t, w.SelectFacility("Yoga Studio"))
	assert.Empty(t, w.Snapshot().Slot)
}

func TestReselectingSameBranchKeepsSlot(t *testing.T) {
	w := readyWizard(t, &fakeBookingAPI{})

	w.SelectBranch("pf-andheri")
	assert.Equal(t, "07:00 - 08:00", w.Snapshot().Slot)
}

func TestLoadSlotsClearsNowTakenSlot(t *testing.T) {
	api := &fakeBookingAPI{}
	w := readyWizard(t, api)

	api.mu.Lock()
	api.booked = []string{"07:00 - 08:00"}
	api.mu.Unlock()

	require.NoError(t, w.LoadSlots(context.Background()))
	assert.Empty(t, w.Snapshot().Slot)
	assert.Equal(t, []string{"07:00 - 08:00"}, w.Snapshot().BookedSlots)
}

func TestLoadSlotsRequiresTriple(t *testing.T) {
	w := booking.NewWizard(&fakeBookingAPI{})
	w.SelectBranch("pf-andheri")
	assert.ErrorIs(t, w.LoadSlots(context.Background()), utils.ErrStepIncomplete)
}

func TestSubmitValidatesContact(t *testing.T) {
	api := &fakeBookingAPI{}
	w := readyWizard(t, api)
	w.SetContact(booking.Contact{Name: "Asha", Email: "not-an-email", Phone: "9998887771"})

	err := w.Submit(context.Background())

	assert.ErrorIs(t, err, utils.ErrValidationFailed)
	assert.Empty(t, api.created)
	snap := w.Snapshot()
	assert.Equal(t, booking.StepContact, snap.Step, "state preserved on validation failure")
	assert.Equal(t, "07:00 - 08:00", snap.Slot)
}

func TestSubmitBackendRejectionPreservesState(t *testing.T) {
	api := &fakeBookingAPI{createErr: utils.ErrBackendRejected}
	w := readyWizard(t, api)

	assert.ErrorIs(t, w.Submit(context.Background()), utils.ErrBackendRejected)
	snap := w.Snapshot()
	assert.Equal(t, "pf-andheri", snap.BranchID)
	assert.Equal(t, "07:00 - 08:00", snap.Slot)
	assert.Equal(t, "Asha", snap.Contact.Name)
}

func TestSubmitSuccessResetsWizard(t *testing.T) {
	api := &fakeBookingAPI{}
	w := readyWizard(t, api)

	require.NoError(t, w.Submit(context.Background()))

	require.Len(t, api.created, 1)
	b := api.created[0]
	assert.Equal(t, "pf-andheri", b.BranchID)
	assert.Equal(t, "Swimming Pool", b.Facility)
	assert.Equal(t, "2026-09-15", b.Date)
	assert.Equal(t, "07:00 - 08:00", b.Slot)
	assert.Equal(t, "asha@example.com", b.Email)

	snap := w.Snapshot()
	assert.Equal(t, booking.StepBranch, snap.Step)
	assert.Empty(t, snap.BranchID)
	assert.Empty(t, snap.Slot)
	assert.Empty(t, snap.Contact.Name)
}
