package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  Status
		expectErr bool
	}{
		{name: "pending", raw: "En attente", expected: StatusPending},
		{name: "confirmed with accent", raw: "Confirmé", expected: StatusConfirmed},
		{name: "completed with accent", raw: "Terminé", expected: StatusCompleted},
		{name: "missing accent rejected", raw: "Confirme", expectErr: true},
		{name: "empty rejected", raw: "", expectErr: true},
		{name: "english label rejected", raw: "Confirmed", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, err := ParseStatus(tc.raw)
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrUnknownStatus)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, status)
			}
		})
	}
}

func TestAdvanceLifecycle(t *testing.T) {
	a := Appointment{ID: 1, Status: StatusPending, Amount: 89.0}

	event, err := Advance(&a)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, a.Status)
	require.NotNil(t, event, "first confirmation must fire billing")
	assert.Equal(t, 1, event.AppointmentID)
	assert.Equal(t, 89.0, event.Amount)
	assert.True(t, a.BillingTriggered)

	event, err = Advance(&a)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, a.Status)
	assert.Nil(t, event, "billing fires only once")

	// Advancing a completed appointment is a silent no-op.
	event, err = Advance(&a)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, a.Status)
	assert.Nil(t, event)
	assert.True(t, a.BillingTriggered)
}

func TestSetStatus(t *testing.T) {
	testCases := []struct {
		name        string
		start       Status
		billed      bool
		target      Status
		expectErr   error
		expectEvent bool
	}{
		{name: "pending to confirmed fires billing", start: StatusPending, target: StatusConfirmed, expectEvent: true},
		{name: "pending straight to completed fires billing", start: StatusPending, target: StatusCompleted, expectEvent: true},
		{name: "confirmed to completed already billed", start: StatusConfirmed, billed: true, target: StatusCompleted},
		{name: "same status no event when billed", start: StatusConfirmed, billed: true, target: StatusConfirmed},
		{name: "backward move rejected", start: StatusCompleted, billed: true, target: StatusConfirmed, expectErr: ErrBackwardTransition},
		{name: "backward to pending rejected", start: StatusConfirmed, billed: true, target: StatusPending, expectErr: ErrBackwardTransition},
		{name: "unknown target rejected", start: StatusPending, target: Status("Annulé"), expectErr: ErrUnknownStatus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := Appointment{ID: 7, Status: tc.start, Amount: 120.0, BillingTriggered: tc.billed}
			event, err := SetStatus(&a, tc.target)

			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				assert.Equal(t, tc.start, a.Status, "failed transition must not mutate")
				assert.Equal(t, tc.billed, a.BillingTriggered)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.target, a.Status)
			if tc.expectEvent {
				require.NotNil(t, event)
				assert.Equal(t, 7, event.AppointmentID)
				assert.Equal(t, 120.0, event.Amount)
			} else {
				assert.Nil(t, event)
			}
		})
	}
}

func TestBillingFiresAtMostOnce(t *testing.T) {
	a := Appointment{ID: 3, Status: StatusPending, Amount: 75.0}

	event, err := SetStatus(&a, StatusConfirmed)
	require.NoError(t, err)
	require.NotNil(t, event)

	// Re-assigning the same or a later status never re-fires.
	event, err = SetStatus(&a, StatusConfirmed)
	require.NoError(t, err)
	assert.Nil(t, event)

	event, err = SetStatus(&a, StatusCompleted)
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestFind(t *testing.T) {
	appointments := []Appointment{
		{ID: 1, Status: StatusPending},
		{ID: 2, Status: StatusConfirmed},
	}

	found, err := Find(appointments, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, found.ID)

	// Find returns a live pointer into the slice.
	found.Status = StatusCompleted
	assert.Equal(t, StatusCompleted, appointments[1].Status)

	_, err = Find(appointments, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAggregates(t *testing.T) {
	appointments := []Appointment{
		{ID: 1, Status: StatusPending, Amount: 50.0},
		{ID: 2, Status: StatusConfirmed, Amount: 89.0, BillingTriggered: true},
		{ID: 3, Status: StatusCompleted, Amount: 120.0, BillingTriggered: true},
	}

	assert.Equal(t, 2, ConfirmedCount(appointments), "pending excluded, completed still counts as confirmed")
	assert.Equal(t, 110.0, CommissionTotal(appointments))
	assert.Equal(t, 209.0, Revenue(appointments))
}

func TestAggregatesEmpty(t *testing.T) {
	assert.Equal(t, 0, ConfirmedCount(nil))
	assert.Equal(t, 0.0, CommissionTotal(nil))
	assert.Equal(t, 0.0, Revenue(nil))
}

func TestRevenueExcludesUnbilledConfirmed(t *testing.T) {
	appointments := []Appointment{
		{ID: 1, Status: StatusConfirmed, Amount: 89.0, BillingTriggered: false},
	}
	assert.Equal(t, 0.0, Revenue(appointments))
	assert.Equal(t, 1, ConfirmedCount(appointments), "count does not depend on the billing flag")
}
