package medicationreminder

import (
	"context"
	"testing"
	"time"

	apperrors "careportal-reminders/internal/common/errors"
	"careportal-reminders/internal/common/logger"
	"careportal-reminders/internal/models"
	"careportal-reminders/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockStore struct {
	SchedulesFunc func(ctx context.Context) ([]models.MedicationSchedule, error)
}

func (m *MockStore) RemindableMedicationSchedules(ctx context.Context) ([]models.MedicationSchedule, error) {
	return m.SchedulesFunc(ctx)
}

type MockMarkers struct {
	ExistsFunc func(ctx context.Context, marker models.DoseMarker) (bool, error)
	PutFunc    func(ctx context.Context, marker models.DoseMarker, sentAt time.Time) error

	Written []models.DoseMarker
}

func (m *MockMarkers) Exists(ctx context.Context, marker models.DoseMarker) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, marker)
	}
	return false, nil
}

func (m *MockMarkers) Put(ctx context.Context, marker models.DoseMarker, sentAt time.Time) error {
	m.Written = append(m.Written, marker)
	if m.PutFunc != nil {
		return m.PutFunc(ctx, marker, sentAt)
	}
	return nil
}

type dispatchCall struct {
	RecipientID string
	Args        notify.Args
}

type MockDispatcher struct {
	DispatchFunc func(ctx context.Context, recipientID string, kind models.RecipientKind, tpl notify.Kind, args notify.Args) notify.Result

	Calls []dispatchCall
}

func (m *MockDispatcher) Dispatch(ctx context.Context, recipientID string, kind models.RecipientKind, tpl notify.Kind, args notify.Args) notify.Result {
	m.Calls = append(m.Calls, dispatchCall{RecipientID: recipientID, Args: args})
	if m.DispatchFunc != nil {
		return m.DispatchFunc(ctx, recipientID, kind, tpl, args)
	}
	return notify.Result{Success: true, NotificationID: "n-1"}
}

func dateOf(year int, month time.Month, day int) models.Date {
	return models.Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func schedulesReturning(scheds ...models.MedicationSchedule) *MockStore {
	return &MockStore{
		SchedulesFunc: func(ctx context.Context) ([]models.MedicationSchedule, error) {
			return scheds, nil
		},
	}
}

func newTestScanner(st *MockStore, markers *MockMarkers, disp *MockDispatcher, now time.Time) *Scanner {
	s := New(st, markers, disp, logger.NewNoOpLogger())
	s.now = func() time.Time { return now }
	return s
}

func activeSchedule(times ...string) models.MedicationSchedule {
	return models.MedicationSchedule{
		ID:              "m-1",
		PatientID:       "p-1",
		Name:            "Metformin",
		Dosage:          "500mg",
		TimesOfDay:      times,
		StartDate:       dateOf(2025, time.January, 1),
		ReminderEnabled: true,
	}
}

// ==========================
// Tests
// ==========================

func TestScan_DoseDueFiresAndWritesMarker(t *testing.T) {
	// 08:03, three minutes past the 08:00 dose.
	now := time.Date(2025, time.March, 14, 8, 3, 0, 0, time.UTC)

	st := schedulesReturning(activeSchedule("08:00 AM"))
	markers := &MockMarkers{}
	disp := &MockDispatcher{}
	sc := newTestScanner(st, markers, disp, now)

	require.NoError(t, sc.Scan(context.Background()))

	require.Len(t, disp.Calls, 1)
	assert.Equal(t, "p-1", disp.Calls[0].RecipientID)
	assert.Equal(t, "Metformin", disp.Calls[0].Args.MedicationName)
	assert.Equal(t, "08:00 AM", disp.Calls[0].Args.DoseTime)

	require.Len(t, markers.Written, 1)
	assert.Equal(t, "lastReminder_m-1_08:00 AM_2025-03-14", markers.Written[0].Key())
}

func TestScan_DoseWindowBounds(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		fires bool
	}{
		{"five minutes before", time.Date(2025, time.March, 14, 7, 55, 0, 0, time.UTC), true},
		{"exact", time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC), true},
		{"five minutes after", time.Date(2025, time.March, 14, 8, 5, 0, 0, time.UTC), true},
		{"six minutes after", time.Date(2025, time.March, 14, 8, 6, 0, 0, time.UTC), false},
		{"six minutes before", time.Date(2025, time.March, 14, 7, 54, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := schedulesReturning(activeSchedule("08:00 AM"))
			disp := &MockDispatcher{}
			sc := newTestScanner(st, &MockMarkers{}, disp, tt.now)

			require.NoError(t, sc.Scan(context.Background()))
			if tt.fires {
				assert.Len(t, disp.Calls, 1)
			} else {
				assert.Empty(t, disp.Calls)
			}
		})
	}
}

func TestScan_MarkerSuppressesRepeat(t *testing.T) {
	now := time.Date(2025, time.March, 14, 8, 4, 0, 0, time.UTC)

	st := schedulesReturning(activeSchedule("08:00 AM"))
	markers := &MockMarkers{
		ExistsFunc: func(ctx context.Context, marker models.DoseMarker) (bool, error) {
			return true, nil
		},
	}
	disp := &MockDispatcher{}
	sc := newTestScanner(st, markers, disp, now)

	require.NoError(t, sc.Scan(context.Background()))
	assert.Empty(t, disp.Calls)
	assert.Empty(t, markers.Written)
}

func TestScan_NextDayFiresAgain(t *testing.T) {
	// Yesterday's marker exists; today's does not.
	sentDates := map[string]bool{"lastReminder_m-1_08:00 AM_2025-03-14": true}
	markers := &MockMarkers{
		ExistsFunc: func(ctx context.Context, marker models.DoseMarker) (bool, error) {
			return sentDates[marker.Key()], nil
		},
	}

	now := time.Date(2025, time.March, 15, 8, 2, 0, 0, time.UTC)
	st := schedulesReturning(activeSchedule("08:00 AM"))
	disp := &MockDispatcher{}
	sc := newTestScanner(st, markers, disp, now)

	require.NoError(t, sc.Scan(context.Background()))
	require.Len(t, disp.Calls, 1)
	require.Len(t, markers.Written, 1)
	assert.Equal(t, "2025-03-15", markers.Written[0].Date)
}

func TestScan_InactiveScheduleSkipped(t *testing.T) {
	now := time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC)

	notStarted := activeSchedule("08:00 AM")
	notStarted.ID = "m-future"
	notStarted.StartDate = dateOf(2025, time.April, 1)

	ended := activeSchedule("08:00 AM")
	ended.ID = "m-ended"
	end := dateOf(2025, time.February, 1)
	ended.EndDate = &end

	st := schedulesReturning(notStarted, ended)
	disp := &MockDispatcher{}
	sc := newTestScanner(st, &MockMarkers{}, disp, now)

	require.NoError(t, sc.Scan(context.Background()))
	assert.Empty(t, disp.Calls)
}

func TestScan_MalformedDoseTimeSkipsEntryOnly(t *testing.T) {
	now := time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC)

	st := schedulesReturning(activeSchedule("not-a-time", "08:00 AM"))
	disp := &MockDispatcher{}
	sc := newTestScanner(st, &MockMarkers{}, disp, now)

	require.NoError(t, sc.Scan(context.Background()))
	require.Len(t, disp.Calls, 1)
	assert.Equal(t, "08:00 AM", disp.Calls[0].Args.DoseTime)
}

func TestScan_DispatchFailureWritesNoMarker(t *testing.T) {
	now := time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC)

	st := schedulesReturning(activeSchedule("08:00 AM"))
	markers := &MockMarkers{}
	disp := &MockDispatcher{
		DispatchFunc: func(ctx context.Context, recipientID string, kind models.RecipientKind, tpl notify.Kind, args notify.Args) notify.Result {
			return notify.Result{Err: apperrors.NewChannelDeliveryFailureError(assert.AnError)}
		},
	}
	sc := newTestScanner(st, markers, disp, now)

	require.NoError(t, sc.Scan(context.Background()))
	assert.Empty(t, markers.Written, "no marker may be written for a failed send")
}

func TestScan_MarkerLookupFailureAbortsPass(t *testing.T) {
	now := time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC)

	st := schedulesReturning(activeSchedule("08:00 AM"))
	markers := &MockMarkers{
		ExistsFunc: func(ctx context.Context, marker models.DoseMarker) (bool, error) {
			return false, apperrors.NewStoreUnavailableError(assert.AnError)
		},
	}
	disp := &MockDispatcher{}
	sc := newTestScanner(st, markers, disp, now)

	err := sc.Scan(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStoreUnavailable))
	assert.Empty(t, disp.Calls)
}

func TestScan_MarkerWriteFailureAbortsPass(t *testing.T) {
	now := time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC)

	st := schedulesReturning(activeSchedule("08:00 AM"))
	markers := &MockMarkers{
		PutFunc: func(ctx context.Context, marker models.DoseMarker, sentAt time.Time) error {
			return apperrors.NewStoreUnavailableError(assert.AnError)
		},
	}
	disp := &MockDispatcher{}
	sc := newTestScanner(st, markers, disp, now)

	err := sc.Scan(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStoreUnavailable))
	assert.Len(t, disp.Calls, 1)
}

func TestScan_StoreUnavailable(t *testing.T) {
	st := &MockStore{
		SchedulesFunc: func(ctx context.Context) ([]models.MedicationSchedule, error) {
			return nil, apperrors.NewStoreUnavailableError(assert.AnError)
		},
	}
	disp := &MockDispatcher{}
	sc := newTestScanner(st, &MockMarkers{}, disp, time.Now())

	err := sc.Scan(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStoreUnavailable))
	assert.Empty(t, disp.Calls)
}
