package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"contaluz/internal/dashboard"
	"contaluz/internal/domain"
	"contaluz/mocks"
)

func row(id int64, paid bool) dashboard.BillRow {
	return dashboard.BillRow{
		Bill: domain.Bill{
			ID:                 id,
			Company:            "CEMIG",
			InstallationNumber: "3001",
			Date:               "2026-01",
			Paid:               paid,
		},
	}
}

// autoConfirmer resolves every confirmation request with the given answer.
func autoConfirmer(t *testing.T, answer bool) *dashboard.Confirmer {
	t.Helper()
	confirm := dashboard.NewConfirmer()
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	go func() {
		for {
			select {
			case <-done:
				return
			case <-time.After(time.Millisecond):
			}
			for _, id := range confirm.Pending() {
				_ = confirm.Resolve(id, answer)
			}
		}
	}()
	return confirm
}

func TestState_Refresh_ReplacesWholesale(t *testing.T) {
	api := new(mocks.MockBillAPI)
	state := dashboard.NewState(api, dashboard.NewConfirmer())

	api.On("List", mock.Anything).Return([]dashboard.BillRow{row(1, false), row(2, true)}, nil).Once()
	api.On("Summary", mock.Anything).Return(&domain.Summary{TotalBills: 2}, nil).Once()

	require.NoError(t, state.Refresh(context.Background()))
	assert.Len(t, state.Rows(), 2)
	assert.Equal(t, 2, state.Summary().TotalBills)

	api.On("List", mock.Anything).Return([]dashboard.BillRow{row(3, false)}, nil).Once()
	api.On("Summary", mock.Anything).Return(&domain.Summary{TotalBills: 1}, nil).Once()

	require.NoError(t, state.Refresh(context.Background()))
	rows := state.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0].ID)
}

func TestState_Refresh_KeepsSnapshotOnFailure(t *testing.T) {
	api := new(mocks.MockBillAPI)
	state := dashboard.NewState(api, dashboard.NewConfirmer())

	api.On("List", mock.Anything).Return([]dashboard.BillRow{row(1, false)}, nil).Once()
	api.On("Summary", mock.Anything).Return(&domain.Summary{TotalBills: 1}, nil).Once()
	require.NoError(t, state.Refresh(context.Background()))

	api.On("List", mock.Anything).Return(nil, errors.New("server down")).Once()
	assert.Error(t, state.Refresh(context.Background()))

	rows := state.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, 1, state.Summary().TotalBills)
}

func TestState_TogglePaid_MirrorsServerRow(t *testing.T) {
	api := new(mocks.MockBillAPI)
	state := dashboard.NewState(api, dashboard.NewConfirmer())

	api.On("List", mock.Anything).Return([]dashboard.BillRow{row(1, false)}, nil).Once()
	api.On("Summary", mock.Anything).Return(&domain.Summary{}, nil).Once()
	require.NoError(t, state.Refresh(context.Background()))

	toggled := row(1, true)
	api.On("TogglePaid", mock.Anything, int64(1)).Return(&toggled, nil).Once()

	updated, err := state.TogglePaid(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, updated.Paid)
	assert.True(t, state.Rows()[0].Paid)

	back := row(1, false)
	api.On("TogglePaid", mock.Anything, int64(1)).Return(&back, nil).Once()

	updated, err = state.TogglePaid(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, updated.Paid)
	assert.False(t, state.Rows()[0].Paid)
}

func TestState_TogglePaid_FailureLeavesStateUntouched(t *testing.T) {
	api := new(mocks.MockBillAPI)
	state := dashboard.NewState(api, dashboard.NewConfirmer())

	api.On("List", mock.Anything).Return([]dashboard.BillRow{row(1, false)}, nil).Once()
	api.On("Summary", mock.Anything).Return(&domain.Summary{}, nil).Once()
	require.NoError(t, state.Refresh(context.Background()))

	api.On("TogglePaid", mock.Anything, int64(1)).Return(nil, errors.New("timeout"))

	_, err := state.TogglePaid(context.Background(), 1)
	assert.Error(t, err)
	assert.False(t, state.Rows()[0].Paid)
}

func TestState_SetDiscount_FailureReturnsLastKnownGood(t *testing.T) {
	api := new(mocks.MockBillAPI)
	state := dashboard.NewState(api, dashboard.NewConfirmer())

	discount := 20.0
	cached := row(1, false)
	cached.ContractedDiscount = &discount

	api.On("List", mock.Anything).Return([]dashboard.BillRow{cached}, nil).Once()
	api.On("Summary", mock.Anything).Return(&domain.Summary{}, nil).Once()
	require.NoError(t, state.Refresh(context.Background()))

	api.On("SetDiscount", mock.Anything, int64(1), 50.0).
		Return(nil, errors.New("INVALID_DISCOUNT: rejected"))

	got, err := state.SetDiscount(context.Background(), 1, 50)
	assert.Error(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 20.0, *got.ContractedDiscount)
	assert.Equal(t, 20.0, *state.Rows()[0].ContractedDiscount)
}

func TestState_Delete_Confirmed(t *testing.T) {
	api := new(mocks.MockBillAPI)
	state := dashboard.NewState(api, autoConfirmer(t, true))

	api.On("List", mock.Anything).Return([]dashboard.BillRow{row(1, false), row(2, false)}, nil).Once()
	api.On("Summary", mock.Anything).Return(&domain.Summary{}, nil).Once()
	require.NoError(t, state.Refresh(context.Background()))

	deleted := row(1, false)
	api.On("Delete", mock.Anything, int64(1)).Return(&deleted, nil)

	got, err := state.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	rows := state.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].ID)
}

func TestState_Delete_Declined(t *testing.T) {
	api := new(mocks.MockBillAPI)
	state := dashboard.NewState(api, autoConfirmer(t, false))

	api.On("List", mock.Anything).Return([]dashboard.BillRow{row(1, false)}, nil).Once()
	api.On("Summary", mock.Anything).Return(&domain.Summary{}, nil).Once()
	require.NoError(t, state.Refresh(context.Background()))

	_, err := state.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, dashboard.ErrDeleteDeclined)
	assert.Len(t, state.Rows(), 1)
	api.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestState_Delete_SilentRejectionKeepsRow(t *testing.T) {
	api := new(mocks.MockBillAPI)
	state := dashboard.NewState(api, autoConfirmer(t, true))

	api.On("List", mock.Anything).Return([]dashboard.BillRow{row(1, false)}, nil).Once()
	api.On("Summary", mock.Anything).Return(&domain.Summary{}, nil).Once()
	require.NoError(t, state.Refresh(context.Background()))

	// The server reports not-found when the delete affected no rows, which
	// also covers policy-level silent rejections.
	api.On("Delete", mock.Anything, int64(1)).Return(nil, errors.New("NOT_FOUND: bill not found"))

	_, err := state.Delete(context.Background(), 1)

	assert.Error(t, err)
	assert.Len(t, state.Rows(), 1)
}

func TestConfirmer_ResolveUnknownID(t *testing.T) {
	confirm := dashboard.NewConfirmer()

	err := confirm.Resolve([16]byte{1}, true)

	assert.ErrorIs(t, err, dashboard.ErrConfirmationPending)
}

func TestConfirmer_ContextCancelIsRefusal(t *testing.T) {
	confirm := dashboard.NewConfirmer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, approved := confirm.Request(ctx)
	assert.False(t, approved)
}
