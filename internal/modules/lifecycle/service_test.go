package lifecycle

import (
	"context"
	"testing"
	"time"

	"altoev/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repositories
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetActiveForSweep(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatusByReservationID(ctx context.Context, reservationID string, status domain.ReservationStatus) error {
	args := m.Called(ctx, reservationID, status)
	return args.Error(0)
}

func activeReservation(id string, status domain.ReservationStatus, start, end time.Time) domain.Reservation {
	return domain.Reservation{
		ReservationID: id,
		Status:        status,
		StartDateTime: &start,
		EndDateTime:   &end,
	}
}

func sweepService(repo *MockReservationRepository, now time.Time) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_Sweep_BeforeStart_NoOp(t *testing.T) {
	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 15, 0, 0, 0, time.UTC)

	repo := new(MockReservationRepository)
	repo.On("GetActiveForSweep", mock.Anything).Return([]domain.Reservation{
		activeReservation("100", domain.StatusBooked, start, end),
	}, nil)

	svc := sweepService(repo, start.Add(-time.Hour))
	err := svc.Sweep(context.Background())

	require.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateStatusByReservationID", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Sweep_StartReached_Ongoing(t *testing.T) {
	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 15, 0, 0, 0, time.UTC)

	repo := new(MockReservationRepository)
	repo.On("GetActiveForSweep", mock.Anything).Return([]domain.Reservation{
		activeReservation("100", domain.StatusBooked, start, end),
	}, nil)
	repo.On("UpdateStatusByReservationID", mock.Anything, "100", domain.StatusOngoing).Return(nil)

	// boundary is inclusive: at exactly the start instant the rental is on
	svc := sweepService(repo, start)
	err := svc.Sweep(context.Background())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Sweep_EndReached_Completed(t *testing.T) {
	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 15, 0, 0, 0, time.UTC)

	repo := new(MockReservationRepository)
	repo.On("GetActiveForSweep", mock.Anything).Return([]domain.Reservation{
		activeReservation("100", domain.StatusOngoing, start, end),
	}, nil)
	repo.On("UpdateStatusByReservationID", mock.Anything, "100", domain.StatusCompleted).Return(nil)

	svc := sweepService(repo, end)
	err := svc.Sweep(context.Background())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Sweep_BookedPastEnd_SkipsOngoing(t *testing.T) {
	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 15, 0, 0, 0, time.UTC)

	// a long poll gap can leave a Booked record whose rental already ended;
	// it jumps straight to Completed
	repo := new(MockReservationRepository)
	repo.On("GetActiveForSweep", mock.Anything).Return([]domain.Reservation{
		activeReservation("100", domain.StatusBooked, start, end),
	}, nil)
	repo.On("UpdateStatusByReservationID", mock.Anything, "100", domain.StatusCompleted).Return(nil)

	svc := sweepService(repo, end.Add(time.Hour))
	err := svc.Sweep(context.Background())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Sweep_OngoingMidRental_Idempotent(t *testing.T) {
	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 15, 0, 0, 0, time.UTC)

	repo := new(MockReservationRepository)
	repo.On("GetActiveForSweep", mock.Anything).Return([]domain.Reservation{
		activeReservation("100", domain.StatusOngoing, start, end),
	}, nil)

	svc := sweepService(repo, start.Add(time.Hour))
	err := svc.Sweep(context.Background())

	require.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateStatusByReservationID", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Sweep_LegacyValidTreatedAsBooked(t *testing.T) {
	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 15, 0, 0, 0, time.UTC)

	repo := new(MockReservationRepository)
	repo.On("GetActiveForSweep", mock.Anything).Return([]domain.Reservation{
		activeReservation("100", domain.StatusValid, start, end),
	}, nil)
	repo.On("UpdateStatusByReservationID", mock.Anything, "100", domain.StatusOngoing).Return(nil)

	svc := sweepService(repo, start.Add(time.Minute))
	err := svc.Sweep(context.Background())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Sweep_CancelledNeverAdvances(t *testing.T) {
	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 15, 0, 0, 0, time.UTC)

	// a Cancelled record can reach the sweep through a stale read; its
	// status must survive even with the rental long over
	repo := new(MockReservationRepository)
	repo.On("GetActiveForSweep", mock.Anything).Return([]domain.Reservation{
		activeReservation("100", domain.StatusCancelled, start, end),
	}, nil)

	svc := sweepService(repo, end.Add(24*time.Hour))
	err := svc.Sweep(context.Background())

	require.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateStatusByReservationID", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Sweep_CompletedNeverAdvances(t *testing.T) {
	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 15, 0, 0, 0, time.UTC)

	repo := new(MockReservationRepository)
	repo.On("GetActiveForSweep", mock.Anything).Return([]domain.Reservation{
		activeReservation("100", domain.StatusCompleted, start, end),
	}, nil)

	svc := sweepService(repo, end.Add(24*time.Hour))
	err := svc.Sweep(context.Background())

	require.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateStatusByReservationID", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Sweep_UpdateFailure_ContinuesWithRest(t *testing.T) {
	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 15, 0, 0, 0, time.UTC)

	repo := new(MockReservationRepository)
	repo.On("GetActiveForSweep", mock.Anything).Return([]domain.Reservation{
		activeReservation("100", domain.StatusBooked, start, end),
		activeReservation("200", domain.StatusBooked, start, end),
	}, nil)
	repo.On("UpdateStatusByReservationID", mock.Anything, "100", domain.StatusOngoing).Return(assert.AnError)
	repo.On("UpdateStatusByReservationID", mock.Anything, "200", domain.StatusOngoing).Return(nil)

	svc := sweepService(repo, start.Add(time.Minute))
	err := svc.Sweep(context.Background())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Sweep_FetchError(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("GetActiveForSweep", mock.Anything).Return(nil, assert.AnError)

	svc := sweepService(repo, time.Now())
	err := svc.Sweep(context.Background())

	assert.Error(t, err)
}
