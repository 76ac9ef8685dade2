package commands_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/auth"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/branch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/logevent"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/domain/model/vehicle"
	"freight/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) Add(ctx context.Context, aggregate *booking.Booking) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, aggregate *booking.Booking) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockBookingRepository) Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBatch(ctx context.Context, ids []kernel.UUID) ([]*booking.Booking, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByArticleIDs(ctx context.Context, articleIDs []kernel.UUID) ([]*booking.Booking, error) {
	args := m.Called(ctx, articleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) LoadedWeightKgForTrip(ctx context.Context, tripID kernel.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tripID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockTripRepository struct{ mock.Mock }

func (m *MockTripRepository) Add(ctx context.Context, aggregate *trip.Trip) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTripRepository) Update(ctx context.Context, aggregate *trip.Trip) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) GetActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

type MockBranchRepository struct{ mock.Mock }

func (m *MockBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*branch.Branch), args.Error(1)
}

type MockEventRepository struct{ mock.Mock }

func (m *MockEventRepository) Add(ctx context.Context, event *logevent.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// txMock provides the shared Begin/Commit/Rollback surface of the UoW mocks.
type txMock struct{ mock.Mock }

func (m *txMock) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *txMock) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *txMock) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockBookingUoW struct{ txMock }

func (m *MockBookingUoW) BookingRepository() ports.BookingRepository {
	args := m.Called()
	return args.Get(0).(ports.BookingRepository)
}

func (m *MockBookingUoW) BranchRepository() ports.BranchRepository {
	args := m.Called()
	return args.Get(0).(ports.BranchRepository)
}

func (m *MockBookingUoW) EventRepository() ports.EventRepository {
	args := m.Called()
	return args.Get(0).(ports.EventRepository)
}

type MockBookingUoWFactory struct{ mock.Mock }

func (m *MockBookingUoWFactory) Create() commands.BookingUoW {
	args := m.Called()
	return args.Get(0).(commands.BookingUoW)
}

type MockTripUoW struct{ txMock }

func (m *MockTripUoW) TripRepository() ports.TripRepository {
	args := m.Called()
	return args.Get(0).(ports.TripRepository)
}

func (m *MockTripUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockTripUoW) BranchRepository() ports.BranchRepository {
	args := m.Called()
	return args.Get(0).(ports.BranchRepository)
}

func (m *MockTripUoW) EventRepository() ports.EventRepository {
	args := m.Called()
	return args.Get(0).(ports.EventRepository)
}

type MockTripUoWFactory struct{ mock.Mock }

func (m *MockTripUoWFactory) Create() commands.TripUoW {
	args := m.Called()
	return args.Get(0).(commands.TripUoW)
}

type MockLoadingUoW struct{ txMock }

func (m *MockLoadingUoW) TripRepository() ports.TripRepository {
	args := m.Called()
	return args.Get(0).(ports.TripRepository)
}

func (m *MockLoadingUoW) BookingRepository() ports.BookingRepository {
	args := m.Called()
	return args.Get(0).(ports.BookingRepository)
}

func (m *MockLoadingUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockLoadingUoW) EventRepository() ports.EventRepository {
	args := m.Called()
	return args.Get(0).(ports.EventRepository)
}

type MockLoadingUoWFactory struct{ mock.Mock }

func (m *MockLoadingUoWFactory) Create() commands.LoadingUoW {
	args := m.Called()
	return args.Get(0).(commands.LoadingUoW)
}

type MockNumberSource struct{ mock.Mock }

func (m *MockNumberSource) NextBookingNumber(ctx context.Context, branchID kernel.UUID, isQuotation bool) (string, error) {
	args := m.Called(ctx, branchID, isQuotation)
	return args.String(0), args.Error(1)
}

func (m *MockNumberSource) NextOGPLNumber(ctx context.Context, branchID kernel.UUID) (string, error) {
	args := m.Called(ctx, branchID)
	return args.String(0), args.Error(1)
}

// workflowFixture carries the shared identifiers of one organization so
// command tests construct consistent aggregates without repeating setup.
type workflowFixture struct {
	orgID      kernel.UUID
	fromBranch kernel.UUID
	toBranch   kernel.UUID
	vehicleID  kernel.UUID
	actor      auth.Actor
}

func newWorkflowFixture(t *testing.T) workflowFixture {
	t.Helper()

	orgID := kernel.NewUUID()
	fromBranch := kernel.NewUUID()
	actor, err := auth.NewActor(kernel.NewUUID(), orgID, fromBranch, auth.Operator)
	require.NoError(t, err)

	return workflowFixture{
		orgID:      orgID,
		fromBranch: fromBranch,
		toBranch:   kernel.NewUUID(),
		vehicleID:  kernel.NewUUID(),
		actor:      actor,
	}
}

func (f workflowFixture) newBranch(t *testing.T, id kernel.UUID, code string, active bool) *branch.Branch {
	t.Helper()
	b, err := branch.NewBranch(id, f.orgID, code, "DES", code+" station", active)
	require.NoError(t, err)
	return b
}

func (f workflowFixture) newVehicle(t *testing.T, capacityKg int64, active bool) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(f.vehicleID, f.orgID, "MH-04-AB-1234", decimal.NewFromInt(capacityKg), active)
	require.NoError(t, err)
	return v
}

func (f workflowFixture) newTrip(t *testing.T) *trip.Trip {
	t.Helper()
	tr, err := trip.NewTrip(
		kernel.NewUUID(), "OGPL-MUM-2024-00001", f.orgID, f.vehicleID,
		f.fromBranch, f.toBranch, time.Now().AddDate(0, 0, 1),
		trip.DriverInfo{PrimaryName: "R. Kumar", PrimaryMobile: "9820098200"},
		"", "", time.Now(),
	)
	require.NoError(t, err)
	return tr
}

func (f workflowFixture) newBookingWithArticles(t *testing.T, lrNumber string, weightsKg ...int64) *booking.Booking {
	t.Helper()
	b, err := booking.NewBooking(
		kernel.NewUUID(), lrNumber, f.orgID, f.fromBranch, f.toBranch,
		"Acme Traders", "Zenith Stores", decimal.NewFromInt(1000), time.Now(),
	)
	require.NoError(t, err)
	for _, w := range weightsKg {
		require.NoError(t, b.AddArticle(kernel.NewUUID(), "cartons", 1, decimal.NewFromInt(w)))
	}
	return b
}
