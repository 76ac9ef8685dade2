package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/bookingrepo"
	"freight/internal/adapters/out/postgres/branchrepo"
	"freight/internal/adapters/out/postgres/eventrepo"
	"freight/internal/adapters/out/postgres/triprepo"
	"freight/internal/adapters/out/postgres/vehiclerepo"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based unit of work with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&bookingrepo.BookingDTO{},
		&bookingrepo.ArticleDTO{},
		&triprepo.TripDTO{},
		&branchrepo.BranchDTO{},
		&vehiclerepo.VehicleDTO{},
		&eventrepo.EventDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE articles, bookings, trips, branches, vehicles, events").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.BookingRepository())
	suite.NotNil(uow1.TripRepository())
	suite.NotNil(uow2.VehicleRepository())
	suite.NotNil(uow2.BranchRepository())
	suite.NotNil(uow2.EventRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Begin on an instance with an active transaction is a no-op.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsBooking() {
	ctx := context.Background()
	uow := suite.factory.Create()

	b := suite.createTestBooking("MUM-DES-2024-00001")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.BookingRepository().Add(ctx, b))
	suite.Require().NoError(uow.Commit(ctx))

	restored, err := suite.factory.Create().BookingRepository().Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.True(restored.IsEqual(b))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsBooking() {
	ctx := context.Background()
	uow := suite.factory.Create()

	b := suite.createTestBooking("MUM-DES-2024-00002")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.BookingRepository().Add(ctx, b))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().BookingRepository().Get(ctx, b.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoriesShareTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	b := suite.createTestBooking("MUM-DES-2024-00003")
	tr := suite.createTestTrip("OGPL-MUM-2024-00001")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.BookingRepository().Add(ctx, b))
	suite.Require().NoError(uow.TripRepository().Add(ctx, tr))

	// Uncommitted rows are invisible outside the transaction.
	outside := suite.factory.Create()
	_, err := outside.BookingRepository().Get(ctx, b.ID())
	suite.Require().Error(err)
	_, err = outside.TripRepository().Get(ctx, tr.ID())
	suite.Require().Error(err)

	suite.Require().NoError(uow.Commit(ctx))

	_, err = outside.BookingRepository().Get(ctx, b.ID())
	suite.Require().NoError(err)
	_, err = outside.TripRepository().Get(ctx, tr.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RowLockSerializesLoadBatches() {
	ctx := context.Background()

	tr := suite.createTestTrip("OGPL-MUM-2024-00002")
	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.TripRepository().Add(ctx, tr))
	suite.Require().NoError(setup.Commit(ctx))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	_, err := first.TripRepository().GetForUpdate(ctx, tr.ID())
	suite.Require().NoError(err)

	// A second locker must wait until the first transaction ends.
	locked := make(chan struct{})
	go func() {
		defer close(locked)
		second := suite.factory.Create()
		if err := second.Begin(ctx); err != nil {
			return
		}
		defer func() { _ = second.Rollback(ctx) }()
		_, _ = second.TripRepository().GetForUpdate(ctx, tr.ID())
	}()

	select {
	case <-locked:
		suite.Fail("second GetForUpdate acquired the lock while the first held it")
	case <-time.After(200 * time.Millisecond):
	}

	suite.Require().NoError(first.Rollback(ctx))

	select {
	case <-locked:
	case <-time.After(5 * time.Second):
		suite.Fail("second GetForUpdate never acquired the lock")
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestBooking(lrNumber string) *booking.Booking {
	b, err := booking.NewBooking(
		kernel.NewUUID(), lrNumber, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Acme Traders", "Zenith Stores", decimal.NewFromInt(1000), time.Now(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(b.AddArticle(kernel.NewUUID(), "cartons", 1, decimal.NewFromInt(100)))
	return b
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestTrip(ogplNumber string) *trip.Trip {
	tr, err := trip.NewTrip(
		kernel.NewUUID(), ogplNumber, kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(), time.Now().AddDate(0, 0, 1),
		trip.DriverInfo{PrimaryName: "R. Kumar", PrimaryMobile: "9820098200"},
		"", "", time.Now(),
	)
	suite.Require().NoError(err)
	return tr
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
