package bookingrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/bookingrepo"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// BookingRepositoryIntegrationTestSuite exercises booking persistence against
// a real PostgreSQL instance, articles included.
type BookingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *bookingrepo.GormBookingRepository
	tracker    *MockAggregateTracker

	orgID      kernel.UUID
	fromBranch kernel.UUID
	toBranch   kernel.UUID
}

func (suite *BookingRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&bookingrepo.BookingDTO{},
		&bookingrepo.ArticleDTO{},
	))
}

func (suite *BookingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE articles, bookings").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = bookingrepo.NewGormBookingRepository(suite.db, suite.tracker)

	suite.orgID = kernel.NewUUID()
	suite.fromBranch = kernel.NewUUID()
	suite.toBranch = kernel.NewUUID()
}

func (suite *BookingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BookingRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	b := suite.createTestBooking("MUM-DES-2024-00001", 250, 100)

	suite.Require().NoError(suite.repository.Add(ctx, b))

	restored, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)

	suite.True(restored.IsEqual(b))
	suite.Equal("MUM-DES-2024-00001", restored.LRNumber())
	suite.Equal(booking.Booked, restored.Status())
	suite.Equal(suite.orgID, restored.OrgID())
	suite.Equal(suite.fromBranch, restored.FromBranch())
	suite.Equal(suite.toBranch, restored.ToBranch())
	suite.Equal("Acme Traders", restored.SenderRef())
	suite.True(decimal.NewFromInt(1000).Equal(restored.TotalAmount()))

	suite.Require().Len(restored.Articles(), 2)
	suite.True(decimal.NewFromInt(350).Equal(restored.TotalWeightKg()))
	for _, article := range restored.Articles() {
		suite.Equal(booking.ArticleBooked, article.Status())
		suite.Nil(article.OGPLID())
	}
}

func (suite *BookingRepositoryIntegrationTestSuite) TestUpdate_PersistsArticleTripLinks() {
	ctx := context.Background()
	b := suite.createTestBooking("MUM-DES-2024-00002", 250, 100)
	suite.Require().NoError(suite.repository.Add(ctx, b))

	tripID := kernel.NewUUID()
	userID := kernel.NewUUID()
	_, err := b.LoadArticlesOnto(tripID, userID, time.Now())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, b))

	restored, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)

	suite.True(restored.AllArticlesLoadedOn(tripID))
	for _, article := range restored.Articles() {
		suite.Equal(booking.ArticleLoaded, article.Status())
		suite.Require().NotNil(article.OGPLID())
		suite.Equal(tripID, *article.OGPLID())
		suite.Require().NotNil(article.LoadedBy())
		suite.Equal(userID, *article.LoadedBy())
	}
}

func (suite *BookingRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BookingRepositoryIntegrationTestSuite) TestGetBatch_SkipsMissingIDs() {
	ctx := context.Background()
	b1 := suite.createTestBooking("MUM-DES-2024-00003", 100)
	b2 := suite.createTestBooking("MUM-DES-2024-00004", 200)
	suite.Require().NoError(suite.repository.Add(ctx, b1))
	suite.Require().NoError(suite.repository.Add(ctx, b2))

	result, err := suite.repository.GetBatch(ctx, []kernel.UUID{b1.ID(), kernel.NewUUID(), b2.ID()})

	suite.Require().NoError(err)
	suite.Len(result, 2)
	ids := map[kernel.UUID]bool{result[0].ID(): true, result[1].ID(): true}
	suite.True(ids[b1.ID()])
	suite.True(ids[b2.ID()])
}

func (suite *BookingRepositoryIntegrationTestSuite) TestGetByArticleIDs_ResolvesOwners() {
	ctx := context.Background()
	b1 := suite.createTestBooking("MUM-DES-2024-00005", 100, 200)
	b2 := suite.createTestBooking("MUM-DES-2024-00006", 300)
	suite.Require().NoError(suite.repository.Add(ctx, b1))
	suite.Require().NoError(suite.repository.Add(ctx, b2))

	articleID := b1.Articles()[0].ID()
	result, err := suite.repository.GetByArticleIDs(ctx, []kernel.UUID{articleID})

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(b1.ID(), result[0].ID())
	suite.Len(result[0].Articles(), 2)
}

func (suite *BookingRepositoryIntegrationTestSuite) TestLoadedWeightKgForTrip_SumsOnlyThisTrip() {
	ctx := context.Background()
	tripID := kernel.NewUUID()
	otherTrip := kernel.NewUUID()
	userID := kernel.NewUUID()

	onTrip := suite.createTestBooking("MUM-DES-2024-00007", 250, 100)
	_, err := onTrip.LoadArticlesOnto(tripID, userID, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, onTrip))

	elsewhere := suite.createTestBooking("MUM-DES-2024-00008", 500)
	_, err = elsewhere.LoadArticlesOnto(otherTrip, userID, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, elsewhere))

	pending := suite.createTestBooking("MUM-DES-2024-00009", 999)
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	weight, err := suite.repository.LoadedWeightKgForTrip(ctx, tripID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(350).Equal(weight), "got %s", weight)
}

func (suite *BookingRepositoryIntegrationTestSuite) TestLoadedWeightKgForTrip_EmptyTrip() {
	ctx := context.Background()

	weight, err := suite.repository.LoadedWeightKgForTrip(ctx, kernel.NewUUID())

	suite.Require().NoError(err)
	suite.True(weight.IsZero())
}

func (suite *BookingRepositoryIntegrationTestSuite) createTestBooking(lrNumber string, weightsKg ...int64) *booking.Booking {
	b, err := booking.NewBooking(
		kernel.NewUUID(), lrNumber, suite.orgID, suite.fromBranch, suite.toBranch,
		"Acme Traders", "Zenith Stores", decimal.NewFromInt(1000), time.Now(),
	)
	suite.Require().NoError(err)
	for _, w := range weightsKg {
		suite.Require().NoError(b.AddArticle(kernel.NewUUID(), "cartons", 1, decimal.NewFromInt(w)))
	}
	return b
}

func TestBookingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(BookingRepositoryIntegrationTestSuite))
}
