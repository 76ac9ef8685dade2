package sequencerepo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/sequencerepo"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SequenceRepositoryIntegrationTestSuite exercises atomic number reservation
// against a real PostgreSQL instance. The primary key on the rendered number
// is what makes a reservation first-writer-wins.
type SequenceRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *sequencerepo.GormSequenceRepository
}

func (suite *SequenceRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&sequencerepo.ReservedNumberDTO{}))
}

func (suite *SequenceRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE reserved_numbers").Error)
	suite.repository = sequencerepo.NewGormSequenceRepository(suite.db)
}

func (suite *SequenceRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SequenceRepositoryIntegrationTestSuite) TestReserve_FirstClaimWins() {
	ctx := context.Background()

	err := suite.repository.Reserve(ctx, "MUM-DES-2024", 1, "MUM-DES-2024-00001")
	suite.Require().NoError(err)

	err = suite.repository.Reserve(ctx, "MUM-DES-2024", 1, "MUM-DES-2024-00001")
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrDuplicateValue)
}

func (suite *SequenceRepositoryIntegrationTestSuite) TestHighestSequence_EmptyPrefix() {
	ctx := context.Background()

	highest, err := suite.repository.HighestSequence(ctx, "MUM-DES-2024")

	suite.Require().NoError(err)
	suite.Equal(0, highest)
}

func (suite *SequenceRepositoryIntegrationTestSuite) TestHighestSequence_ScopedByPrefix() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Reserve(ctx, "MUM-DES-2024", 1, "MUM-DES-2024-00001"))
	suite.Require().NoError(suite.repository.Reserve(ctx, "MUM-DES-2024", 7, "MUM-DES-2024-00007"))
	suite.Require().NoError(suite.repository.Reserve(ctx, "PUN-DES-2024", 42, "PUN-DES-2024-00042"))

	highest, err := suite.repository.HighestSequence(ctx, "MUM-DES-2024")
	suite.Require().NoError(err)
	suite.Equal(7, highest)

	highest, err = suite.repository.HighestSequence(ctx, "PUN-DES-2024")
	suite.Require().NoError(err)
	suite.Equal(42, highest)
}

func (suite *SequenceRepositoryIntegrationTestSuite) TestReserve_ConcurrentClaims_ExactlyOneWins() {
	ctx := context.Background()
	const contenders = 10

	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- suite.repository.Reserve(ctx, "QT-MUM-2024", 1, "QT-MUM-2024-00001")
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for err := range results {
		if err == nil {
			winners++
		} else {
			suite.ErrorIs(err, errs.ErrDuplicateValue)
		}
	}
	suite.Equal(1, winners)
}

func (suite *SequenceRepositoryIntegrationTestSuite) TestReserve_DistinctNumbersSamePrefix() {
	ctx := context.Background()

	for seq := 1; seq <= 5; seq++ {
		number := fmt.Sprintf("OGPL-MUM-2024-%05d", seq)
		suite.Require().NoError(suite.repository.Reserve(ctx, "OGPL-MUM-2024", seq, number))
	}

	highest, err := suite.repository.HighestSequence(ctx, "OGPL-MUM-2024")
	suite.Require().NoError(err)
	suite.Equal(5, highest)
}

func TestSequenceRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SequenceRepositoryIntegrationTestSuite))
}
