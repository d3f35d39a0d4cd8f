package syncattemptrepo_test

import (
	"context"
	"testing"
	"time"

	"medex/internal/adapters/out/postgres/syncattemptrepo"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SyncAttemptRepositoryTestSuite exercises the repository on an in-memory SQLite
// database; the PostgreSQL behaviour is covered by the unit of work suite.
type SyncAttemptRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository *syncattemptrepo.GormSyncAttemptRepository
	base       time.Time
}

func (suite *SyncAttemptRepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Every pooled connection to :memory: would open its own empty database.
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(&syncattemptrepo.SyncAttemptDTO{}))
	suite.db = db

	suite.repository = syncattemptrepo.NewGormSyncAttemptRepository(db)
	suite.base = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
}

func (suite *SyncAttemptRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())
}

func (suite *SyncAttemptRepositoryTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()
	attempt := suite.attempt(1042, "processing", suite.base, syncattempt.Result{
		Outcome:    syncattempt.OutcomeRejected,
		HTTPStatus: 422,
		Error:      "unknown vendor",
	})

	suite.Require().NoError(suite.repository.Add(ctx, attempt))

	got, err := suite.repository.Get(ctx, attempt.ID())
	suite.Require().NoError(err)
	suite.True(attempt.ID().IsEqual(got.ID()))
	suite.Equal(int64(1042), got.WooOrderID())
	suite.Equal("5", got.VendorID())
	suite.Equal(syncattempt.TriggerOrderCreated, got.Trigger())
	suite.Equal(syncattempt.KindFullSync, got.Kind())
	suite.Equal(2, got.ItemCount())
	suite.InDelta(19.5, got.Total(), 1e-9)
	suite.Equal(attempt.Result(), got.Result())
	suite.True(suite.base.Equal(got.CreatedAt()))
}

func (suite *SyncAttemptRepositoryTestSuite) TestAdd_RejectsUnconstructedAttempt() {
	err := suite.repository.Add(context.Background(), &syncattempt.Attempt{})

	suite.Require().ErrorIs(err, syncattempt.ErrAttemptIsNotConstructed)
}

func (suite *SyncAttemptRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SyncAttemptRepositoryTestSuite) TestLastWooStatus() {
	ctx := context.Background()
	ok := syncattempt.Result{Outcome: syncattempt.OutcomeSucceeded}

	suite.Require().NoError(suite.repository.Add(ctx, suite.attempt(1, "pending", suite.base, ok)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.attempt(1, "completed", suite.base.Add(2*time.Minute), ok)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.attempt(1, "processing", suite.base.Add(time.Minute), ok)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.attempt(2, "refunded", suite.base.Add(time.Hour), ok)))

	status, seen, err := suite.repository.LastWooStatus(ctx, 1)
	suite.Require().NoError(err)
	suite.True(seen)
	suite.Equal("completed", status)

	_, seen, err = suite.repository.LastWooStatus(ctx, 3)
	suite.Require().NoError(err)
	suite.False(seen)
}

func (suite *SyncAttemptRepositoryTestSuite) TestDeleteOlderThan() {
	ctx := context.Background()
	ok := syncattempt.Result{Outcome: syncattempt.OutcomeSucceeded}

	old := suite.attempt(1, "pending", suite.base.Add(-48*time.Hour), ok)
	edge := suite.attempt(1, "processing", suite.base, ok)
	fresh := suite.attempt(1, "completed", suite.base.Add(time.Hour), ok)
	for _, a := range []*syncattempt.Attempt{old, edge, fresh} {
		suite.Require().NoError(suite.repository.Add(ctx, a))
	}

	deleted, err := suite.repository.DeleteOlderThan(ctx, suite.base)
	suite.Require().NoError(err)
	suite.Equal(int64(1), deleted)

	_, err = suite.repository.Get(ctx, old.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.repository.Get(ctx, edge.ID())
	suite.Require().NoError(err)
}

func (suite *SyncAttemptRepositoryTestSuite) attempt(
	wooOrderID int64,
	status string,
	at time.Time,
	result syncattempt.Result,
) *syncattempt.Attempt {
	a, err := syncattempt.NewAttempt(syncattempt.Params{
		WooOrderID: wooOrderID,
		VendorID:   "5",
		Trigger:    syncattempt.TriggerOrderCreated,
		Kind:       syncattempt.KindFullSync,
		WooStatus:  status,
		ItemCount:  2,
		Total:      19.5,
		Result:     result,
		CreatedAt:  at,
	})
	suite.Require().NoError(err)
	return a
}

func TestSyncAttemptRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SyncAttemptRepositoryTestSuite))
}
