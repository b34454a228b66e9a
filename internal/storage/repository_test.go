package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"outgo/internal/core"
)

// RepositoryTestSuite provides a test suite for the SQLite record store.
type RepositoryTestSuite struct {
	suite.Suite
	repo *SQLiteRepository
}

// SetupTest runs before each test
func (suite *RepositoryTestSuite) SetupTest() {
	repo, err := NewSQLiteRepository(":memory:")
	require.NoError(suite.T(), err, "failed to create test repository")
	suite.repo = repo
}

// TearDownTest runs after each test
func (suite *RepositoryTestSuite) TearDownTest() {
	if suite.repo != nil {
		suite.repo.Close()
	}
}

func (suite *RepositoryTestSuite) TestLoadExpensesEmptyUser() {
	entries, err := suite.repo.LoadExpenses(context.Background(), "alice")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), entries)
}

func (suite *RepositoryTestSuite) TestSaveLoadRoundTrip() {
	ctx := context.Background()
	want := []core.Expense{
		{
			ID:            "exp_20240101_100000000000",
			Date:          "2024-01-01",
			Amount:        12.5,
			Category:      "Food",
			Description:   "lunch",
			PaymentMethod: "card",
			Tags:          []string{"work", "lunch"},
		},
		{
			ID:       "exp_20240102_100000000000",
			Date:     "2024-01-02",
			Amount:   3,
			Category: "Transport",
			Tags:     []string{},
		},
	}

	require.NoError(suite.T(), suite.repo.SaveExpenses(ctx, "alice", want))

	got, err := suite.repo.LoadExpenses(ctx, "alice")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), want, got, "insertion order and tags must survive the round trip")
}

func (suite *RepositoryTestSuite) TestSaveReplacesCollection() {
	ctx := context.Background()
	first := []core.Expense{
		{ID: "exp_a", Date: "2024-01-01", Amount: 1, Category: "Food", Tags: []string{}},
		{ID: "exp_b", Date: "2024-01-02", Amount: 2, Category: "Food", Tags: []string{}},
	}
	second := []core.Expense{
		{ID: "exp_c", Date: "2024-02-01", Amount: 3, Category: "Bills", Tags: []string{}},
	}

	require.NoError(suite.T(), suite.repo.SaveExpenses(ctx, "alice", first))
	require.NoError(suite.T(), suite.repo.SaveExpenses(ctx, "alice", second))

	got, err := suite.repo.LoadExpenses(ctx, "alice")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), got, 1)
	assert.Equal(suite.T(), "exp_c", got[0].ID)
}

func (suite *RepositoryTestSuite) TestUsersAreIsolated() {
	ctx := context.Background()
	require.NoError(suite.T(), suite.repo.SaveExpenses(ctx, "alice", []core.Expense{
		{ID: "exp_a", Date: "2024-01-01", Amount: 1, Category: "Food", Tags: []string{}},
	}))

	got, err := suite.repo.LoadExpenses(ctx, "bob")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), got)
}

func (suite *RepositoryTestSuite) TestLoadSettingsAppliesDefaults() {
	ctx := context.Background()

	settings, err := suite.repo.LoadSettings(ctx, "alice")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), core.DefaultSettings(), settings)

	// Defaults must have been persisted, not just returned.
	again, err := suite.repo.LoadSettings(ctx, "alice")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), settings, again)
}

func (suite *RepositoryTestSuite) TestSaveSettingsUpserts() {
	ctx := context.Background()
	want := core.Settings{Currency: "EUR", Categories: []string{"Casa", "Cibo"}}

	require.NoError(suite.T(), suite.repo.SaveSettings(ctx, "alice", want))
	require.NoError(suite.T(), suite.repo.SaveSettings(ctx, "alice", want))

	got, err := suite.repo.LoadSettings(ctx, "alice")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), want, got)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
