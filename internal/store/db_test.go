// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package store

import (
	"testing"
	"time"

	"kavio/cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SnapshotTestSuite exercises the local snapshot database.
type SnapshotTestSuite struct {
	suite.Suite
	db *DB
}

// SetupTest runs before each test
func (suite *SnapshotTestSuite) SetupTest() {
	db, err := NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
}

// TearDownTest runs after each test
func (suite *SnapshotTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *SnapshotTestSuite) TestEmptySnapshot() {
	clients, err := suite.db.Clients()
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), clients)

	opps, err := suite.db.Opportunities()
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), opps)

	_, ok, err := suite.db.SyncedAt()
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok, "no sync should be recorded yet")
}

func (suite *SnapshotTestSuite) TestReplaceSnapshotRoundTrip() {
	takenAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	acme := &model.Client{ID: 1, Name: "ACME"}

	err := suite.db.ReplaceSnapshot(
		[]model.Client{
			{ID: 1, Name: "ACME", Email: "contact@acme.io", Phone: "555-0100"},
			{ID: 2, Name: "Globex", Email: "hello@globex.io"},
		},
		[]model.Opportunity{
			{ID: 10, Title: "Big deal", Status: model.StatusOpen, Value: 5000, OpenedAt: "2025-05-01", Client: acme},
			{ID: 11, Title: "Orphan deal", Status: model.StatusLost, Value: 100},
		},
		takenAt,
	)
	require.NoError(suite.T(), err)

	clients, err := suite.db.Clients()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), clients, 2)
	assert.Equal(suite.T(), "ACME", clients[0].Name, "clients come back ordered by name")
	assert.Equal(suite.T(), "contact@acme.io", clients[0].Email)

	opps, err := suite.db.Opportunities()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), opps, 2)
	require.NotNil(suite.T(), opps[0].Client, "client back-reference should be reconstructed")
	assert.Equal(suite.T(), "ACME", opps[0].Client.Name)
	assert.Nil(suite.T(), opps[1].Client, "opportunity without client stays detached")

	syncedAt, ok, err := suite.db.SyncedAt()
	require.NoError(suite.T(), err)
	require.True(suite.T(), ok)
	assert.True(suite.T(), syncedAt.Equal(takenAt))
}

func (suite *SnapshotTestSuite) TestReplaceSnapshotIsWholesale() {
	first := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	err := suite.db.ReplaceSnapshot(
		[]model.Client{{ID: 1, Name: "ACME", Email: "a@acme.io"}},
		[]model.Opportunity{{ID: 10, Title: "Old deal", Status: model.StatusOpen, Value: 100}},
		first,
	)
	require.NoError(suite.T(), err)

	second := first.Add(time.Hour)
	err = suite.db.ReplaceSnapshot(
		[]model.Client{{ID: 2, Name: "Globex", Email: "g@globex.io"}},
		nil,
		second,
	)
	require.NoError(suite.T(), err)

	clients, err := suite.db.Clients()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), clients, 1)
	assert.Equal(suite.T(), "Globex", clients[0].Name, "old records must be gone")

	opps, err := suite.db.Opportunities()
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), opps)

	syncedAt, ok, err := suite.db.SyncedAt()
	require.NoError(suite.T(), err)
	require.True(suite.T(), ok)
	assert.True(suite.T(), syncedAt.Equal(second), "sync stamp should advance")
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotTestSuite))
}
