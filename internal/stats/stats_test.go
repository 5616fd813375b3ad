// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package stats

import (
	"fmt"
	"testing"
	"time"

	"kavio/cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opp(title, status string, value float64, client *model.Client, opened string) model.Opportunity {
	return model.Opportunity{Title: title, Status: status, Value: value, Client: client, OpenedAt: opened}
}

func TestComputeTotalsAndConversion(t *testing.T) {
	acme := &model.Client{ID: 1, Name: "ACME"}
	globex := &model.Client{ID: 2, Name: "Globex"}
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	s := Compute(
		[]model.Client{*acme, *globex},
		[]model.Opportunity{
			opp("A", model.StatusWon, 1000, acme, "2025-01-10"),
			opp("B", model.StatusWon, 500, globex, "2025-02-20"),
			opp("C", model.StatusOpen, 300, acme, "2025-02-25"),
			opp("D", model.StatusLost, 200, nil, "2025-03-01"),
		},
		now,
	)

	assert.Equal(t, 2, s.TotalClients)
	assert.Equal(t, 4, s.TotalOpportunities)
	assert.Equal(t, 2, s.Won)
	assert.InDelta(t, 2000, s.TotalValue, 0.001)
	assert.InDelta(t, 50.0, s.ConversionRate, 0.001)

	assert.Equal(t, 2, s.CountByStatus[model.StatusWon])
	assert.Equal(t, 1, s.CountByStatus[model.StatusOpen])
	assert.Equal(t, 1, s.CountByStatus[model.StatusLost])
	assert.InDelta(t, 1500, s.ValueByStatus[model.StatusWon], 0.001)
}

func TestComputeEmptyInput(t *testing.T) {
	s := Compute(nil, nil, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	assert.Zero(t, s.TotalClients)
	assert.Zero(t, s.TotalOpportunities)
	assert.Zero(t, s.ConversionRate, "no opportunities must not divide by zero")
	assert.Len(t, s.Monthly, 3, "series runs January through the current month")
	assert.Empty(t, s.TopClients)
}

func TestTopClientsRankingAndUnknownBucket(t *testing.T) {
	acme := &model.Client{ID: 1, Name: "ACME"}
	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	s := Compute(nil, []model.Opportunity{
		opp("A", model.StatusOpen, 100, acme, ""),
		opp("B", model.StatusWon, 900, acme, ""),
		opp("C", model.StatusOpen, 400, nil, ""),
	}, now)

	require.Len(t, s.TopClients, 2)
	assert.Equal(t, ClientValue{Client: "ACME", Value: 1000}, s.TopClients[0])
	assert.Equal(t, ClientValue{Client: UnknownClient, Value: 400}, s.TopClients[1])
}

func TestTopClientsCapped(t *testing.T) {
	var opps []model.Opportunity
	for i := 0; i < 15; i++ {
		c := &model.Client{ID: int64(i), Name: fmt.Sprintf("Client %02d", i)}
		opps = append(opps, opp("deal", model.StatusOpen, float64(100+i), c, ""))
	}

	s := Compute(nil, opps, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	assert.Len(t, s.TopClients, 10)
	assert.Equal(t, "Client 14", s.TopClients[0].Client, "highest value first")
}

func TestMonthlySeriesBucketsByOpenedAt(t *testing.T) {
	now := time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)

	s := Compute(nil, []model.Opportunity{
		opp("A", model.StatusOpen, 100, nil, "2025-01-05"),
		opp("B", model.StatusOpen, 200, nil, "2025-01-20T10:30:00"),
		opp("C", model.StatusOpen, 300, nil, "2025-03-02T08:00:00Z"),
		opp("D", model.StatusOpen, 400, nil, "not a date"),
	}, now)

	require.Len(t, s.Monthly, 4)
	assert.Equal(t, time.January, s.Monthly[0].Month)
	assert.Equal(t, 2, s.Monthly[0].Count)
	assert.InDelta(t, 300, s.Monthly[0].Value, 0.001)
	assert.Equal(t, 0, s.Monthly[1].Count)
	assert.Equal(t, 1, s.Monthly[2].Count)
	assert.Equal(t, 0, s.Monthly[3].Count, "unparseable dates are skipped")
}
