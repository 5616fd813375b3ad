// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package stats computes the dashboard figures from client and opportunity
// records: totals, conversion rate, per-status breakdowns, top clients by
// value and the monthly openings series.
package stats

import (
	"sort"
	"time"

	"kavio/cli/internal/model"
)

// UnknownClient labels opportunity value that has no client back-reference.
const UnknownClient = "Unknown client"

// ClientValue is one row of the top-clients ranking.
type ClientValue struct {
	Client string
	Value  float64
}

// MonthBucket aggregates opportunities opened in one calendar month.
type MonthBucket struct {
	Month time.Month
	Count int
	Value float64
}

// Summary holds everything the stats view renders.
type Summary struct {
	TotalClients       int
	TotalOpportunities int
	Won                int
	TotalValue         float64
	ConversionRate     float64 // percent, 0 when there are no opportunities
	CountByStatus      map[string]int
	ValueByStatus      map[string]float64
	TopClients         []ClientValue // descending by value, at most topClientsLimit
	Monthly            []MonthBucket // January through now's month
}

const topClientsLimit = 10

// openedAtLayouts are the date formats the backend has been seen emitting.
var openedAtLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Compute aggregates the records into a Summary. The now argument anchors the
// monthly series, which runs from January through the current month.
func Compute(clients []model.Client, opps []model.Opportunity, now time.Time) Summary {
	s := Summary{
		TotalClients:       len(clients),
		TotalOpportunities: len(opps),
		CountByStatus: map[string]int{
			model.StatusOpen: 0,
			model.StatusWon:  0,
			model.StatusLost: 0,
		},
		ValueByStatus: map[string]float64{
			model.StatusOpen: 0,
			model.StatusWon:  0,
			model.StatusLost: 0,
		},
	}

	byClient := map[string]float64{}
	months := make([]MonthBucket, 12)
	for i := range months {
		months[i].Month = time.Month(i + 1)
	}

	for _, o := range opps {
		s.TotalValue += o.Value
		s.CountByStatus[o.Status]++
		s.ValueByStatus[o.Status] += o.Value
		if o.Status == model.StatusWon {
			s.Won++
		}

		name := UnknownClient
		if o.Client != nil && o.Client.Name != "" {
			name = o.Client.Name
		}
		byClient[name] += o.Value

		if t, ok := parseOpenedAt(o.OpenedAt); ok {
			m := int(t.Month()) - 1
			months[m].Count++
			months[m].Value += o.Value
		}
	}

	if s.TotalOpportunities > 0 {
		s.ConversionRate = float64(s.Won) / float64(s.TotalOpportunities) * 100
	}

	for name, value := range byClient {
		s.TopClients = append(s.TopClients, ClientValue{Client: name, Value: value})
	}
	sort.Slice(s.TopClients, func(i, j int) bool {
		if s.TopClients[i].Value != s.TopClients[j].Value {
			return s.TopClients[i].Value > s.TopClients[j].Value
		}
		return s.TopClients[i].Client < s.TopClients[j].Client
	})
	if len(s.TopClients) > topClientsLimit {
		s.TopClients = s.TopClients[:topClientsLimit]
	}

	s.Monthly = months[:int(now.Month())]
	return s
}

func parseOpenedAt(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range openedAtLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
