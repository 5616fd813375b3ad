// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"kavio/cli/internal/model"
	"kavio/cli/internal/stats"
	"kavio/cli/internal/store"
	"kavio/cli/internal/xdg"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statsOffline bool

// statsCmd renders the pipeline dashboard. The two record sets are fetched
// concurrently; after a successful fetch the local snapshot is refreshed so
// --offline keeps working without the backend.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pipeline statistics",
	RunE: guarded(func(cmd *cobra.Command, a *app, args []string) error {
		var (
			clients []model.Client
			opps    []model.Opportunity
		)

		if statsOffline {
			var err error
			clients, opps, err = loadSnapshot()
			if err != nil {
				return err
			}
		} else {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			var wg sync.WaitGroup
			var clientsErr, oppsErr error
			wg.Add(2)
			go func() {
				defer wg.Done()
				clients, clientsErr = a.api.ListClients(ctx)
			}()
			go func() {
				defer wg.Done()
				opps, oppsErr = a.api.ListOpportunities(ctx)
			}()
			wg.Wait()

			if clientsErr != nil {
				reportFailure(a.notifier, "fetching clients", clientsErr)
				return errors.New("could not fetch statistics")
			}
			if oppsErr != nil {
				reportFailure(a.notifier, "fetching opportunities", oppsErr)
				return errors.New("could not fetch statistics")
			}

			saveSnapshot(a, clients, opps)
		}

		renderStats(stats.Compute(clients, opps, time.Now()))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsOffline, "offline", false, "Render from the local snapshot instead of the backend")
}

func snapshotPath() (string, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "snapshot.db"), nil
}

func loadSnapshot() ([]model.Client, []model.Opportunity, error) {
	path, err := snapshotPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := store.NewDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	syncedAt, ok, err := db.SyncedAt()
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, errors.New("no local snapshot yet, run 'kavio stats' online first")
	}

	clients, err := db.Clients()
	if err != nil {
		return nil, nil, err
	}
	opps, err := db.Opportunities()
	if err != nil {
		return nil, nil, err
	}

	pterm.Printf("Offline snapshot from %s\n\n", syncedAt.Local().Format("2006-01-02 15:04"))
	return clients, opps, nil
}

// saveSnapshot refreshes the offline copy. Failures are reported but do not
// fail the command, the dashboard already has live data.
func saveSnapshot(a *app, clients []model.Client, opps []model.Opportunity) {
	path, err := snapshotPath()
	if err != nil {
		a.notifier.Info("Could not refresh the offline snapshot")
		return
	}
	db, err := store.NewDB(path)
	if err != nil {
		a.notifier.Info("Could not refresh the offline snapshot")
		return
	}
	defer db.Close()
	if err := db.ReplaceSnapshot(clients, opps, time.Now()); err != nil {
		a.notifier.Info("Could not refresh the offline snapshot")
	}
}

func renderStats(s stats.Summary) {
	pterm.DefaultSection.Println("Pipeline")
	rows := pterm.TableData{
		{"Clients", strconv.Itoa(s.TotalClients)},
		{"Opportunities", strconv.Itoa(s.TotalOpportunities)},
		{"Won", strconv.Itoa(s.Won)},
		{"Total value", fmt.Sprintf("%.2f", s.TotalValue)},
		{"Conversion rate", fmt.Sprintf("%.1f%%", s.ConversionRate)},
	}
	_ = pterm.DefaultTable.WithData(rows).Render()

	pterm.DefaultSection.Println("By status")
	bars := make([]pterm.Bar, 0, len(s.CountByStatus))
	for _, status := range []string{model.StatusOpen, model.StatusWon, model.StatusLost} {
		bars = append(bars, pterm.Bar{
			Label: fmt.Sprintf("%s (%.2f)", status, s.ValueByStatus[status]),
			Value: s.CountByStatus[status],
		})
	}
	_ = pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Render()

	if len(s.TopClients) > 0 {
		pterm.DefaultSection.Println("Top clients by value")
		top := pterm.TableData{{"Client", "Value"}}
		for _, cv := range s.TopClients {
			top = append(top, []string{cv.Client, fmt.Sprintf("%.2f", cv.Value)})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(top).Render()
	}

	pterm.DefaultSection.Println("Openings per month")
	monthly := make([]pterm.Bar, 0, len(s.Monthly))
	for _, b := range s.Monthly {
		monthly = append(monthly, pterm.Bar{Label: b.Month.String()[:3], Value: b.Count})
	}
	_ = pterm.DefaultBarChart.WithShowValue().WithBars(monthly).Render()
}
