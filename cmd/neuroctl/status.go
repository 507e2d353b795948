package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type RootRow struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

type HealthRow struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

var (
	healthWait     time.Duration
	healthInterval time.Duration
)

var errWaitExpired = errors.New("database did not report Connected before the wait expired")

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service status",
	Run: func(cmd *cobra.Command, args []string) {
		client := NewClient(apiURL)

		var resp RootRow
		if err := client.Get(cmd.Context(), "/", &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printResult(resp)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show database health",
	Run: func(cmd *cobra.Command, args []string) {
		client := NewClient(apiURL)
		ctx := cmd.Context()

		var (
			resp HealthRow
			err  error
		)
		if healthWait > 0 {
			waitCtx, cancel := context.WithTimeout(ctx, healthWait)
			resp, err = waitForDatabase(waitCtx, client, healthInterval)
			cancel()
		} else {
			err = client.Get(ctx, "/api/health", &resp)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printResult(resp)
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check liveness",
	Run: func(cmd *cobra.Command, args []string) {
		client := NewClient(apiURL)

		body, err := client.GetText(cmd.Context(), "/health")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(body)
	},
}

// waitForDatabase polls /api/health until the database is Connected or ctx
// expires. Request errors while polling are tolerated.
func waitForDatabase(ctx context.Context, client *Client, interval time.Duration) (HealthRow, error) {
	var last HealthRow
	for {
		var resp HealthRow
		if err := client.Get(ctx, "/api/health", &resp); err == nil {
			last = resp
			if resp.Database == "Connected" {
				return resp, nil
			}
		}

		select {
		case <-ctx.Done():
			return last, errWaitExpired
		case <-time.After(interval):
		}
	}
}

func init() {
	healthCmd.Flags().DurationVar(&healthWait, "wait", 0, "Poll until the database is Connected, up to this long")
	healthCmd.Flags().DurationVar(&healthInterval, "interval", time.Second, "Poll interval used with --wait")
	rootCmd.AddCommand(statusCmd, healthCmd, pingCmd)
}
