package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	promapi "github.com/prometheus/client_golang/api"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/spf13/cobra"
)

var obsCmd = &cobra.Command{
	Use:   "obs",
	Short: "Observability commands (query a Prometheus-compatible API)",
}

var (
	promURL     string
	promTimeout time.Duration
)

var obsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show request and database summary metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQueries(cmd.Context(), cmd.OutOrStdout(), map[string]string{
			"HTTP Request Rate":     `sum(rate(neuro_http_requests_total[5m]))`,
			"Active Requests":       `sum(neuro_active_requests)`,
			"DB Connectivity State": `max(neuro_db_connectivity_state)`,
			"DB Connect Failures":   `sum(neuro_db_connect_attempts_total{result="failure"})`,
		})
	},
}

var obsLatencyCmd = &cobra.Command{
	Use:   "latency",
	Short: "Show latency metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQueries(cmd.Context(), cmd.OutOrStdout(), map[string]string{
			"HTTP P50":        `histogram_quantile(0.5, sum(rate(neuro_http_request_duration_seconds_bucket[5m])) by (le))`,
			"HTTP P95":        `histogram_quantile(0.95, sum(rate(neuro_http_request_duration_seconds_bucket[5m])) by (le))`,
			"HTTP P99":        `histogram_quantile(0.99, sum(rate(neuro_http_request_duration_seconds_bucket[5m])) by (le))`,
			"DB Connect Time": `max(neuro_db_connect_duration_seconds_sum)`,
		})
	},
}

func newPromAPI(address string) (promv1.API, error) {
	client, err := promapi.NewClient(promapi.Config{Address: address})
	if err != nil {
		return nil, fmt.Errorf("prometheus client: %w", err)
	}
	return promv1.NewAPI(client), nil
}

// runQueries prints one line per query, sorted by name. A failed query is
// reported on its own line and does not stop the others.
func runQueries(ctx context.Context, out io.Writer, queries map[string]string) error {
	prom, err := newPromAPI(promURL)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(queries))
	for name := range queries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, err := queryProm(ctx, prom, queries[name])
		if err != nil {
			value = "error: " + err.Error()
		}
		fmt.Fprintf(out, "%s: %s\n", name, value)
	}
	return nil
}

// queryProm runs an instant query and returns the first sample's value, or
// "no data" when the result is empty.
func queryProm(ctx context.Context, prom promv1.API, query string) (string, error) {
	if promTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, promTimeout)
		defer cancel()
	}

	result, _, err := prom.Query(ctx, query, time.Now())
	if err != nil {
		return "", err
	}

	switch v := result.(type) {
	case model.Vector:
		if len(v) == 0 {
			return "no data", nil
		}
		return v[0].Value.String(), nil
	case *model.Scalar:
		return v.Value.String(), nil
	case nil:
		return "no data", nil
	default:
		return "", fmt.Errorf("unexpected result type %s", result.Type())
	}
}

func init() {
	obsCmd.PersistentFlags().StringVar(&promURL, "prom-url", "http://localhost:9090", "Prometheus-compatible query API URL")
	obsCmd.PersistentFlags().DurationVar(&promTimeout, "prom-timeout", 10*time.Second, "Timeout for each query")
	obsCmd.AddCommand(obsSummaryCmd, obsLatencyCmd)
	rootCmd.AddCommand(obsCmd)
}
