package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/logging"
)

var (
	targetURL   string
	username    string
	password    string
	concurrency int
	duration    time.Duration
	workload    string
)

var (
	totalRequests uint64
	created       uint64
	approved      uint64
	conflicts     uint64
	failOther     uint64
)

func main() {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Drive payment requests through the approval stage under load",
		Long: `Each worker creates payment requests and approves them.

Workloads:
  create   only create requests (exercises unique number generation)
  approve  create then approve each request`,
		RunE: runBenchmark,
	}
	cmd.Flags().StringVar(&targetURL, "url", "http://localhost:8080", "API base URL")
	cmd.Flags().StringVar(&username, "user", "admin", "login username")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.Flags().IntVar(&concurrency, "workers", 10, "number of concurrent workers")
	cmd.Flags().DurationVar(&duration, "duration", 30*time.Second, "test duration")
	cmd.Flags().StringVar(&workload, "workload", "approve", "workload type: create | approve")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	if workload != "create" && workload != "approve" {
		return fmt.Errorf("unknown workload %q", workload)
	}
	logger, err := logging.New("info", "console", "stderr")
	if err != nil {
		return err
	}
	defer logger.Sync()

	client := &http.Client{Timeout: 5 * time.Second}
	token, err := login(client)
	if err != nil {
		return err
	}

	logger.Info("starting benchmark",
		zap.String("workload", workload),
		zap.Int("workers", concurrency),
		zap.Duration("duration", duration))

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go worker(&wg, client, token, start)
	}
	wg.Wait()

	return printResults(time.Since(start))
}

func login(client *http.Client) (string, error) {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := client.Post(targetURL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login: unexpected status %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return out.Token, nil
}

func worker(wg *sync.WaitGroup, client *http.Client, token string, start time.Time) {
	defer wg.Done()

	for time.Since(start) < duration {
		payload := map[string]any{
			"fmsName": "benchmark",
			"payTo":   fmt.Sprintf("vendor-%d", rand.Intn(100)),
			"amount":  rand.Intn(10000) + 1,
		}
		var out struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		code, err := call(client, token, http.MethodPost, "/api/payment-fms/create", payload, &out)
		if !record(code, err, http.StatusCreated, &created) || workload == "create" {
			continue
		}

		approval := map[string]any{"status": "Approved", "stageRemarks": "benchmark"}
		code, err = call(client, token, http.MethodPatch, "/api/payment-fms/approval/"+out.Data.ID+"/process", approval, nil)
		record(code, err, http.StatusOK, &approved)
	}
}

// record tallies one response and reports whether it had the wanted status.
func record(code int, err error, want int, counter *uint64) bool {
	if err != nil {
		atomic.AddUint64(&failOther, 1)
		return false
	}
	atomic.AddUint64(&totalRequests, 1)
	switch code {
	case want:
		atomic.AddUint64(counter, 1)
		return true
	case http.StatusConflict:
		// Two workers drew the same unique number.
		atomic.AddUint64(&conflicts, 1)
	default:
		atomic.AddUint64(&failOther, 1)
	}
	return false
}

func call(client *http.Client, token, method, path string, payload, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequest(method, targetURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func printResults(d time.Duration) error {
	total := atomic.LoadUint64(&totalRequests)
	c409 := atomic.LoadUint64(&conflicts)

	conflictRate := 0.0
	if total > 0 {
		conflictRate = float64(c409) / float64(total) * 100
	}

	results := map[string]any{
		"workload":          workload,
		"duration_sec":      d.Seconds(),
		"total_requests":    total,
		"throughput_rps":    float64(total) / d.Seconds(),
		"created":           atomic.LoadUint64(&created),
		"approved":          atomic.LoadUint64(&approved),
		"conflicts":         c409,
		"conflict_rate_pct": conflictRate,
		"errors":            atomic.LoadUint64(&failOther),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return err
	}

	file, err := os.Create(fmt.Sprintf("results_%s.json", workload))
	if err != nil {
		return err
	}
	defer file.Close()
	return json.NewEncoder(file).Encode(results)
}
