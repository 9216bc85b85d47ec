package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Hammers the storefront catalog endpoint, the hottest read path. Most
// requests should be served from the Redis-cached payload; watch the cache
// hit/miss counters on /metrics while this runs.

type loadConfig struct {
	baseURL         string
	concurrentUsers int
	durationSeconds int
	rampUpSeconds   int
}

type loadResult struct {
	totalRequests   int64
	successRequests int64
	failedRequests  int64

	mu            sync.Mutex
	responseTimes []time.Duration
	errors        map[string]int64
}

func (r *loadResult) record(elapsed time.Duration, err error, statusCode int) {
	atomic.AddInt64(&r.totalRequests, 1)

	if err != nil {
		atomic.AddInt64(&r.failedRequests, 1)
		r.mu.Lock()
		r.errors[err.Error()]++
		r.mu.Unlock()
		return
	}
	if statusCode != http.StatusOK {
		atomic.AddInt64(&r.failedRequests, 1)
		r.mu.Lock()
		r.errors[fmt.Sprintf("HTTP %d", statusCode)]++
		r.mu.Unlock()
		return
	}

	atomic.AddInt64(&r.successRequests, 1)
	r.mu.Lock()
	r.responseTimes = append(r.responseTimes, elapsed)
	r.mu.Unlock()
}

func main() {
	cfg := loadConfig{}
	flag.StringVar(&cfg.baseURL, "url", "http://localhost:8080", "Base URL of the console")
	flag.IntVar(&cfg.concurrentUsers, "users", 50, "Concurrent virtual shoppers")
	flag.IntVar(&cfg.durationSeconds, "duration", 60, "Test duration in seconds")
	flag.IntVar(&cfg.rampUpSeconds, "rampup", 5, "Ramp-up period in seconds")
	flag.Parse()

	result := &loadResult{errors: make(map[string]int64)}
	client := &http.Client{Timeout: 10 * time.Second}

	stop := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
		case <-time.After(time.Duration(cfg.durationSeconds) * time.Second):
		}
		close(stop)
	}()

	fmt.Printf("Storefront load test: %d users, %ds against %s\n",
		cfg.concurrentUsers, cfg.durationSeconds, cfg.baseURL)

	start := time.Now()
	var wg sync.WaitGroup
	rampStep := time.Duration(cfg.rampUpSeconds) * time.Second / time.Duration(cfg.concurrentUsers)

	for i := 0; i < cfg.concurrentUsers; i++ {
		wg.Add(1)
		go func(delay time.Duration) {
			defer wg.Done()
			select {
			case <-time.After(delay):
			case <-stop:
				return
			}
			for {
				select {
				case <-stop:
					return
				default:
				}

				reqStart := time.Now()
				resp, err := client.Get(cfg.baseURL + "/storefront/catalog")
				elapsed := time.Since(reqStart)

				statusCode := 0
				if err == nil {
					statusCode = resp.StatusCode
					io.Copy(io.Discard, resp.Body)
					resp.Body.Close()
				}
				result.record(elapsed, err, statusCode)
			}
		}(rampStep * time.Duration(i))
	}

	wg.Wait()
	printReport(result, time.Since(start))
}

func printReport(result *loadResult, elapsed time.Duration) {
	total := atomic.LoadInt64(&result.totalRequests)
	success := atomic.LoadInt64(&result.successRequests)
	failed := atomic.LoadInt64(&result.failedRequests)

	fmt.Println("\n=== Storefront Load Test Results ===")
	fmt.Printf("Duration:            %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("Total requests:      %d\n", total)
	fmt.Printf("Successful:          %d\n", success)
	fmt.Printf("Failed:              %d\n", failed)
	if elapsed > 0 {
		fmt.Printf("Throughput:          %.1f req/s\n", float64(total)/elapsed.Seconds())
	}

	result.mu.Lock()
	defer result.mu.Unlock()

	if len(result.responseTimes) > 0 {
		times := make([]time.Duration, len(result.responseTimes))
		copy(times, result.responseTimes)
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

		fmt.Printf("P50 response time:   %v\n", percentile(times, 50))
		fmt.Printf("P95 response time:   %v\n", percentile(times, 95))
		fmt.Printf("P99 response time:   %v\n", percentile(times, 99))
	}

	if len(result.errors) > 0 {
		fmt.Println("\nErrors:")
		for msg, count := range result.errors {
			fmt.Printf("  %s: %d\n", msg, count)
		}
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
