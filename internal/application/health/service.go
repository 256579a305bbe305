package health

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"easylease-admin/internal/domain"
	"easylease-admin/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Dependency states reported by CollectHealth.
const (
	StateConnected   = "connected"
	StateReachable   = "reachable"
	StateDegraded    = "degraded"
	StateUnreachable = "unreachable"
	StateError       = "error"
	StateDisabled    = "disabled"
)

// APIPinger is the listings backend health probe.
type APIPinger interface {
	Health(ctx context.Context) (domain.Health, error)
}

var processStart = time.Now()

// CollectResult is the payload of /health/json and the status page.
type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Goroutines    int        `json:"goroutines"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	Alloc    int `json:"alloc"`
	HeapUsed int `json:"heapUsed"`
}

type TrafficInfo struct {
	TotalRequests   int          `json:"totalRequests"`
	SuccessCount    int          `json:"successCount"`
	FailedCount     int          `json:"failedCount"`
	SuccessRate     string       `json:"successRate"`
	AvgResponseTime string       `json:"avgResponseTime"`
	LastRequest     *LastRequest `json:"lastRequest"`
}

// LastRequest is the entry HealthMarker stores for the latest tracked request.
type LastRequest struct {
	Time   time.Time `json:"time"`
	IP     string    `json:"ip"`
	Path   string    `json:"path"`
	Method string    `json:"method"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// Healthy reports whether the dependency is usable (or intentionally absent).
func (d DepStatus) Healthy() bool {
	switch d.Status {
	case StateConnected, StateReachable, StateDisabled:
		return true
	}
	return false
}

// CollectHealth probes the listings API, Redis and the public site and reads the
// traffic counters kept by middleware.HealthMarker. rdb and api may be nil.
// Status is "ok" when the API answers and Redis is either connected or not configured.
func CollectHealth(ctx context.Context, rdb *redis.Client, api APIPinger, publicURL string) CollectResult {
	result := CollectResult{Dependencies: make(map[string]DepStatus)}

	result.Dependencies["api"] = pingAPI(ctx, api)

	redisDep, traffic, started := readTraffic(ctx, rdb)
	result.Dependencies["redis"] = redisDep
	result.Traffic = traffic

	site := DepStatus{Status: StateDisabled}
	if publicURL != "" {
		site.Status = StateUnreachable
		if ms := httpPing(ctx, publicURL, 3*time.Second); ms != nil {
			site = DepStatus{Status: StateReachable, PingMs: ms}
		}
	}
	result.Dependencies["public_site"] = site

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptime := int64(time.Since(started).Seconds())
	if uptime < 0 {
		uptime = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptime,
		Memory:        MemoryInfo{Alloc: int(m.Alloc / 1024 / 1024), HeapUsed: int(m.HeapInuse / 1024 / 1024)},
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	result.Status = "issue"
	if result.Dependencies["api"].Status == StateReachable && redisDep.Healthy() {
		result.Status = "ok"
	}
	return result
}

func pingAPI(ctx context.Context, api APIPinger) DepStatus {
	if api == nil {
		return DepStatus{Status: StateDisabled}
	}
	start := time.Now()
	h, err := api.Health(ctx)
	if err != nil {
		return DepStatus{Status: StateUnreachable}
	}
	ms := time.Since(start).Milliseconds()
	if !h.OK && h.Status != "" && h.Status != "ok" && h.Status != "healthy" {
		return DepStatus{Status: StateDegraded, PingMs: &ms}
	}
	return DepStatus{Status: StateReachable, PingMs: &ms}
}

func readTraffic(ctx context.Context, rdb *redis.Client) (DepStatus, TrafficInfo, time.Time) {
	stats := TrafficInfo{SuccessRate: "100", AvgResponseTime: "0"}
	if rdb == nil {
		return DepStatus{Status: StateDisabled}, stats, processStart
	}

	start := time.Now()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return DepStatus{Status: StateError}, stats, processStart
	}
	ms := time.Since(start).Milliseconds()
	dep := DepStatus{Status: StateConnected, PingMs: &ms}

	vals, err := rdb.MGet(ctx,
		middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime,
		middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq,
	).Result()
	if err != nil {
		return dep, stats, processStart
	}
	str := func(i int) string {
		s, _ := vals[i].(string)
		return s
	}

	started := processStart
	if t, err := strconv.ParseInt(str(4), 10, 64); err == nil {
		started = time.UnixMilli(t)
	} else {
		rdb.SetNX(ctx, middleware.KeyStartTime, processStart.UnixMilli(), 0)
	}

	stats.TotalRequests, _ = strconv.Atoi(str(0))
	stats.FailedCount, _ = strconv.Atoi(str(1))
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(str(2), 64)
	count, _ := strconv.Atoi(str(3))
	if count > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(count), 'f', 2, 64)
	}
	if raw := str(5); raw != "" {
		var last LastRequest
		if json.Unmarshal([]byte(raw), &last) == nil {
			stats.LastRequest = &last
		}
	}
	return dep, stats, started
}

func httpPing(ctx context.Context, url string, timeout time.Duration) *int64 {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	ms := time.Since(start).Milliseconds()
	return &ms
}
