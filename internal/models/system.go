package models

import "time"

// SystemMetrics summarises process counters for the readiness endpoint.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	DBQueryCount             uint64    `json:"dbQueryCount"`
	AverageDBQueryDurationMs float64   `json:"averageDbQueryDurationMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}

// ReadinessReport is returned by the readiness probe.
type ReadinessReport struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Metrics SystemMetrics     `json:"metrics"`
	Uptime  string            `json:"uptime"`
	Checked time.Time         `json:"checkedAt"`
}
