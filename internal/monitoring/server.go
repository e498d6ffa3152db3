package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"grounds-backend/internal/cache"
	"grounds-backend/internal/timeutil"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// MonitoringServer exposes ops stats on a separate port and pushes alerts
// to connected websocket clients. Not part of the business API.
type MonitoringServer struct {
	db         *pgxpool.Pool
	port       int
	alerts     []Alert
	alertsMux  sync.RWMutex
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Alert
}

type Alert struct {
	ID        int       `json:"id"`
	Severity  string    `json:"severity"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Resolved  bool      `json:"resolved"`
}

type Stats struct {
	DatabaseStatus    string  `json:"database_status"`
	ActiveConnections int     `json:"active_connections"`
	ResponseTime      int64   `json:"response_time_ms"`
	CacheStatus       string  `json:"cache_status"`
	ActiveAlerts      int     `json:"active_alerts"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	MemoryUsed        string  `json:"memory_used"`
	MemoryTotal       string  `json:"memory_total"`
	DiskPercent       float64 `json:"disk_percent"`
	DiskUsed          string  `json:"disk_used"`
	DiskTotal         string  `json:"disk_total"`
	DBSize            string  `json:"db_size"`
	Uptime            string  `json:"uptime"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewMonitoringServer(db *pgxpool.Pool, port int) *MonitoringServer {
	return &MonitoringServer{
		db:        db,
		port:      port,
		alerts:    make([]Alert, 0),
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Alert),
	}
}

func (ms *MonitoringServer) Start() {
	r := mux.NewRouter()

	r.HandleFunc("/api/stats", ms.getStats).Methods("GET")
	r.HandleFunc("/api/alerts", ms.getAlerts).Methods("GET")

	// WebSocket for real-time alerts
	r.HandleFunc("/ws", ms.handleWebSocket)

	// Start background alert broadcaster
	go ms.handleBroadcast()

	// Start background health checker
	go ms.monitorHealth()

	addr := fmt.Sprintf(":%d", ms.port)
	log.Printf("[Monitoring] listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func (ms *MonitoringServer) getStats(w http.ResponseWriter, r *http.Request) {
	stats := ms.collectStats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (ms *MonitoringServer) collectStats() Stats {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := ms.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	dbStatus := "healthy"
	if err != nil {
		dbStatus = "unhealthy"
	}

	cacheStatus := "healthy"
	if !cache.IsHealthy() {
		cacheStatus = "unavailable"
	}

	// Get active connections
	var activeConns int
	ms.db.QueryRow(ctx, "SELECT count(*) FROM pg_stat_activity").Scan(&activeConns)

	// Get database size
	var dbSizeBytes int64
	ms.db.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&dbSizeBytes)

	// Get database uptime
	var uptimeSec int
	ms.db.QueryRow(ctx, "SELECT EXTRACT(EPOCH FROM (NOW() - pg_postmaster_start_time()))::int").Scan(&uptimeSec)

	// Host metrics
	cpuPercents, _ := cpu.Percent(time.Second, false)
	cpuPercent := 0.0
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	ms.alertsMux.RLock()
	activeAlertCount := 0
	for _, alert := range ms.alerts {
		if !alert.Resolved {
			activeAlertCount++
		}
	}
	ms.alertsMux.RUnlock()

	return Stats{
		DatabaseStatus:    dbStatus,
		ActiveConnections: activeConns,
		ResponseTime:      responseTime,
		CacheStatus:       cacheStatus,
		ActiveAlerts:      activeAlertCount,
		CPUPercent:        cpuPercent,
		MemoryPercent:     memStats.UsedPercent,
		MemoryUsed:        formatBytes(memStats.Used),
		MemoryTotal:       formatBytes(memStats.Total),
		DiskPercent:       diskStats.UsedPercent,
		DiskUsed:          formatBytes(diskStats.Used),
		DiskTotal:         formatBytes(diskStats.Total),
		DBSize:            fmt.Sprintf("%.2f GB", float64(dbSizeBytes)/(1024*1024*1024)),
		Uptime:            formatUptime(uptimeSec),
	}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (ms *MonitoringServer) getAlerts(w http.ResponseWriter, r *http.Request) {
	ms.alertsMux.RLock()
	defer ms.alertsMux.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ms.alerts)
}

func (ms *MonitoringServer) raiseAlert(severity, alertType, message string) {
	alert := Alert{
		Severity:  severity,
		Type:      alertType,
		Message:   message,
		Timestamp: timeutil.Now(),
	}

	ms.alertsMux.Lock()
	alert.ID = len(ms.alerts) + 1
	ms.alerts = append(ms.alerts, alert)
	ms.alertsMux.Unlock()

	ms.broadcast <- alert
}

func (ms *MonitoringServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Monitoring] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	ms.clientsMux.Lock()
	ms.clients[conn] = true
	ms.clientsMux.Unlock()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			ms.clientsMux.Lock()
			delete(ms.clients, conn)
			ms.clientsMux.Unlock()
			break
		}
	}
}

func (ms *MonitoringServer) handleBroadcast() {
	for alert := range ms.broadcast {
		ms.clientsMux.Lock()
		for client := range ms.clients {
			err := client.WriteJSON(alert)
			if err != nil {
				client.Close()
				delete(ms.clients, client)
			}
		}
		ms.clientsMux.Unlock()
	}
}

func (ms *MonitoringServer) monitorHealth() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		stats := ms.collectStats()

		if stats.DatabaseStatus == "unhealthy" {
			ms.raiseAlert("critical", "database_down", "Database is unreachable")
		}
		if stats.ResponseTime > 1000 {
			ms.raiseAlert("warning", "high_latency",
				fmt.Sprintf("Database response time: %dms", stats.ResponseTime))
		}
		if stats.CacheStatus != "healthy" {
			ms.raiseAlert("warning", "cache_unavailable", "Redis cache is unavailable")
		}
	}
}
