// Package monitoring runs the internal ops dashboard on its own port:
// JSON stats, a Prometheus endpoint, and a websocket feed pushing the
// same stats to connected clients.
package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"gametrack-backend/internal/locations"
	"gametrack-backend/internal/repositories"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type MonitoringServer struct {
	db         *pgxpool.Pool
	games      *repositories.GameRepository
	transport  *repositories.TransportationRepository
	office     *repositories.OfficeRepository
	issues     *repositories.IssueRepository
	registry   *locations.Registry
	port       int
	started    time.Time
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
}

type Stats struct {
	DatabaseStatus string         `json:"database_status"`
	ResponseTime   int64          `json:"response_time_ms"`
	CPUPercent     float64        `json:"cpu_percent"`
	MemoryPercent  float64        `json:"memory_percent"`
	DiskPercent    float64        `json:"disk_percent"`
	Uptime         string         `json:"uptime"`
	StageCounts    map[string]int `json:"stage_counts"`
	OpenIssues     int            `json:"open_issues"`
	Timestamp      time.Time      `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewMonitoringServer(
	db *pgxpool.Pool,
	games *repositories.GameRepository,
	transport *repositories.TransportationRepository,
	office *repositories.OfficeRepository,
	issues *repositories.IssueRepository,
	registry *locations.Registry,
	port int,
) *MonitoringServer {
	return &MonitoringServer{
		db:        db,
		games:     games,
		transport: transport,
		office:    office,
		issues:    issues,
		registry:  registry,
		port:      port,
		started:   time.Now(),
		clients:   make(map[*websocket.Conn]bool),
	}
}

// Start serves the monitoring surface and begins the broadcast loop.
// Blocks, so callers run it in a goroutine.
func (ms *MonitoringServer) Start() {
	r := mux.NewRouter()
	r.HandleFunc("/api/stats", ms.getStats).Methods("GET")
	r.HandleFunc("/ws", ms.handleWebSocket)
	r.Handle("/metrics", promhttp.Handler())

	go ms.broadcastLoop()

	addr := fmt.Sprintf(":%d", ms.port)
	log.Printf("[Monitoring] Dashboard listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Printf("[Monitoring] Server stopped: %v", err)
	}
}

func (ms *MonitoringServer) getStats(w http.ResponseWriter, r *http.Request) {
	stats := ms.collectStats(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (ms *MonitoringServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Monitoring] WebSocket upgrade failed: %v", err)
		return
	}

	ms.clientsMux.Lock()
	ms.clients[conn] = true
	ms.clientsMux.Unlock()

	// Reader loop only exists to notice the client going away.
	go func() {
		defer ms.dropClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (ms *MonitoringServer) dropClient(conn *websocket.Conn) {
	ms.clientsMux.Lock()
	delete(ms.clients, conn)
	ms.clientsMux.Unlock()
	conn.Close()
}

// broadcastLoop pushes fresh stats to every connected client every
// five seconds.
func (ms *MonitoringServer) broadcastLoop() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ms.clientsMux.Lock()
		if len(ms.clients) == 0 {
			ms.clientsMux.Unlock()
			continue
		}
		ms.clientsMux.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		stats := ms.collectStats(ctx)
		cancel()

		data, err := json.Marshal(stats)
		if err != nil {
			continue
		}

		ms.clientsMux.Lock()
		for conn := range ms.clients {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				delete(ms.clients, conn)
				conn.Close()
			}
		}
		ms.clientsMux.Unlock()
	}
}

func (ms *MonitoringServer) collectStats(ctx context.Context) Stats {
	stats := Stats{
		DatabaseStatus: "healthy",
		StageCounts:    make(map[string]int),
		Timestamp:      time.Now(),
		Uptime:         time.Since(ms.started).Round(time.Second).String(),
	}

	start := time.Now()
	if err := ms.db.Ping(ctx); err != nil {
		stats.DatabaseStatus = "unhealthy"
	}
	stats.ResponseTime = time.Since(start).Milliseconds()

	if stats.DatabaseStatus == "healthy" {
		for _, stage := range []locations.Stage{locations.StageInventory, locations.StageOpen, locations.StageClosed} {
			total := 0
			for _, loc := range ms.registry.Locations() {
				count, err := ms.games.CountStage(ctx, stage, loc)
				if err != nil {
					total = 0
					break
				}
				total += count
			}
			stats.StageCounts[string(stage)] = total
		}
		if count, err := ms.transport.Count(ctx); err == nil {
			stats.StageCounts["Transportation"] = count
		}
		if count, err := ms.office.Count(ctx); err == nil {
			stats.StageCounts["Office"] = count
		}
		if count, err := ms.issues.Count(ctx); err == nil {
			stats.OpenIssues = count
		}
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
	}

	return stats
}
