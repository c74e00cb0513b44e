package services

import (
	"context"
	"os"
	"sync"
	"time"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type MetricsService struct {
	store    *store.Store
	diskPath string
	maxKept  int
}

func NewMetricsService(s *store.Store, diskPath string) *MetricsService {
	return &MetricsService{store: s, diskPath: diskPath, maxKept: 720}
}

// Capture samples process and host resource usage and persists it. Gauges
// that cannot be read on the host degrade to zero rather than failing.
func (s *MetricsService) Capture(ctx context.Context) (models.MetricSample, error) {
	proc, _ := process.NewProcess(int32(os.Getpid()))
	memStat, _ := mem.VirtualMemory()
	diskStat, err := disk.Usage(s.diskPath)
	if err != nil {
		diskStat, _ = disk.Usage("/")
	}
	processRSS := int64(0)
	processCPU := float64(0)
	if proc != nil {
		rss, _ := proc.MemoryInfo()
		if rss != nil {
			processRSS = int64(rss.RSS)
		}
		cpuPerc, _ := proc.CPUPercent()
		processCPU = cpuPerc / 100.0
	}
	sysCPU, _ := cpu.Percent(0, false)
	sysCPUValue := 0.0
	if len(sysCPU) > 0 {
		sysCPUValue = sysCPU[0] / 100.0
	}
	sample := models.MetricSample{
		ID:             uuid.NewString(),
		CapturedAt:     time.Now().UTC().Format(time.RFC3339),
		HeapUsedBytes:  processRSS,
		ProcessCpuLoad: processCPU,
		SystemCpuLoad:  sysCPUValue,
	}
	if memStat != nil {
		sample.SystemMemoryTotal = int64(memStat.Total)
		sample.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	if diskStat != nil {
		sample.DiskTotalBytes = int64(diskStat.Total)
		sample.DiskUsedBytes = int64(diskStat.Used)
	}
	rec, err := store.Encode(sample)
	if err != nil {
		return models.MetricSample{}, err
	}
	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return models.MetricSample{}, err
	}
	if err := store.Decode(created, &sample); err != nil {
		return models.MetricSample{}, err
	}
	s.prune(ctx)
	return sample, nil
}

// prune drops the oldest samples once the retention window is exceeded.
func (s *MetricsService) prune(ctx context.Context) {
	recs, err := s.store.List(ctx, "-captured_at", 0)
	if err != nil || len(recs) <= s.maxKept {
		return
	}
	for _, rec := range recs[s.maxKept:] {
		_ = s.store.Remove(ctx, rec["id"])
	}
}

// History returns the latest samples in ascending capture order.
func (s *MetricsService) History(ctx context.Context, limit int) ([]models.MetricSample, error) {
	recs, err := s.store.List(ctx, "-captured_at", limit)
	if err != nil {
		return nil, err
	}
	samples, err := store.DecodeAll[models.MetricSample](recs)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
		samples[i], samples[j] = samples[j], samples[i]
	}
	return samples, nil
}

// MetricsHub pushes each captured sample to every connected dashboard.
type MetricsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	ch      chan models.MetricSample
}

func NewMetricsHub() *MetricsHub {
	return &MetricsHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan models.MetricSample, 16),
	}
}

func (h *MetricsHub) Run(ctx context.Context) {
	for {
		select {
		case sample := <-h.ch:
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.WriteJSON(sample)
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (h *MetricsHub) Broadcast(sample models.MetricSample) {
	select {
	case h.ch <- sample:
	default:
	}
}

func (h *MetricsHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *MetricsHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}
