package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// GatewayStats is a point-in-time view of the realtime gateway, provided
// by the gateway itself.
type GatewayStats struct {
	Rooms       int
	Connections int
	OnlineUsers int
}

// StatsWorker periodically logs process health (RSS, CPU, status) next to
// gateway occupancy. It is the local observability loop for operators
// tailing the logs; there is no remote control plane.
type StatsWorker struct {
	log      *slog.Logger
	interval time.Duration
	gateway  func() GatewayStats
}

func NewStatsWorker(log *slog.Logger, interval time.Duration, gateway func() GatewayStats) *StatsWorker {
	return &StatsWorker{log: log, interval: interval, gateway: gateway}
}

func (w *StatsWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rss, cpu, status, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			stats := w.gateway()
			w.log.Info("gateway stats",
				"rooms", stats.Rooms,
				"connections", stats.Connections,
				"online_users", stats.OnlineUsers,
				"ram_bytes", rss,
				"cpu_percent", cpu,
				"pid_status", status,
			)
		}
	}
}

// selfStats retrieves technical metrics (Memory, CPU, OS status) for the
// given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}
	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
