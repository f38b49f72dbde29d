package widgets

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	internalmcp "github.com/wagiedev/mcp-apps-go/internal/mcp"
	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var systemMonitorWidget = &widget.Widget{
	Identifier: "get_system_info",
	Title:      "System Monitor",
	Description: `Display real-time system monitoring with CPU and memory usage charts.

Use this tool when:
- The user asks about system performance or resource usage
- Monitoring CPU load or memory consumption
- Viewing system information (hostname, platform, uptime)

Args:
    (No parameters required - automatically detects system info)

Returns:
    Interactive widget with:
    - Per-core CPU usage chart (updates every 2 seconds)
    - Memory usage bar with percentage
    - System info (hostname, platform, uptime)

Example:
    get_system_info()`,
	TemplateURI: "ui://widget/system-monitor.html",
	Invoking:    "Loading system monitor...",
	Invoked:     "System monitor ready",
	Component:   "system-monitor",
}

// PollSystemStatsTool is the data-only tool the system monitor polls.
const PollSystemStatsTool = "poll_system_stats"

// CPUInfo describes the host processor.
type CPUInfo struct {
	Model string `json:"model"`
	Count int    `json:"count"`
}

// MemoryInfo describes installed memory.
type MemoryInfo struct {
	TotalBytes uint64 `json:"totalBytes"`
}

// SystemInfo is the static host description shown by the widget.
type SystemInfo struct {
	Hostname string     `json:"hostname"`
	Platform string     `json:"platform"`
	CPU      CPUInfo    `json:"cpu"`
	Memory   MemoryInfo `json:"memory"`
}

// SystemStats is one live sample.
type SystemStats struct {
	CPUPercents   []float64 `json:"cpuPercents"`
	MemoryPercent float64   `json:"memoryPercent"`
	MemoryUsedGB  float64   `json:"memoryUsedGB"`
	MemoryTotalGB float64   `json:"memoryTotalGB"`
	Uptime        uint64    `json:"uptime"`
	Timestamp     string    `json:"timestamp"`
}

// StatsSource reads host information and live utilization.
type StatsSource interface {
	Info(ctx context.Context) (*SystemInfo, error)
	Sample(ctx context.Context) (*SystemStats, error)
}

// HostStats reads the local machine through gopsutil.
type HostStats struct{}

var _ StatsSource = HostStats{}

// Info implements StatsSource.
func (HostStats) Info(ctx context.Context) (*SystemInfo, error) {
	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("host info: %w", err)
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("virtual memory: %w", err)
	}

	count, err := cpu.CountsWithContext(ctx, true)
	if err != nil || count < 1 {
		count = 1
	}

	model := "Unknown"
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		model = infos[0].ModelName
	}

	return &SystemInfo{
		Hostname: hi.Hostname,
		Platform: hi.OS + " " + hi.KernelArch,
		CPU:      CPUInfo{Model: model, Count: count},
		Memory:   MemoryInfo{TotalBytes: vm.Total},
	}, nil
}

// Sample implements StatsSource.
func (HostStats) Sample(ctx context.Context) (*SystemStats, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return nil, fmt.Errorf("cpu percent: %w", err)
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("virtual memory: %w", err)
	}

	uptime, err := host.UptimeWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("uptime: %w", err)
	}

	return &SystemStats{
		CPUPercents:   percents,
		MemoryPercent: vm.UsedPercent,
		MemoryUsedGB:  gigabytes(vm.Used),
		MemoryTotalGB: gigabytes(vm.Total),
		Uptime:        uptime,
		Timestamp:     time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}, nil
}

// gigabytes converts bytes to GiB rounded to two decimals.
func gigabytes(b uint64) float64 {
	return math.Round(float64(b)/(1<<30)*100) / 100
}

func newSystemMonitor(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("SystemInfoInput")
	if err != nil {
		return nil, err
	}

	entry := define(deps, systemMonitorWidget, model, func(ctx context.Context, _ struct{}) (*output, error) {
		info, err := deps.Stats.Info(ctx)
		if err != nil {
			return nil, err
		}

		return &output{
			Narration: fmt.Sprintf("System: %s (%s)", info.Hostname, info.Platform),
			Data:      info,
		}, nil
	})

	pollModel, err := schema.NewModel("PollSystemStatsInput")
	if err != nil {
		return nil, err
	}

	entry.DataTools = []registry.DataTool{
		dataTool(PollSystemStatsTool,
			"Returns live CPU and memory stats. Called by the system monitor widget for polling, "+
				"not intended for direct LLM use.",
			pollModel,
			func(ctx context.Context, args map[string]any) *mcp.CallToolResult {
				if _, err := pollModel.Validate(args); err != nil {
					return internalmcp.ErrorResult(err.Error())
				}

				stats, err := deps.Stats.Sample(ctx)
				if err != nil {
					deps.Logger.WarnContext(ctx, "system stats unavailable", "error", err)

					return internalmcp.ErrorResult("System stats unavailable: " + err.Error())
				}

				return &mcp.CallToolResult{
					Content: []mcp.Content{&mcp.TextContent{
						Text: fmt.Sprintf("CPU: %v, Memory: %.1f%%", stats.CPUPercents, stats.MemoryPercent),
					}},
					StructuredContent: stats,
				}
			},
		),
	}

	return entry, nil
}
