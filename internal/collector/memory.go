package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/prabalesh/wsltop/internal/models"
)

const MemInfoCommand = "cat /proc/meminfo"

// MemoryStats reads /proc/meminfo from inside WSL.
func (c *ProcessCollector) MemoryStats(ctx context.Context) (models.MemoryStats, error) {
	output, err := c.runner.Run(ctx, MemInfoCommand)
	if err != nil {
		return models.MemoryStats{}, fmt.Errorf("reading meminfo: %w", err)
	}
	return ParseMemInfo(output), nil
}

// ParseMemInfo turns meminfo text into stats. Values stay in KB.
func ParseMemInfo(content string) models.MemoryStats {
	memInfo := make(map[string]uint64)

	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			key := strings.TrimSuffix(fields[0], ":")
			if value, err := strconv.ParseUint(fields[1], 10, 64); err == nil {
				memInfo[key] = value
			}
		}
	}

	total := memInfo["MemTotal"]
	available := memInfo["MemAvailable"]
	var used uint64
	if total > available {
		used = total - available
	}

	var usagePercent float64
	if total > 0 {
		usagePercent = float64(used) / float64(total) * 100
	}

	var swapUsed uint64
	if memInfo["SwapTotal"] > memInfo["SwapFree"] {
		swapUsed = memInfo["SwapTotal"] - memInfo["SwapFree"]
	}

	return models.MemoryStats{
		Total:        total,
		Used:         used,
		Free:         memInfo["MemFree"],
		Available:    available,
		UsagePercent: usagePercent,
		SwapTotal:    memInfo["SwapTotal"],
		SwapUsed:     swapUsed,
	}
}
