package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/prabalesh/wsltop/internal/models"
)

// ProcessTableCommand asks ps for pid, command name, state and resident
// memory, one process per line and no header.
const ProcessTableCommand = "ps -eo pid,comm,stat,rss --no-headers"

// Reasons a process table line is skipped.
const (
	ReasonShortLine = "short line"
	ReasonBadPID    = "bad pid"
	ReasonBadRSS    = "bad rss"
)

// SkipError explains why a line produced no record.
type SkipError struct {
	Reason string
	Field  string
}

func (e *SkipError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Field)
}

// LineResult is the outcome of parsing one line. Process is only
// meaningful when Err is nil. Defaulted notes a column that could not be
// read and was set to zero; the record is still kept.
type LineResult struct {
	LineNo    int
	Raw       string
	Process   models.Process
	Err       *SkipError
	Defaulted *SkipError
}

func (r LineResult) Skipped() bool { return r.Err != nil }

// ClassifyStatus maps a ps STAT value onto a status label by its first
// character. Stopped, disk-wait and the rest all become idle.
func ClassifyStatus(stat string) string {
	if stat == "" {
		return models.StatusIdle
	}
	switch stat[0] {
	case 'R':
		return models.StatusRunning
	case 'S':
		return models.StatusSleeping
	case 'Z':
		return models.StatusZombie
	default:
		return models.StatusIdle
	}
}

// ParseLine splits a line on whitespace and reads the first four columns.
// Extra columns are ignored. Short lines and unreadable pids skip the line;
// an unreadable rss keeps the record with zero memory usage.
func ParseLine(line string) LineResult {
	res := LineResult{Raw: line}

	fields := strings.Fields(line)
	if len(fields) < 4 {
		res.Err = &SkipError{Reason: ReasonShortLine}
		return res
	}

	pid, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		res.Err = &SkipError{Reason: ReasonBadPID, Field: fields[0]}
		return res
	}

	rss, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		rss = 0
		res.Defaulted = &SkipError{Reason: ReasonBadRSS, Field: fields[3]}
	}

	res.Process = models.Process{
		ID:          uint32(pid),
		Name:        fields[1],
		Status:      ClassifyStatus(fields[2]),
		MemoryUsage: rss,
	}
	return res
}

// ParseProcessTable parses every non-blank line of ps output. Line numbers
// are 1-based positions in the input.
func ParseProcessTable(output string) []LineResult {
	var results []LineResult
	for i, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		res := ParseLine(line)
		res.LineNo = i + 1
		results = append(results, res)
	}
	return results
}

// BuildProcessList keeps the parsed records and tallies them by status.
func BuildProcessList(results []LineResult) models.ProcessList {
	list := models.ProcessList{Processes: []models.Process{}}

	for _, res := range results {
		if res.Skipped() {
			list.Skipped++
			continue
		}
		if res.Defaulted != nil {
			list.Defaulted++
		}
		list.Processes = append(list.Processes, res.Process)

		switch res.Process.Status {
		case models.StatusRunning:
			list.Running++
		case models.StatusSleeping:
			list.Sleeping++
		case models.StatusZombie:
			list.Zombie++
		default:
			list.Idle++
		}
	}
	list.Total = len(list.Processes)

	return list
}

// QueryProcesses runs the process table command and parses the result.
func (c *ProcessCollector) QueryProcesses(ctx context.Context) (models.ProcessList, error) {
	output, err := c.runner.Run(ctx, ProcessTableCommand)
	if err != nil {
		return models.ProcessList{Processes: []models.Process{}}, fmt.Errorf("listing processes: %w", err)
	}

	results := ParseProcessTable(output)
	for _, res := range results {
		if res.Skipped() {
			c.log.Debugln("skipped line", res.LineNo, res.Err, res.Raw)
		} else if res.Defaulted != nil {
			c.log.Debugln("defaulted line", res.LineNo, res.Defaulted, res.Raw)
		}
	}

	return BuildProcessList(results), nil
}

// ListProcesses returns the live process records. A failed query yields an
// empty slice, so callers cannot tell it apart from an empty table; use
// QueryProcesses when that matters.
func (c *ProcessCollector) ListProcesses(ctx context.Context) []models.Process {
	list, err := c.QueryProcesses(ctx)
	if err != nil {
		c.log.Warn("process query failed: ", err)
		return []models.Process{}
	}
	return list.Processes
}
