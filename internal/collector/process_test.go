package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/prabalesh/wsltop/internal/models"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		stat string
		want string
	}{
		{"R", models.StatusRunning},
		{"R+", models.StatusRunning},
		{"S", models.StatusSleeping},
		{"Ss", models.StatusSleeping},
		{"Sl+", models.StatusSleeping},
		{"Z", models.StatusZombie},
		{"Z+", models.StatusZombie},
		{"D", models.StatusIdle},
		{"T", models.StatusIdle},
		{"I<", models.StatusIdle},
		{"s", models.StatusIdle},
		{"", models.StatusIdle},
	}

	for _, tt := range tests {
		if got := ClassifyStatus(tt.stat); got != tt.want {
			t.Errorf("ClassifyStatus(%q) = %q, want %q", tt.stat, got, tt.want)
		}
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   models.Process
		reason string
	}{
		{
			name: "running",
			line: "1234 nginx R 2048",
			want: models.Process{ID: 1234, Name: "nginx", Status: "running", MemoryUsage: 2048},
		},
		{
			name: "prefix match ignores trailing flags",
			line: "5 init Ss 512",
			want: models.Process{ID: 5, Name: "init", Status: "sleeping", MemoryUsage: 512},
		},
		{
			name: "leading padding from ps",
			line: "    42 bash            S+     3300",
			want: models.Process{ID: 42, Name: "bash", Status: "sleeping", MemoryUsage: 3300},
		},
		{
			name: "extra columns ignored",
			line: "7 defunct Z 0 extra",
			want: models.Process{ID: 7, Name: "defunct", Status: "zombie", MemoryUsage: 0},
		},
		{name: "three tokens", line: "1 init S", reason: ReasonShortLine},
		{name: "single token", line: "garbage", reason: ReasonShortLine},
		{name: "non numeric pid", line: "PID COMMAND STAT RSS", reason: ReasonBadPID},
		{name: "negative pid", line: "-1 x R 10", reason: ReasonBadPID},
		{name: "pid overflows uint32", line: "4294967296 x R 10", reason: ReasonBadPID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseLine(tt.line)
			if tt.reason != "" {
				if !res.Skipped() {
					t.Fatalf("ParseLine(%q) produced %+v, want skip", tt.line, res.Process)
				}
				if res.Err.Reason != tt.reason {
					t.Errorf("reason = %q, want %q", res.Err.Reason, tt.reason)
				}
				return
			}
			if res.Skipped() {
				t.Fatalf("ParseLine(%q) skipped: %v", tt.line, res.Err)
			}
			if res.Process != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, res.Process, tt.want)
			}
		})
	}
}

func TestParseLineBadRSSKeepsRecord(t *testing.T) {
	res := ParseLine("9 worker R 1.5k")

	if res.Skipped() {
		t.Fatalf("line skipped: %v", res.Err)
	}
	want := models.Process{ID: 9, Name: "worker", Status: "running", MemoryUsage: 0}
	if res.Process != want {
		t.Errorf("Process = %+v, want %+v", res.Process, want)
	}
	if res.Defaulted == nil || res.Defaulted.Reason != ReasonBadRSS || res.Defaulted.Field != "1.5k" {
		t.Errorf("Defaulted = %+v, want bad rss on %q", res.Defaulted, "1.5k")
	}
	if ParseLine("9 worker R 100").Defaulted != nil {
		t.Error("valid rss marked as defaulted")
	}
}

func TestParseProcessTable(t *testing.T) {
	output := "    1 init            Ss      512\n" +
		"\n" +
		"   88 short S\n" +
		"  120 sshd            S      4096\n" +
		"  121 python3         R     20480\n"

	results := ParseProcessTable(output)
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4 (blank lines ignored)", len(results))
	}

	if results[1].LineNo != 3 || !results[1].Skipped() {
		t.Errorf("results[1] = %+v, want skipped line 3", results[1])
	}
	if results[3].LineNo != 5 || results[3].Process.Name != "python3" {
		t.Errorf("results[3] = %+v", results[3])
	}
}

func TestBuildProcessListCounts(t *testing.T) {
	results := ParseProcessTable("1 a R 1\n2 b S 1\n3 c Ss 1\n4 d Z 1\n5 e D 1\nbad\n6 f R ?\n")
	list := BuildProcessList(results)

	if list.Total != 6 || len(list.Processes) != 6 {
		t.Errorf("Total = %d, len = %d, want 6", list.Total, len(list.Processes))
	}
	if list.Defaulted != 1 {
		t.Errorf("Defaulted = %d, want 1", list.Defaulted)
	}
	if list.Running != 2 || list.Sleeping != 2 || list.Zombie != 1 || list.Idle != 1 {
		t.Errorf("counts = %+v", list)
	}
	if list.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", list.Skipped)
	}
}

func TestQueryProcesses(t *testing.T) {
	runner := &fakeRunner{output: "1234 nginx R 2048\n1 init\n"}
	c := NewProcessCollector(runner, nil)

	list, err := c.QueryProcesses(context.Background())
	if err != nil {
		t.Fatalf("QueryProcesses() error = %v", err)
	}
	if len(runner.commands) != 1 || runner.commands[0] != ProcessTableCommand {
		t.Errorf("commands = %q", runner.commands)
	}
	if list.Total != 1 || list.Skipped != 1 {
		t.Errorf("list = %+v", list)
	}
}

func TestQueryProcessesPropagatesFailure(t *testing.T) {
	c := NewProcessCollector(&fakeRunner{err: errShell}, nil)

	_, err := c.QueryProcesses(context.Background())
	if !errors.Is(err, errShell) {
		t.Errorf("QueryProcesses() error = %v, want %v", err, errShell)
	}
}

// A failing query and an empty table look identical through ListProcesses.
func TestListProcessesFailureIsEmpty(t *testing.T) {
	failed := NewProcessCollector(&fakeRunner{err: errShell}, nil).ListProcesses(context.Background())
	empty := NewProcessCollector(&fakeRunner{output: ""}, nil).ListProcesses(context.Background())

	if failed == nil || len(failed) != 0 {
		t.Errorf("failed query = %#v, want empty non-nil slice", failed)
	}
	if len(empty) != len(failed) {
		t.Errorf("empty table = %#v, failed = %#v", empty, failed)
	}
}

func TestListProcessesDropsShortLines(t *testing.T) {
	c := NewProcessCollector(&fakeRunner{output: "1 a R\n2 b S 10\n"}, nil)

	got := c.ListProcesses(context.Background())
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("ListProcesses() = %+v", got)
	}
}
