package kernel

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prabalesh/wsltop/internal/models"
)

type fakeRunner struct {
	outputs  map[string]string
	err      error
	commands []string
}

func (f *fakeRunner) Run(_ context.Context, command string) (string, error) {
	f.commands = append(f.commands, command)
	if f.err != nil {
		return "", f.err
	}
	return f.outputs[command], nil
}

func newKernel(runner *fakeRunner) *Kernel {
	return New(runner, Options{SystemInfo: models.DefaultSystemInfo(), AllowShell: true})
}

func TestGreet(t *testing.T) {
	k := newKernel(&fakeRunner{})
	if got := k.Greet("Ana"); got != "Pitter OS (Ubuntu) - Bem-vindo, Ana!" {
		t.Errorf("Greet() = %q", got)
	}
}

func TestSystemInfo(t *testing.T) {
	k := newKernel(&fakeRunner{})
	if got := k.SystemInfo(); got != models.DefaultSystemInfo() {
		t.Errorf("SystemInfo() = %+v", got)
	}
}

func TestCreateProcessDoesNotShellOut(t *testing.T) {
	runner := &fakeRunner{}
	k := newKernel(runner)

	a := k.CreateProcess("editor")
	b := k.CreateProcess("compiler")
	if b.ID <= a.ID {
		t.Errorf("IDs not increasing: %d then %d", a.ID, b.ID)
	}
	if len(runner.commands) != 0 {
		t.Errorf("CreateProcess ran %q", runner.commands)
	}
	if got := k.SymbolicProcesses(); len(got) != 2 || got[1] != b {
		t.Errorf("SymbolicProcesses() = %+v", got)
	}
}

func TestKernelsDoNotShareRegistries(t *testing.T) {
	a := newKernel(&fakeRunner{})
	b := newKernel(&fakeRunner{})

	a.CreateProcess("x")
	if p := b.CreateProcess("y"); p.ID != 1 {
		t.Errorf("second kernel started at ID %d", p.ID)
	}
}

func TestListProcesses(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"ps -eo pid,comm,stat,rss --no-headers": "1234 nginx R 2048\n5 init Ss 512\n",
	}}
	k := newKernel(runner)

	got := k.ListProcesses(context.Background())
	want := []models.Process{
		{ID: 1234, Name: "nginx", Status: "running", MemoryUsage: 2048},
		{ID: 5, Name: "init", Status: "sleeping", MemoryUsage: 512},
	}
	if len(got) != len(want) {
		t.Fatalf("ListProcesses() = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestListProcessesIgnoresSymbolicRecords(t *testing.T) {
	k := newKernel(&fakeRunner{outputs: map[string]string{}})
	k.CreateProcess("symbolic")

	if got := k.ListProcesses(context.Background()); len(got) != 0 {
		t.Errorf("ListProcesses() = %+v, want no records", got)
	}
}

func TestListProcessesFailure(t *testing.T) {
	k := newKernel(&fakeRunner{err: errors.New("boom")})
	if got := k.ListProcesses(context.Background()); got == nil || len(got) != 0 {
		t.Errorf("ListProcesses() = %#v", got)
	}
	if _, err := k.QueryProcesses(context.Background()); err == nil {
		t.Error("QueryProcesses() should surface the failure")
	}
}

func TestKillProcess(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{}}
	k := newKernel(runner)

	msg, err := k.KillProcess(context.Background(), 77)
	if err != nil {
		t.Fatalf("KillProcess() error = %v", err)
	}
	if msg != "Processo 77 terminado com sucesso" {
		t.Errorf("KillProcess() = %q", msg)
	}
	if runner.commands[0] != "kill -9 77" {
		t.Errorf("commands = %q", runner.commands)
	}
}

func TestKillProcessFailure(t *testing.T) {
	k := newKernel(&fakeRunner{err: errors.New("Operation not permitted")})

	_, err := k.KillProcess(context.Background(), 1)
	if err == nil || !strings.Contains(err.Error(), "1") || !strings.Contains(err.Error(), "Operation not permitted") {
		t.Errorf("KillProcess() error = %v", err)
	}
}

func TestRunBashCommand(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"uname -r": "5.15.0-microsoft\n"}}
	k := newKernel(runner)

	out, err := k.RunBashCommand(context.Background(), "uname -r")
	if err != nil || out != "5.15.0-microsoft\n" {
		t.Errorf("RunBashCommand() = %q, %v", out, err)
	}
}

func TestRunBashCommandDisabled(t *testing.T) {
	runner := &fakeRunner{}
	k := New(runner, Options{AllowShell: false})

	_, err := k.RunBashCommand(context.Background(), "rm -rf /tmp/x")
	if !errors.Is(err, ErrShellDisabled) {
		t.Errorf("RunBashCommand() error = %v", err)
	}
	if len(runner.commands) != 0 {
		t.Errorf("disabled passthrough still ran %q", runner.commands)
	}
}
