// Package kernel is the request/response surface the presentation layers
// call. A Kernel owns the symbolic registry and the process collector; it
// is built once at startup and passed to whoever needs it.
package kernel

import (
	"context"
	"errors"
	"fmt"

	"github.com/prabalesh/wsltop/internal/collector"
	"github.com/prabalesh/wsltop/internal/logging"
	"github.com/prabalesh/wsltop/internal/models"
	"github.com/prabalesh/wsltop/internal/registry"
)

// ErrShellDisabled is returned by RunBashCommand when passthrough is off.
var ErrShellDisabled = errors.New("shell passthrough disabled")

type Kernel struct {
	runner     collector.Runner
	collector  *collector.ProcessCollector
	registry   *registry.Registry
	systemInfo models.SystemInfo
	allowShell bool
	log        logging.Logger
}

type Options struct {
	SystemInfo models.SystemInfo
	// AllowShell enables RunBashCommand, which executes arbitrary text
	// inside WSL with the user's privileges.
	AllowShell bool
	Logger     logging.Logger
}

func New(runner collector.Runner, opts Options) *Kernel {
	log := opts.Logger
	if log == nil {
		log = logging.Discard
	}
	return &Kernel{
		runner:     runner,
		collector:  collector.NewProcessCollector(runner, log),
		registry:   registry.New(),
		systemInfo: opts.SystemInfo,
		allowShell: opts.AllowShell,
		log:        log,
	}
}

func (k *Kernel) Greet(name string) string {
	return fmt.Sprintf("Pitter OS (Ubuntu) - Bem-vindo, %s!", name)
}

func (k *Kernel) SystemInfo() models.SystemInfo {
	return k.systemInfo
}

// CreateProcess adds a symbolic record. It never touches WSL.
func (k *Kernel) CreateProcess(name string) models.Process {
	p := k.registry.Create(name)
	k.log.Debugln("created symbolic process", p.ID, name)
	return p
}

func (k *Kernel) SymbolicProcesses() []models.Process {
	return k.registry.List()
}

// ListProcesses returns live WSL processes, or an empty slice if the query
// failed.
func (k *Kernel) ListProcesses(ctx context.Context) []models.Process {
	return k.collector.ListProcesses(ctx)
}

func (k *Kernel) QueryProcesses(ctx context.Context) (models.ProcessList, error) {
	return k.collector.QueryProcesses(ctx)
}

// KillProcess sends SIGKILL to a live WSL pid and returns a confirmation.
// Symbolic records are unaffected.
func (k *Kernel) KillProcess(ctx context.Context, pid uint32) (string, error) {
	if err := k.collector.KillProcess(ctx, pid); err != nil {
		return "", err
	}
	return fmt.Sprintf("Processo %d terminado com sucesso", pid), nil
}

// RunBashCommand hands command to the shell unmodified. This is arbitrary
// code execution inside WSL and is only available when AllowShell is set.
func (k *Kernel) RunBashCommand(ctx context.Context, command string) (string, error) {
	if !k.allowShell {
		k.log.Warn("refused shell command: ", command)
		return "", ErrShellDisabled
	}
	k.log.Infoln("shell:", command)
	return k.runner.Run(ctx, command)
}

func (k *Kernel) MemoryStats(ctx context.Context) (models.MemoryStats, error) {
	return k.collector.MemoryStats(ctx)
}
