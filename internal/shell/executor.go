// Package shell runs command strings through an external interpreter,
// by default bash inside WSL.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"

	"github.com/prabalesh/wsltop/internal/logging"
)

// DefaultLauncher is the two-level invocation: the WSL launcher, then bash
// reading the command from its -c argument.
var DefaultLauncher = []string{"wsl", "-e", "bash", "-c"}

// waitDelay is how long Run keeps reading output after the launcher has
// exited or been killed. Background children that still hold the pipes are
// cut off once it expires.
const waitDelay = 500 * time.Millisecond

// Executor runs one command at a time per call and buffers all output.
// Calls do not coordinate with each other.
type Executor struct {
	launcher []string
	timeout  time.Duration
	log      logging.Logger
}

type Option func(*Executor)

// WithLauncher replaces the launcher argv. The command string is appended
// as the final argument.
func WithLauncher(argv ...string) Option {
	return func(e *Executor) {
		e.launcher = append([]string(nil), argv...)
	}
}

// WithTimeout bounds every run. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.timeout = d
	}
}

func WithLogger(l logging.Logger) Option {
	return func(e *Executor) {
		e.log = l
	}
}

func New(opts ...Option) *Executor {
	e := &Executor{
		launcher: append([]string(nil), DefaultLauncher...),
		log:      logging.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) Launcher() []string {
	return append([]string(nil), e.launcher...)
}

// Run executes command and returns its stdout. A non-zero exit yields a
// *CommandError carrying stderr; a launcher that cannot be started yields a
// *LaunchError.
func (e *Executor) Run(ctx context.Context, command string) (string, error) {
	if len(e.launcher) == 0 {
		return "", &LaunchError{Launcher: "", Err: errors.New("no launcher configured")}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := append(e.launcher[1:len(e.launcher):len(e.launcher)], command)
	cmd := exec.CommandContext(ctx, e.launcher[0], args...)
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	e.log.Debugln("ran", strings.Join(e.launcher, " "), command, "in", time.Since(start))

	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		e.log.Debugln("output pipes still held after exit, returning what was read")
		err = nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr := &CommandError{
				Command:  command,
				ExitCode: exitErr.ExitCode(),
				Stderr:   decode(stderr.Bytes()),
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				cerr.Err = ctxErr
			}
			e.log.Warn("command failed: ", command, " status ", cerr.ExitCode)
			return "", cerr
		}
		e.log.Warn("launch failed: ", err)
		return "", &LaunchError{Launcher: e.launcher[0], Err: err}
	}

	return decode(stdout.Bytes()), nil
}

// decode converts raw output to text, replacing invalid UTF-8 with U+FFFD.
func decode(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
