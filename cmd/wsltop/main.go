package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prabalesh/wsltop/internal/config"
	"github.com/prabalesh/wsltop/internal/kernel"
	"github.com/prabalesh/wsltop/internal/logging"
	"github.com/prabalesh/wsltop/internal/shell"
	"github.com/prabalesh/wsltop/internal/ui"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath(), "path to config.toml")
		list       = flag.Bool("list", false, "print WSL processes and exit")
		asJSON     = flag.Bool("json", false, "with -list or -info, print JSON")
		killPID    = flag.String("kill", "", "SIGKILL a WSL pid and exit")
		execCmd    = flag.String("exec", "", "run a bash command inside WSL and exit")
		create     = flag.String("create", "", "create a symbolic process and print it (bookkeeping for this run only: ids restart at 1 and nothing is saved)")
		info       = flag.Bool("info", false, "print system info and exit")
		debug      = flag.Bool("debug", false, "log debug output (CLI modes only)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Error loading config: %v", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug = true
	}

	interactive := !*list && *killPID == "" && *execCmd == "" && *create == "" && !*info

	// The TUI owns stdout, so it gets no logger.
	shellLog, kernelLog := logging.Discard, logging.Discard
	if !interactive {
		shellLog = logging.New("shell", cfg.Debug)
		kernelLog = logging.New("kernel", cfg.Debug)
	}

	executor := shell.New(
		shell.WithLauncher(cfg.Launcher...),
		shell.WithTimeout(cfg.Timeout),
		shell.WithLogger(shellLog),
	)
	k := kernel.New(executor, kernel.Options{
		SystemInfo: cfg.System,
		AllowShell: cfg.AllowShell,
		Logger:     kernelLog,
	})

	if interactive {
		app := ui.NewApp(k, ui.Options{
			RefreshInterval: cfg.RefreshInterval,
			PromptUser:      cfg.PromptUser,
			PromptHost:      cfg.PromptHost,
		})

		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Printf("Error running program: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := runCLI(context.Background(), os.Stdout, k, cliArgs{
		list:    *list,
		asJSON:  *asJSON,
		killPID: *killPID,
		exec:    *execCmd,
		create:  *create,
		info:    *info,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cliArgs struct {
	list    bool
	asJSON  bool
	killPID string
	exec    string
	create  string
	info    bool
}

func runCLI(ctx context.Context, w io.Writer, k *kernel.Kernel, args cliArgs) error {
	switch {
	case args.info:
		si := k.SystemInfo()
		if args.asJSON {
			return writeJSON(w, si)
		}
		fmt.Fprintln(w, k.Greet(os.Getenv("USER")))
		fmt.Fprintf(w, "%s\n%s\n%s\n", si.OSName, si.Version, si.KernelType)
		return nil

	case args.list:
		list, err := k.QueryProcesses(ctx)
		if err != nil {
			return err
		}
		if args.asJSON {
			return writeJSON(w, list)
		}
		fmt.Fprint(w, renderTable(list))
		return nil

	case args.killPID != "":
		pid, err := strconv.ParseUint(args.killPID, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid pid %q: %w", args.killPID, err)
		}
		msg, err := k.KillProcess(ctx, uint32(pid))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, msg)
		return nil

	case args.exec != "":
		out, err := k.RunBashCommand(ctx, args.exec)
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
		return nil

	case args.create != "":
		return writeJSON(w, k.CreateProcess(args.create))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
