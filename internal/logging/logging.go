// Package logging hands out named, colour-prefixed loggers for each
// component. The TUI owns the terminal while it runs, so callers there use
// Discard instead.
package logging

import (
	"fmt"
	"strings"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// Logger is the subset of gologger the components use.
type Logger interface {
	Infoln(args ...any)
	Debugln(args ...any)
	Warn(args ...any)
}

type leveled struct {
	log   *logger.Logger
	debug bool
}

// New returns a logger whose prefix is the component name. Debug lines are
// dropped unless debug is set.
func New(component string, debug bool) Logger {
	return &leveled{
		log:   logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, component)),
		debug: debug,
	}
}

func (l *leveled) Infoln(args ...any) { l.log.Infoln(line(args)) }

func (l *leveled) Debugln(args ...any) {
	if l.debug {
		l.log.Debugln(line(args))
	}
}

func (l *leveled) Warn(args ...any) { l.log.Warn(fmt.Sprint(args...)) }

// line joins args the way fmt.Println would, without the newline.
func line(args []any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}

type discard struct{}

func (discard) Infoln(...any)  {}
func (discard) Debugln(...any) {}
func (discard) Warn(...any)    {}

// Discard drops everything.
var Discard Logger = discard{}
