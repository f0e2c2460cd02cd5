package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prabalesh/wsltop/internal/models"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Backend is what the TUI needs from the kernel.
type Backend interface {
	Greet(name string) string
	SystemInfo() models.SystemInfo
	CreateProcess(name string) models.Process
	SymbolicProcesses() []models.Process
	QueryProcesses(ctx context.Context) (models.ProcessList, error)
	KillProcess(ctx context.Context, pid uint32) (string, error)
	RunBashCommand(ctx context.Context, command string) (string, error)
	MemoryStats(ctx context.Context) (models.MemoryStats, error)
}

type Options struct {
	RefreshInterval time.Duration
	PromptUser      string
	PromptHost      string
}

const (
	tabOverview = iota
	tabProcesses
	tabSymbolic
	tabTerminal
)

type tickMsg time.Time

type statsMsg struct {
	processes models.ProcessList
	err       error
	memory    models.MemoryStats
	memErr    error
}

type killResultMsg struct {
	pid uint32
	msg string
	err error
}

type commandResultMsg struct {
	output string
	err    error
}

type termLine struct {
	text  string
	style lipgloss.Style
}

type App struct {
	backend Backend
	opts    Options

	processes models.ProcessList
	queryErr  error
	memory    models.MemoryStats
	memErr    error

	activeTab   int
	tabs        []string
	width       int
	height      int
	selectedRow int
	// Vertical scrolling state
	verticalScrollOffset int
	contentHeight        int

	memoryProgress progress.Model

	// pid waiting for y/n, zero when not confirming
	confirmPID uint32
	status     string
	statusErr  bool

	naming    bool
	nameInput textinput.Model

	termInput   textinput.Model
	termLines   []termLine
	termRunning bool
}

func NewApp(backend Backend, opts Options) *App {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 5 * time.Second
	}

	nameInput := textinput.New()
	nameInput.Placeholder = "process name"
	nameInput.Prompt = "name> "
	nameInput.CharLimit = 64

	termInput := textinput.New()
	termInput.Prompt = PromptStyle.Render(fmt.Sprintf("%s@%s:~$ ", opts.PromptUser, opts.PromptHost))

	return &App{
		backend:        backend,
		opts:           opts,
		tabs:           []string{"Overview", "Processes", "Symbolic", "Terminal"},
		activeTab:      tabOverview,
		memoryProgress: progress.New(progress.WithDefaultGradient()),
		nameInput:      nameInput,
		termInput:      termInput,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.updateStats(),
		a.tick(),
	)
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) updateStats() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		processes, err := a.backend.QueryProcesses(ctx)
		memory, memErr := a.backend.MemoryStats(ctx)
		return statsMsg{processes: processes, err: err, memory: memory, memErr: memErr}
	}
}

func (a *App) killSelected(pid uint32) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.backend.KillProcess(context.Background(), pid)
		return killResultMsg{pid: pid, msg: msg, err: err}
	}
}

func (a *App) runCommand(command string) tea.Cmd {
	return func() tea.Msg {
		out, err := a.backend.RunBashCommand(context.Background(), command)
		return commandResultMsg{output: out, err: err}
	}
}

// Get the height available for content (excluding sticky header elements)
func (a *App) getContentAreaHeight() int {
	// title, tabs, status and help each take two lines
	reservedHeight := 8
	return max(1, a.height-reservedHeight)
}

func (a *App) getMaxScrollOffset() int {
	availableHeight := a.getContentAreaHeight()
	if a.contentHeight <= availableHeight {
		return 0
	}
	return a.contentHeight - availableHeight
}

func (a *App) clampVerticalScroll() {
	maxOffset := a.getMaxScrollOffset()
	a.verticalScrollOffset = max(0, min(a.verticalScrollOffset, maxOffset))
}

// Apply vertical scrolling to content by truncating lines
func (a *App) applyVerticalScroll(content string) string {
	lines := strings.Split(content, "\n")
	a.contentHeight = len(lines)

	a.clampVerticalScroll()

	availableHeight := a.getContentAreaHeight()
	if len(lines) <= availableHeight {
		return content
	}

	startLine := a.verticalScrollOffset
	endLine := min(startLine+availableHeight, len(lines))
	result := strings.Join(lines[startLine:endLine], "\n")

	if a.verticalScrollOffset > 0 {
		result = ScrollHintStyle.Render("▲ More content above") + "\n" + result
	}
	if a.verticalScrollOffset < a.getMaxScrollOffset() {
		result = result + "\n" + ScrollHintStyle.Render("▼ More content below")
	}

	return result
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) selectedProcess() (models.Process, bool) {
	if a.selectedRow < 0 || a.selectedRow >= len(a.processes.Processes) {
		return models.Process{}, false
	}
	return a.processes.Processes[a.selectedRow], true
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.memoryProgress.Width = max(10, min(50, a.width-20))
		a.termInput.Width = max(10, a.width-30)
		return a, nil

	case tea.KeyMsg:
		if a.naming {
			return a.updateNaming(msg)
		}
		if a.termInput.Focused() {
			return a.updateTerminal(msg)
		}
		if a.confirmPID != 0 {
			return a.updateConfirm(msg)
		}
		return a.updateKeys(msg)

	case tickMsg:
		return a, tea.Batch(a.updateStats(), a.tick())

	case statsMsg:
		a.processes = msg.processes
		a.queryErr = msg.err
		a.memory = msg.memory
		a.memErr = msg.memErr
		if a.selectedRow >= len(a.processes.Processes) {
			a.selectedRow = max(0, len(a.processes.Processes)-1)
		}

	case killResultMsg:
		if msg.err != nil {
			a.setStatus(msg.err.Error(), true)
			return a, nil
		}
		a.setStatus(msg.msg, false)
		return a, a.updateStats()

	case commandResultMsg:
		a.termRunning = false
		if msg.err != nil {
			a.appendTerm(strings.TrimRight("Error: "+msg.err.Error(), "\n"), ErrorStyle)
		} else if msg.output != "" {
			a.appendTerm(strings.TrimRight(msg.output, "\n"), OutputStyle)
		}
	}

	return a, nil
}

func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "left", "h":
		if a.activeTab > 0 {
			a.activeTab--
			a.verticalScrollOffset = 0
		}
	case "right", "l", "tab":
		if a.activeTab < len(a.tabs)-1 {
			a.activeTab++
			a.verticalScrollOffset = 0
		}
	case "up", "k":
		if a.activeTab == tabProcesses {
			if a.selectedRow > 0 {
				a.selectedRow--
			}
		} else if a.verticalScrollOffset > 0 {
			a.verticalScrollOffset--
		}
	case "down", "j":
		if a.activeTab == tabProcesses {
			if a.selectedRow < len(a.processes.Processes)-1 {
				a.selectedRow++
			}
		} else {
			a.verticalScrollOffset++
			a.clampVerticalScroll()
		}
	case "pgup", "ctrl+u":
		scrollAmount := max(1, a.getContentAreaHeight()/2)
		a.verticalScrollOffset = max(0, a.verticalScrollOffset-scrollAmount)
	case "pgdown", "ctrl+d":
		scrollAmount := max(1, a.getContentAreaHeight()/2)
		a.verticalScrollOffset += scrollAmount
		a.clampVerticalScroll()
	case "home":
		a.verticalScrollOffset = 0
	case "end":
		a.verticalScrollOffset = a.getMaxScrollOffset()
	case "r":
		return a, a.updateStats()
	case "x":
		if a.activeTab != tabProcesses {
			break
		}
		if p, ok := a.selectedProcess(); ok && p.ID != 0 {
			a.confirmPID = p.ID
			a.setStatus(fmt.Sprintf("Ubuntu: Deseja realmente encerrar o processo %d? (y/n)", p.ID), false)
		}
	case "n":
		if a.activeTab == tabSymbolic {
			a.naming = true
			a.nameInput.Reset()
			return a, a.nameInput.Focus()
		}
	case "enter", "i":
		if a.activeTab == tabTerminal {
			return a, a.termInput.Focus()
		}
	}

	return a, nil
}

func (a *App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pid := a.confirmPID
	a.confirmPID = 0

	switch msg.String() {
	case "y", "Y":
		a.setStatus(fmt.Sprintf("killing %d...", pid), false)
		return a, a.killSelected(pid)
	case "ctrl+c":
		return a, tea.Quit
	default:
		a.setStatus("", false)
	}
	return a, nil
}

func (a *App) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.naming = false
		a.nameInput.Blur()
		return a, nil
	case "enter":
		name := strings.TrimSpace(a.nameInput.Value())
		a.naming = false
		a.nameInput.Blur()
		if name == "" {
			return a, nil
		}
		p := a.backend.CreateProcess(name)
		a.setStatus(fmt.Sprintf("created symbolic process %d (%s)", p.ID, p.Name), false)
		return a, nil
	}

	var cmd tea.Cmd
	a.nameInput, cmd = a.nameInput.Update(msg)
	return a, cmd
}

func (a *App) updateTerminal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.termInput.Blur()
		return a, nil
	case "enter":
		if a.termRunning {
			return a, nil
		}
		command := a.termInput.Value()
		a.termInput.SetValue("")
		return a, a.submitCommand(command)
	}

	var cmd tea.Cmd
	a.termInput, cmd = a.termInput.Update(msg)
	return a, cmd
}

// submitCommand handles the local builtins and sends everything else to
// the shell.
func (a *App) submitCommand(command string) tea.Cmd {
	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return nil
	}

	a.appendTerm(fmt.Sprintf("%s@%s:~$ %s", a.opts.PromptUser, a.opts.PromptHost, command), PromptStyle)

	switch strings.ToLower(cmd) {
	case "clear", "cls":
		a.termLines = nil
		return nil
	case "exit":
		a.appendTerm("Terminal session ended.", InfoStyle)
		a.termInput.Blur()
		return nil
	}

	a.termRunning = true
	return a.runCommand(cmd)
}

func (a *App) appendTerm(text string, style lipgloss.Style) {
	for _, line := range strings.Split(text, "\n") {
		a.termLines = append(a.termLines, termLine{text: line, style: style})
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	title := TitleStyle.Width(a.width).Render("wsltop")
	tabs := a.renderTabs()

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverview()
	case tabProcesses:
		content = a.renderProcesses()
	case tabSymbolic:
		content = a.renderSymbolic()
	case tabTerminal:
		content = a.renderTerminal()
	}

	// The process table and terminal manage their own windows.
	if a.activeTab == tabOverview || a.activeTab == tabSymbolic {
		content = a.applyVerticalScroll(content)
	}

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = ErrorStyle.Render(a.status)
		} else {
			status = SuccessStyle.Render(a.status)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		tabs,
		"",
		content,
		status,
		HelpStyle.Render(a.helpText()),
	)
}

func (a *App) helpText() string {
	switch {
	case a.naming:
		return "enter: create • esc: cancel"
	case a.termInput.Focused():
		return "enter: run • esc: leave prompt • clear • exit"
	}

	base := "←/→ h/l: tabs • r: refresh • q: quit"
	switch a.activeTab {
	case tabProcesses:
		return "↑/↓ k/j: select • x: kill • " + base
	case tabSymbolic:
		return "n: new symbolic process • " + base
	case tabTerminal:
		return "enter/i: focus prompt • " + base
	}
	return "↑/↓ k/j: scroll • PgUp/PgDn: page scroll • " + base
}

func (a *App) renderTabs() string {
	var tabElements []string
	for i, tab := range a.tabs {
		if i == a.activeTab {
			tabElements = append(tabElements, ActiveTabStyle.Render(tab))
		} else {
			tabElements = append(tabElements, InactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, tabElements...)
}

func (a *App) renderOverview() string {
	info := a.backend.SystemInfo()

	content := []string{
		HeaderStyle.Render(a.backend.Greet(a.opts.PromptUser)),
		"",
		fmt.Sprintf("%s %s", LabelStyle.Render("OS:"), ValueStyle.Render(info.OSName)),
		fmt.Sprintf("%s %s", LabelStyle.Render("Version:"), ValueStyle.Render(info.Version)),
		fmt.Sprintf("%s %s", LabelStyle.Render("Kernel:"), ValueStyle.Render(info.KernelType)),
		"",
		HeaderStyle.Render("Memory"),
	}

	if a.memErr != nil {
		content = append(content, ErrorStyle.Render("unavailable: "+firstLine(a.memErr.Error())))
	} else {
		mem := a.memory
		content = append(content,
			fmt.Sprintf("%s %.1f%% (%s / %s)", LabelStyle.Render("Usage:"), mem.UsagePercent, formatKB(mem.Used), formatKB(mem.Total)),
			a.memoryProgress.ViewAs(mem.UsagePercent/100.0),
			fmt.Sprintf("%s %s", LabelStyle.Render("Swap:"), formatKB(mem.SwapUsed)+" / "+formatKB(mem.SwapTotal)),
		)
	}

	content = append(content,
		"",
		HeaderStyle.Render("Processes"),
		fmt.Sprintf("Total: %d | Running: %d | Sleeping: %d | Zombie: %d | Idle: %d",
			a.processes.Total, a.processes.Running, a.processes.Sleeping, a.processes.Zombie, a.processes.Idle),
		fmt.Sprintf("Symbolic: %d", len(a.backend.SymbolicProcesses())),
	)

	return BaseStyle.Width(a.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, content...),
	)
}

func (a *App) renderProcesses() string {
	visibleRows := max(1, a.height-14)

	startIdx := 0
	if a.selectedRow >= visibleRows {
		startIdx = a.selectedRow - visibleRows + 1
	}
	endIdx := min(startIdx+visibleRows, len(a.processes.Processes))

	var content strings.Builder

	content.WriteString(HeaderStyle.Render("WSL Processes"))
	content.WriteString("\n\n")

	stats := fmt.Sprintf("Total: %d | Running: %d | Sleeping: %d | Zombie: %d | Idle: %d",
		a.processes.Total, a.processes.Running, a.processes.Sleeping, a.processes.Zombie, a.processes.Idle)
	if a.processes.Skipped > 0 {
		stats += fmt.Sprintf(" | Skipped lines: %d", a.processes.Skipped)
	}
	if a.processes.Defaulted > 0 {
		stats += fmt.Sprintf(" | Unreadable memory: %d", a.processes.Defaulted)
	}
	content.WriteString(stats)
	content.WriteString("\n\n")

	if a.queryErr != nil {
		content.WriteString(ErrorStyle.Render("query failed: " + firstLine(a.queryErr.Error())))
		content.WriteString("\n\n")
	}

	if len(a.processes.Processes) == 0 {
		content.WriteString(InfoStyle.Render("Nenhum processo em execução no Ubuntu"))
		return BaseStyle.Render(content.String())
	}

	header := fmt.Sprintf("%-8s %-20s %-10s %10s", "PID", "NAME", "STATUS", "MEMORY")
	content.WriteString(TableHeaderStyle.Render(header))
	content.WriteString("\n")

	for i := startIdx; i < endIdx; i++ {
		proc := a.processes.Processes[i]
		row := fmt.Sprintf("%-8d %-20s %-10s %10s",
			proc.ID, truncateString(proc.Name, 20), proc.Status, formatKB(proc.MemoryUsage))

		rowStyle := TableCellStyle
		if i == a.selectedRow {
			rowStyle = SelectedRowStyle
		} else if (i-startIdx)%2 == 0 {
			rowStyle = rowStyle.Foreground(lipgloss.Color("252"))
		} else {
			rowStyle = rowStyle.Foreground(lipgloss.Color("245"))
		}

		content.WriteString(rowStyle.Render(row))
		content.WriteString("\n")
	}

	if len(a.processes.Processes) > visibleRows {
		content.WriteString("\n")
		scrollInfo := fmt.Sprintf("Showing %d-%d of %d processes", startIdx+1, endIdx, len(a.processes.Processes))
		content.WriteString(ScrollInfoStyle.Render(scrollInfo))
	}

	return BaseStyle.Render(content.String())
}

func (a *App) renderSymbolic() string {
	procs := a.backend.SymbolicProcesses()

	content := []string{
		HeaderStyle.Render("Symbolic Processes"),
		InfoStyle.Render("Bookkeeping records only; they do not exist inside WSL."),
		"",
	}

	if a.naming {
		content = append(content, a.nameInput.View(), "")
	}

	if len(procs) == 0 {
		content = append(content, InfoStyle.Render("none yet, press n to create one"))
	} else {
		content = append(content, TableHeaderStyle.Render(fmt.Sprintf("%-6s %-24s %-10s %10s", "ID", "NAME", "STATUS", "MEMORY")))
		for _, p := range procs {
			content = append(content, TableCellStyle.Render(fmt.Sprintf("%-6d %-24s %-10s %10s",
				p.ID, truncateString(p.Name, 24), p.Status, formatKB(p.MemoryUsage))))
		}
	}

	return BaseStyle.Width(a.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, content...),
	)
}

func (a *App) renderTerminal() string {
	visible := max(1, a.height-14)
	lines := a.termLines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	rendered := make([]string, 0, len(lines)+2)
	for _, l := range lines {
		rendered = append(rendered, l.style.Render(l.text))
	}
	if a.termRunning {
		rendered = append(rendered, InfoStyle.Render("running..."))
	}
	rendered = append(rendered, a.termInput.View())

	return BaseStyle.Width(a.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, rendered...),
	)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func formatKB(kb uint64) string {
	switch {
	case kb < 1024:
		return fmt.Sprintf("%d KB", kb)
	case kb < 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(kb)/1024)
	default:
		return fmt.Sprintf("%.1f GB", float64(kb)/(1024*1024))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
