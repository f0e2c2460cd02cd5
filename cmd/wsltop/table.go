package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prabalesh/wsltop/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func renderTable(list models.ProcessList) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-8s %-20s %-10s %10s", "PID", "NAME", "STATUS", "RSS(KB)")))
	b.WriteString("\n")
	for _, p := range list.Processes {
		fmt.Fprintf(&b, "%-8d %-20s %-10s %10d\n", p.ID, p.Name, p.Status, p.MemoryUsage)
	}

	footer := fmt.Sprintf("%d processes (%d running, %d sleeping, %d zombie, %d idle)",
		list.Total, list.Running, list.Sleeping, list.Zombie, list.Idle)
	if list.Skipped > 0 {
		footer += fmt.Sprintf(", %d lines skipped", list.Skipped)
	}
	if list.Defaulted > 0 {
		footer += fmt.Sprintf(", %d with unreadable memory", list.Defaulted)
	}
	b.WriteString(footerStyle.Render(footer))
	b.WriteString("\n")

	return b.String()
}
