package tui

import (
	"fmt"

	"github.com/RasseTheBoy/ufw-tui/audit"
	"github.com/RasseTheBoy/ufw-tui/ufw"
	tea "github.com/charmbracelet/bubbletea"
)

// RunTUI reads the live rule set once and hands it to the editor. The
// engine's configuration is the durable store; nothing is persisted by the
// editor itself.
func RunTUI(gateway ufw.Gateway, auditLog *audit.Log) error {
	rules, err := gateway.ListRules()
	if err != nil {
		return err
	}

	m := newPortEditor(gateway, auditLog, rules)
	p := tea.NewProgram(m)
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}
