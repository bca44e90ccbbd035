package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is a dialog drawn over the whole frame. While one is open it receives
// every key; Update reports done once the dialog should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (m Modal, cmd tea.Cmd, done bool)
	View(theme Theme, width, height int) string
}
