package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabdeck/tabdeck/internal/config"
	"github.com/tabdeck/tabdeck/internal/tui"
)

func main() {
	cfg := config.Load()

	m := tui.New(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
