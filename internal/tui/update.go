package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabdeck/tabdeck/internal/tabs"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildRenderer(msg.Width)
		m.invalidateContent()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeRename:
			return m.handleRenameKey(msg)
		case modePalette:
			return m.handlePaletteKey(msg)
		case modeHelp:
			return m.handleHelpKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.selectNeighbor(-1)
	case "right", "l":
		m.selectNeighbor(1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if err := m.ctrl.Select(idx); err != nil {
			m.status = errorStyle.Render(err.Error())
		}
	case "[":
		m.moveSelected(-1)
	case "]":
		m.moveSelected(1)
	case "x":
		m.closeSelected()
	case "n":
		if !m.ctrl.Append(tabs.NewRecord("untitled")) {
			m.status = "Tab limit reached"
		} else {
			m.status = "Tab opened"
		}
	case "r":
		if r := m.ctrl.SelectedRecord(); r != nil {
			m.mode = modeRename
			m.input.SetValue(r.Label())
			m.input.CursorEnd()
			m.input.Focus()
		}
	case "c":
		if r := m.ctrl.SelectedRecord(); r != nil {
			if err := clipboard.WriteAll(r.DisplayLabel()); err != nil {
				m.status = errorStyle.Render("Copy failed: " + err.Error())
			} else {
				m.status = "Label copied to clipboard"
			}
		}
	case "L":
		if r := m.ctrl.SelectedRecord(); r != nil {
			r.SetLoading(!r.Loading())
		}
	case "p":
		if r := m.ctrl.SelectedRecord(); r != nil {
			r.SetDraggable(!r.Draggable())
			if r.Draggable() {
				m.status = "Tab unpinned"
			} else {
				m.status = "Tab pinned"
			}
		}
	case ":":
		m.mode = modePalette
		m.input.SetValue("")
		m.input.Focus()
	case "?":
		m.mode = modeHelp
	}
	return m, nil
}

func (m model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if r := m.ctrl.SelectedRecord(); r != nil {
			r.SetLabel(m.input.Value())
			m.status = "Tab renamed"
		}
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.status = m.runPaletteCommand(m.input.Value())
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "?":
		m.mode = modeNormal
	}
	return m, nil
}

// selectNeighbor moves the selection cursor by delta with wrap-around.
func (m *model) selectNeighbor(delta int) {
	n := m.ctrl.Len()
	if n == 0 {
		return
	}
	idx, ok := m.ctrl.Selected()
	if !ok {
		idx = 0
	} else {
		idx = (idx + delta + n) % n
	}
	if err := m.ctrl.Select(idx); err != nil {
		m.status = errorStyle.Render(err.Error())
	}
}

// moveSelected shifts the selected tab one slot. A one-slot move to the
// right targets the slot two past the current one; the slot immediately
// after is a reorder no-op by contract.
func (m *model) moveSelected(delta int) {
	idx, ok := m.ctrl.Selected()
	if !ok {
		return
	}
	r := m.ctrl.SelectedRecord()
	if r != nil && !r.Draggable() {
		m.status = "Tab is pinned"
		return
	}
	target := idx + delta
	if delta > 0 {
		target = idx + delta + 1
	}
	if err := m.ctrl.Reorder(idx, target); err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	m.status = fmt.Sprintf("Moved tab to slot %d", r.Position()+1)
}

func (m *model) closeSelected() {
	idx, ok := m.ctrl.Selected()
	if !ok {
		return
	}
	r := m.ctrl.SelectedRecord()
	if r != nil && !r.Closable() {
		m.status = "Tab is not closable"
		return
	}
	removed, err := m.ctrl.RemoveAt(idx)
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	m.status = fmt.Sprintf("Closed %q", removed.Label())
}
