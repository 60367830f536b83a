package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/tabdeck/tabdeck/internal/tabs"
)

// runPaletteCommand executes one command-palette line and returns the status
// message to display. Quoting follows shell rules, so labels may contain
// spaces: `add "release notes" 212`.
func (m *model) runPaletteCommand(line string) string {
	args, err := shlex.Split(line)
	if err != nil {
		return errorStyle.Render("Parse error: " + err.Error())
	}
	if len(args) == 0 {
		return ""
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "add":
		return m.cmdAdd(args)
	case "close":
		return m.cmdClose(args)
	case "move":
		return m.cmdMove(args)
	case "select":
		return m.cmdSelect(args)
	case "split":
		return m.cmdSplit(args)
	case "replace":
		return m.cmdReplace(args)
	case "clear":
		m.ctrl.RemoveAll()
		return "All tabs closed"
	default:
		return errorStyle.Render(fmt.Sprintf("Unknown command %q", cmd))
	}
}

func (m *model) cmdAdd(args []string) string {
	if len(args) == 0 {
		return errorStyle.Render("Usage: add LABEL [COLOR]")
	}
	r := tabs.NewRecord(args[0])
	if len(args) > 1 {
		r.SetLabelColor(args[1])
	}
	if !m.ctrl.Append(r) {
		return errorStyle.Render("Tab limit reached")
	}
	return fmt.Sprintf("Added %q", args[0])
}

func (m *model) cmdClose(args []string) string {
	idx, err := paletteIndex(args, "close INDEX")
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	removed, err := m.ctrl.RemoveAt(idx)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	return fmt.Sprintf("Closed %q", removed.Label())
}

func (m *model) cmdMove(args []string) string {
	if len(args) != 2 {
		return errorStyle.Render("Usage: move OLD NEW")
	}
	oldIndex, err1 := strconv.Atoi(args[0])
	newIndex, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return errorStyle.Render("Usage: move OLD NEW")
	}
	if err := m.ctrl.Reorder(oldIndex, newIndex); err != nil {
		return errorStyle.Render(err.Error())
	}
	return fmt.Sprintf("Moved %d to %d", oldIndex, newIndex)
}

func (m *model) cmdSelect(args []string) string {
	if len(args) == 1 && args[0] == "none" {
		m.ctrl.ClearSelection()
		return "Selection cleared"
	}
	idx, err := paletteIndex(args, "select INDEX|none")
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	if err := m.ctrl.Select(idx); err != nil {
		return errorStyle.Render(err.Error())
	}
	return fmt.Sprintf("Selected tab %d", idx)
}

func (m *model) cmdSplit(args []string) string {
	if len(args) != 2 {
		return errorStyle.Render("Usage: split PIVOT head|tail")
	}
	pivot, err := strconv.Atoi(args[0])
	if err != nil {
		return errorStyle.Render("Usage: split PIVOT head|tail")
	}
	var keep tabs.Side
	switch strings.ToLower(args[1]) {
	case "head":
		keep = tabs.KeepHead
	case "tail":
		keep = tabs.KeepTail
	default:
		return errorStyle.Render("Usage: split PIVOT head|tail")
	}
	if err := m.ctrl.SplitAt(pivot, keep); err != nil {
		return errorStyle.Render(err.Error())
	}
	return fmt.Sprintf("Kept %d tabs", m.ctrl.Len())
}

func (m *model) cmdReplace(args []string) string {
	if len(args) == 0 {
		return errorStyle.Render("Usage: replace LABEL...")
	}
	records := make([]*tabs.Record, 0, len(args))
	for _, label := range args {
		records = append(records, tabs.NewRecord(label))
	}
	m.ctrl.ReplaceAll(records)
	return fmt.Sprintf("Replaced with %d tabs", m.ctrl.Len())
}

func paletteIndex(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("Usage: %s", usage)
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("Usage: %s", usage)
	}
	return idx, nil
}
