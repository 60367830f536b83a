package tui

import (
	"fmt"
	"strings"
)

const helpText = `# tabdeck keys

| Key | Action |
| --- | ------ |
| left/right, h/l | select the previous/next tab |
| 1-9 | select a tab by slot |
| [ / ] | move the current tab left/right |
| n | open a tab |
| x | close the current tab |
| r | rename the current tab |
| p | pin/unpin (disable drag) |
| L | toggle the loading placeholder |
| c | copy the label to the clipboard |
| : | command palette (add, close, move, select, split, replace, clear) |
| q | quit |
`

func (m model) View() string {
	if m.mode == modeHelp {
		return titleStyle.Render("tabdeck · help") + "\n" + m.renderMarkdown(helpText) +
			helpHintStyle.Render("esc to return")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("tabdeck") + "\n")
	b.WriteString(m.renderTabBar() + "\n\n")

	if r := m.ctrl.SelectedRecord(); r != nil {
		b.WriteString(m.renderedContent(r))
	} else if m.ctrl.Len() == 0 {
		b.WriteString(statusStyle.Render("No tabs open. Press n to open one.") + "\n")
	} else {
		b.WriteString(statusStyle.Render("No tab selected.") + "\n")
	}
	b.WriteString("\n")

	switch m.mode {
	case modeRename:
		b.WriteString(promptStyle.Render("Rename: ") + m.input.View() + "\n")
	case modePalette:
		b.WriteString(promptStyle.Render(": ") + m.input.View() + "\n")
	default:
		b.WriteString(m.renderStatusBar() + "\n")
	}
	return b.String()
}

func (m model) renderTabBar() string {
	items := m.ctrl.Items()
	if len(items) == 0 {
		return barFillStyle.Render("(empty)")
	}
	selected, hasSelection := m.ctrl.Selected()
	parts := make([]string, 0, len(items))
	for i, r := range items {
		style := tabLabelStyle(hasSelection && i == selected, r.Loading(), r.LabelColor())
		label := fmt.Sprintf("%d:%s", i+1, style.Render(r.DisplayLabel()))
		if !r.Draggable() {
			label += pinnedMark
		}
		if r.Closable() {
			label += closeMark
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func (m model) renderStatusBar() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if capacity, ok := m.ctrl.Capacity(); ok {
		parts = append(parts, fmt.Sprintf("%d/%d tabs", m.ctrl.Len(), capacity))
	} else {
		parts = append(parts, fmt.Sprintf("%d tabs", m.ctrl.Len()))
	}
	parts = append(parts, fmt.Sprintf("%d changes", m.feed.count))
	parts = append(parts, "? help")
	return statusStyle.Render(strings.Join(parts, " · "))
}

func (m model) renderMarkdown(source string) string {
	if m.md == nil {
		return source
	}
	rendered, err := m.md.Render(source)
	if err != nil {
		return source
	}
	return rendered
}
