// Package tui is the rendering layer over the tab controller: it draws the
// tab bar and content from controller state and invokes mutation operations
// in response to key gestures. All collection bookkeeping lives in
// internal/tabs; this package only reads state and issues operations.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/tabdeck/tabdeck/internal/config"
	"github.com/tabdeck/tabdeck/internal/tabs"
)

type mode int

const (
	modeNormal mode = iota
	modeRename
	modePalette
	modeHelp
)

// changeFeed accumulates controller notifications. It sits behind a pointer
// so the subscription closure observes it across bubbletea's model copies.
type changeFeed struct {
	count int
}

type model struct {
	cfg  config.Config
	ctrl *tabs.Controller

	mode   mode
	status string
	width  int
	height int

	input textinput.Model // shared by rename and palette modes
	md    *glamour.TermRenderer

	feed *changeFeed
}

// New builds the TUI model, seeding the controller from the config's start
// tabs and subscribing to its change stream.
func New(cfg config.Config) model {
	opts := []tabs.Option{
		tabs.WithCapacity(cfg.Capacity),
		tabs.WithPayload(cfg),
	}
	if !cfg.Reorder() {
		opts = append(opts, tabs.WithoutReorder())
	}

	feed := &changeFeed{}
	ctrl := tabs.New(seedRecords(cfg.StartTabs), opts...)
	ctrl.Subscribe(func() { feed.count++ })

	input := textinput.New()
	input.CharLimit = 0
	input.Width = 48

	m := model{
		cfg:   cfg,
		ctrl:  ctrl,
		input: input,
		feed:  feed,
	}
	m.rebuildRenderer(80)
	return m
}

// seedRecords turns config seeds into detached records. The markdown body
// rides in the payload; the rendered form is cached in the content handle
// once this layer has produced it.
func seedRecords(seeds []config.TabSeed) []*tabs.Record {
	records := make([]*tabs.Record, 0, len(seeds))
	for _, seed := range seeds {
		r := tabs.NewRecord(seed.Label)
		r.SetLabelColor(seed.Color)
		r.SetClosable(seed.IsClosable())
		r.SetDraggable(!seed.Pinned)
		r.SetPayload(seed.Content)
		records = append(records, r)
	}
	return records
}

func (m *model) rebuildRenderer(width int) {
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		m.md = nil
		return
	}
	m.md = renderer
}

// renderedContent returns the glamour-rendered markdown for a record,
// producing and caching it in the record's content handle on first use.
func (m *model) renderedContent(r *tabs.Record) string {
	if cached, ok := r.Content().(string); ok && cached != "" {
		return cached
	}
	source, _ := r.Payload().(string)
	if source == "" {
		return ""
	}
	if m.md == nil {
		return source
	}
	rendered, err := m.md.Render(source)
	if err != nil {
		return source
	}
	r.SetContent(rendered)
	return rendered
}

// invalidateContent drops every cached render, e.g. after a resize.
func (m *model) invalidateContent() {
	for _, r := range m.ctrl.Items() {
		if _, ok := r.Content().(string); ok {
			r.SetContent(nil)
		}
	}
}

func (m model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

var _ tea.Model = model{}
