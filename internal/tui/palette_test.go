package tui

import (
	"strings"
	"testing"
)

func tabLabels(m model) []string {
	out := make([]string, 0, m.ctrl.Len())
	for _, r := range m.ctrl.Items() {
		out = append(out, r.Label())
	}
	return out
}

func TestPaletteCommands(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name       string
		line       string
		wantLabels []string
		wantStatus string // substring of the returned status
	}{
		{name: "add", line: `add notes`, wantLabels: []string{"home", "logs", "notes"}, wantStatus: "Added"},
		{name: "add quoted label with color", line: `add "release notes" 63`, wantLabels: []string{"home", "logs", "release notes"}, wantStatus: "Added"},
		{name: "close", line: `close 0`, wantLabels: []string{"logs"}, wantStatus: "Closed"},
		{name: "close out of range", line: `close 9`, wantLabels: []string{"home", "logs"}, wantStatus: "out of range"},
		{name: "move", line: `move 0 2`, wantLabels: []string{"logs", "home"}, wantStatus: "Moved"},
		{name: "select", line: `select 1`, wantLabels: []string{"home", "logs"}, wantStatus: "Selected"},
		{name: "select none", line: `select none`, wantLabels: []string{"home", "logs"}, wantStatus: "Selection cleared"},
		{name: "split keep tail", line: `split 1 tail`, wantLabels: []string{"logs"}, wantStatus: "Kept 1"},
		{name: "split keep head", line: `split 0 head`, wantLabels: []string{"home"}, wantStatus: "Kept 1"},
		{name: "split bad side", line: `split 0 sideways`, wantLabels: []string{"home", "logs"}, wantStatus: "Usage"},
		{name: "replace", line: `replace a b c`, wantLabels: []string{"a", "b", "c"}, wantStatus: "Replaced with 3"},
		{name: "clear", line: `clear`, wantLabels: []string{}, wantStatus: "All tabs closed"},
		{name: "unknown", line: `frobnicate`, wantLabels: []string{"home", "logs"}, wantStatus: "Unknown command"},
		{name: "empty line", line: ``, wantLabels: []string{"home", "logs"}, wantStatus: ""},
		{name: "unbalanced quote", line: `add "broken`, wantLabels: []string{"home", "logs"}, wantStatus: "Parse error"},
	}
	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := newTestModel(t, testConfig())
			status := m.runPaletteCommand(tc.line)

			got := tabLabels(m)
			if len(got) != len(tc.wantLabels) {
				t.Fatalf("labels = %v, want %v", got, tc.wantLabels)
			}
			for i := range got {
				if got[i] != tc.wantLabels[i] {
					t.Fatalf("labels = %v, want %v", got, tc.wantLabels)
				}
			}
			if !strings.Contains(status, tc.wantStatus) {
				t.Fatalf("status = %q, want it to mention %q", status, tc.wantStatus)
			}
		})
	}
}

func TestPaletteSelectNone(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig())
	m.runPaletteCommand("select none")
	if _, ok := m.ctrl.Selected(); ok {
		t.Fatal("selection should be absent after `select none`")
	}
}
