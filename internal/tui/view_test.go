package tui

import (
	"strings"
	"testing"

	"github.com/tabdeck/tabdeck/internal/tabs"
)

func TestRenderTabBar(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig())
	bar := m.renderTabBar()
	if !strings.Contains(bar, "home") || !strings.Contains(bar, "logs") {
		t.Fatalf("tab bar missing labels: %q", bar)
	}

	m.ctrl.SelectedRecord().SetLoading(true)
	bar = m.renderTabBar()
	if !strings.Contains(bar, tabs.LoadingLabel) {
		t.Fatalf("tab bar should show the loading placeholder: %q", bar)
	}
	if strings.Contains(bar, "home") {
		t.Fatalf("loading placeholder should replace the label: %q", bar)
	}
}

func TestRenderTabBarEmpty(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig())
	m.ctrl.RemoveAll()
	if bar := m.renderTabBar(); !strings.Contains(bar, "empty") {
		t.Fatalf("empty bar = %q", bar)
	}
}

func TestViewShowsStatusBar(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testConfig())
	m.status = "Tab opened"
	out := m.View()
	if !strings.Contains(out, "Tab opened") {
		t.Fatalf("view missing status: %q", out)
	}
	if !strings.Contains(out, "2 tabs") {
		t.Fatalf("view missing tab count: %q", out)
	}
}
