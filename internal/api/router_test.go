package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tabdeck/tabdeck/internal/tabs"
)

func newTestRouter(t *testing.T, ctrl *tabs.Controller) http.Handler {
	t.Helper()
	return newRouter(Dependencies{Store: NewStore(ctrl)})
}

func seeded(labels ...string) *tabs.Controller {
	records := make([]*tabs.Record, 0, len(labels))
	for _, l := range labels {
		records = append(records, tabs.NewRecord(l))
	}
	return tabs.New(records)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeCollection(t *testing.T, rec *httptest.ResponseRecorder) collectionView {
	t.Helper()
	var view collectionView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return view
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, seeded())
	rec := do(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestListTabs(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, seeded("home", "logs"))
	rec := do(t, h, http.MethodGet, "/api/tabs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	view := decodeCollection(t, rec)
	if len(view.Tabs) != 2 {
		t.Fatalf("tabs = %d, want 2", len(view.Tabs))
	}
	if view.Selected == nil || *view.Selected != 0 {
		t.Fatalf("selected = %v, want 0", view.Selected)
	}
	if !view.Tabs[0].Selected || view.Tabs[1].Selected {
		t.Fatal("selection flag on the wrong tab")
	}
	if view.Tabs[0].Label != "home" || view.Tabs[0].Index != 0 {
		t.Fatalf("first tab = %+v", view.Tabs[0])
	}
}

func TestAppendTab(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, seeded("home"))
	rec := do(t, h, http.MethodPost, "/api/tabs", `{"label":"notes","color":"63"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	view := decodeCollection(t, rec)
	if len(view.Tabs) != 2 || view.Tabs[1].Label != "notes" || view.Tabs[1].Color != "63" {
		t.Fatalf("collection after append = %+v", view)
	}
}

func TestAppendTabValidation(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, seeded())
	if rec := do(t, h, http.MethodPost, "/api/tabs", `{"color":"63"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing label: status = %d, want 400", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/tabs", `{broken`); rec.Code != http.StatusBadRequest {
		t.Fatalf("broken json: status = %d, want 400", rec.Code)
	}
}

func TestInsertAtIndex(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, seeded("a", "c"))
	rec := do(t, h, http.MethodPost, "/api/tabs", `{"label":"b","index":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	view := decodeCollection(t, rec)
	if view.Tabs[1].Label != "b" {
		t.Fatalf("order = %+v", view.Tabs)
	}

	if rec := do(t, h, http.MethodPost, "/api/tabs", `{"label":"x","index":9}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad index: status = %d, want 400", rec.Code)
	}
}

func TestCapacityConflict(t *testing.T) {
	t.Parallel()

	ctrl := tabs.New([]*tabs.Record{tabs.NewRecord("only")}, tabs.WithCapacity(1))
	h := newTestRouter(t, ctrl)
	rec := do(t, h, http.MethodPost, "/api/tabs", `{"label":"overflow"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if ctrl.Len() != 1 {
		t.Fatalf("rejected append mutated the collection: Len = %d", ctrl.Len())
	}
}

func TestGetAndRemoveTab(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, seeded("home", "logs"))

	rec := do(t, h, http.MethodGet, "/api/tabs/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var tab tabView
	if err := json.Unmarshal(rec.Body.Bytes(), &tab); err != nil {
		t.Fatal(err)
	}
	if tab.Label != "logs" || tab.ID == "" {
		t.Fatalf("tab = %+v", tab)
	}

	if rec := do(t, h, http.MethodGet, "/api/tabs/9", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing tab status = %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/tabs/nope", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("non-integer index status = %d, want 400", rec.Code)
	}

	rec = do(t, h, http.MethodDelete, "/api/tabs/0", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rec.Code)
	}
	view := decodeCollection(t, rec)
	if len(view.Tabs) != 1 || view.Tabs[0].Label != "logs" {
		t.Fatalf("collection after delete = %+v", view)
	}
}

func TestUpdateTab(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, seeded("home"))
	rec := do(t, h, http.MethodPatch, "/api/tabs/0", `{"label":"start","loading":true,"draggable":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var tab tabView
	if err := json.Unmarshal(rec.Body.Bytes(), &tab); err != nil {
		t.Fatal(err)
	}
	if tab.Label != "start" || !tab.Loading || tab.Draggable {
		t.Fatalf("tab = %+v", tab)
	}
	if tab.DisplayLabel != tabs.LoadingLabel {
		t.Fatalf("display label = %q, want loading placeholder", tab.DisplayLabel)
	}
}

func TestSelectEndpoints(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, seeded("home", "logs"))

	if rec := do(t, h, http.MethodPut, "/api/tabs/1/select", ""); rec.Code != http.StatusOK {
		t.Fatalf("select status = %d, want 200", rec.Code)
	}
	if rec := do(t, h, http.MethodPut, "/api/tabs/9/select", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("select bad index status = %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/tabs/select", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("clear selection status = %d, want 204", rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/api/tabs", "")
	view := decodeCollection(t, rec)
	if view.Selected != nil {
		t.Fatalf("selected = %v, want absent", *view.Selected)
	}
}

func TestReorderEndpoint(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, seeded("A", "B", "C", "D"))
	rec := do(t, h, http.MethodPost, "/api/tabs/reorder", `{"from":0,"to":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	view := decodeCollection(t, rec)
	want := []string{"B", "C", "A", "D"}
	for i, tab := range view.Tabs {
		if tab.Label != want[i] {
			t.Fatalf("order = %+v, want %v", view.Tabs, want)
		}
	}

	if rec := do(t, h, http.MethodPost, "/api/tabs/reorder", `{"from":9,"to":0}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad reorder status = %d, want 400", rec.Code)
	}
}

func TestSplitEndpoint(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, seeded("A", "B", "C", "D"))
	rec := do(t, h, http.MethodPost, "/api/tabs/split", `{"pivot":1,"keep":"tail"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	view := decodeCollection(t, rec)
	if len(view.Tabs) != 3 || view.Tabs[0].Label != "B" {
		t.Fatalf("collection after split = %+v", view)
	}
	if view.Selected == nil || *view.Selected != 0 {
		t.Fatal("split should reset selection to 0")
	}

	if rec := do(t, h, http.MethodPost, "/api/tabs/split", `{"pivot":0,"keep":"sideways"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad keep status = %d, want 400", rec.Code)
	}
}

func TestReplaceEndpoint(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, seeded("old"))
	rec := do(t, h, http.MethodPost, "/api/tabs/replace", `{"tabs":[{"label":"x"},{"label":"y"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	view := decodeCollection(t, rec)
	if len(view.Tabs) != 2 || view.Tabs[0].Label != "x" || view.Tabs[1].Label != "y" {
		t.Fatalf("collection after replace = %+v", view)
	}
}
