package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tabdeck/tabdeck/internal/tabs"
)

func newRouter(deps Dependencies) http.Handler {
	if deps.Store == nil {
		deps.Store = NewStore(tabs.New(nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler)

	r.Route("/api/tabs", func(r chi.Router) {
		r.Get("/", listTabsHandler(deps.Store))
		r.Post("/", appendTabHandler(deps.Store))
		r.Post("/reorder", reorderHandler(deps.Store))
		r.Post("/split", splitHandler(deps.Store))
		r.Post("/replace", replaceHandler(deps.Store))
		r.Delete("/select", clearSelectionHandler(deps.Store))
		r.Get("/{index}", getTabHandler(deps.Store))
		r.Patch("/{index}", updateTabHandler(deps.Store))
		r.Delete("/{index}", removeTabHandler(deps.Store))
		r.Put("/{index}/select", selectHandler(deps.Store))
	})

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type tabView struct {
	Index        int    `json:"index"`
	ID           string `json:"id"`
	Label        string `json:"label"`
	DisplayLabel string `json:"display_label"`
	Color        string `json:"color,omitempty"`
	Loading      bool   `json:"loading"`
	Closable     bool   `json:"closable"`
	Draggable    bool   `json:"draggable"`
	Selected     bool   `json:"selected"`
}

type collectionView struct {
	Tabs     []tabView `json:"tabs"`
	Selected *int      `json:"selected,omitempty"`
	Capacity *int      `json:"capacity,omitempty"`
}

func snapshotTab(c *tabs.Controller, index int, r *tabs.Record) tabView {
	selected, ok := c.Selected()
	return tabView{
		Index:        index,
		ID:           r.ID(),
		Label:        r.Label(),
		DisplayLabel: r.DisplayLabel(),
		Color:        r.LabelColor(),
		Loading:      r.Loading(),
		Closable:     r.Closable(),
		Draggable:    r.Draggable(),
		Selected:     ok && selected == index,
	}
}

func snapshotCollection(c *tabs.Controller) collectionView {
	view := collectionView{Tabs: make([]tabView, 0, c.Len())}
	for i, r := range c.Items() {
		view.Tabs = append(view.Tabs, snapshotTab(c, i, r))
	}
	if selected, ok := c.Selected(); ok {
		view.Selected = &selected
	}
	if capacity, ok := c.Capacity(); ok {
		view.Capacity = &capacity
	}
	return view
}

func listTabsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var view collectionView
		store.With(func(c *tabs.Controller) {
			view = snapshotCollection(c)
		})
		writeJSON(w, http.StatusOK, view)
	}
}

type newTabRequest struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	Closable *bool  `json:"closable"`
	Index    *int   `json:"index"` // append when omitted
}

func appendTabHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body newTabRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if body.Label == "" {
			writeError(w, http.StatusBadRequest, "label is required")
			return
		}
		r := tabs.NewRecord(body.Label)
		r.SetLabelColor(body.Color)
		if body.Closable != nil {
			r.SetClosable(*body.Closable)
		}

		var (
			added bool
			opErr error
			view  collectionView
		)
		store.With(func(c *tabs.Controller) {
			if body.Index != nil {
				added, opErr = c.InsertAt(*body.Index, r)
			} else {
				added = c.Append(r)
			}
			view = snapshotCollection(c)
		})
		switch {
		case opErr != nil:
			writeError(w, http.StatusBadRequest, opErr.Error())
		case !added:
			writeError(w, http.StatusConflict, "tab limit reached")
		default:
			writeJSON(w, http.StatusCreated, view)
		}
	}
}

func getTabHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		index, ok := pathIndex(w, req)
		if !ok {
			return
		}
		var (
			view  tabView
			opErr error
		)
		store.With(func(c *tabs.Controller) {
			var r *tabs.Record
			r, opErr = c.At(index)
			if opErr == nil {
				view = snapshotTab(c, index, r)
			}
		})
		if opErr != nil {
			writeIndexError(w, opErr)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

type updateTabRequest struct {
	Label     *string  `json:"label"`
	Color     *string  `json:"color"`
	Loading   *bool    `json:"loading"`
	Closable  *bool    `json:"closable"`
	Draggable *bool    `json:"draggable"`
	LabelSize *float64 `json:"label_size"`
}

func updateTabHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		index, ok := pathIndex(w, req)
		if !ok {
			return
		}
		var body updateTabRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		var (
			view  tabView
			opErr error
		)
		store.With(func(c *tabs.Controller) {
			var r *tabs.Record
			r, opErr = c.At(index)
			if opErr != nil {
				return
			}
			if body.Label != nil {
				r.SetLabel(*body.Label)
			}
			if body.Color != nil {
				r.SetLabelColor(*body.Color)
			}
			if body.Loading != nil {
				r.SetLoading(*body.Loading)
			}
			if body.Closable != nil {
				r.SetClosable(*body.Closable)
			}
			if body.Draggable != nil {
				r.SetDraggable(*body.Draggable)
			}
			if body.LabelSize != nil {
				r.SetLabelSize(*body.LabelSize)
			}
			view = snapshotTab(c, index, r)
		})
		if opErr != nil {
			writeIndexError(w, opErr)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func removeTabHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		index, ok := pathIndex(w, req)
		if !ok {
			return
		}
		var (
			view  collectionView
			opErr error
		)
		store.With(func(c *tabs.Controller) {
			_, opErr = c.RemoveAt(index)
			if opErr == nil {
				view = snapshotCollection(c)
			}
		})
		if opErr != nil {
			writeIndexError(w, opErr)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func selectHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		index, ok := pathIndex(w, req)
		if !ok {
			return
		}
		var opErr error
		store.With(func(c *tabs.Controller) {
			opErr = c.Select(index)
		})
		if opErr != nil {
			writeIndexError(w, opErr)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"selected": index})
	}
}

func clearSelectionHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		store.With(func(c *tabs.Controller) {
			c.ClearSelection()
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func reorderHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body reorderRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		var (
			view  collectionView
			opErr error
		)
		store.With(func(c *tabs.Controller) {
			opErr = c.Reorder(body.From, body.To)
			if opErr == nil {
				view = snapshotCollection(c)
			}
		})
		if opErr != nil {
			writeError(w, http.StatusBadRequest, opErr.Error())
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

type splitRequest struct {
	Pivot int    `json:"pivot"`
	Keep  string `json:"keep"` // "head" or "tail"
}

func splitHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body splitRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		var keep tabs.Side
		switch body.Keep {
		case "head":
			keep = tabs.KeepHead
		case "tail":
			keep = tabs.KeepTail
		default:
			writeError(w, http.StatusBadRequest, `keep must be "head" or "tail"`)
			return
		}
		var (
			view  collectionView
			opErr error
		)
		store.With(func(c *tabs.Controller) {
			opErr = c.SplitAt(body.Pivot, keep)
			if opErr == nil {
				view = snapshotCollection(c)
			}
		})
		if opErr != nil {
			writeError(w, http.StatusBadRequest, opErr.Error())
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

type replaceRequest struct {
	Tabs []newTabRequest `json:"tabs"`
}

func replaceHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body replaceRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		records := make([]*tabs.Record, 0, len(body.Tabs))
		for _, seed := range body.Tabs {
			if seed.Label == "" {
				writeError(w, http.StatusBadRequest, "every tab needs a label")
				return
			}
			r := tabs.NewRecord(seed.Label)
			r.SetLabelColor(seed.Color)
			if seed.Closable != nil {
				r.SetClosable(*seed.Closable)
			}
			records = append(records, r)
		}
		var view collectionView
		store.With(func(c *tabs.Controller) {
			c.ReplaceAll(records)
			view = snapshotCollection(c)
		})
		writeJSON(w, http.StatusOK, view)
	}
}

func pathIndex(w http.ResponseWriter, req *http.Request) (int, bool) {
	raw := chi.URLParam(req, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return 0, false
	}
	return index, true
}

// writeIndexError maps the core error taxonomy onto status codes: a bad
// index is a 404 for resource-style routes.
func writeIndexError(w http.ResponseWriter, err error) {
	if errors.Is(err, tabs.ErrIndexOutOfRange) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
