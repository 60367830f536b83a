package tabs

import "github.com/google/uuid"

// LoadingLabel is displayed in place of a record's own label while its
// loading flag is set.
const LoadingLabel = "Loading..."

// Observer is a zero-argument callback invoked synchronously after a state
// change. Callbacks may call back into the notifying entity; nested calls
// run immediately on the same stack.
type Observer func()

// MenuBuilder produces the menu entries for a tab button. The result is an
// opaque handle for the rendering layer; the core stores it without ever
// inspecting it.
type MenuBuilder func(r *Record) any

// LeadingBuilder produces a leading decoration for a tab given its current
// state. Opaque to the core, like MenuBuilder.
type LeadingBuilder func(r *Record) any

// Button pairs an icon identifier with a menu builder. How either is drawn
// is the rendering layer's concern.
type Button struct {
	Icon string
	Menu MenuBuilder
}

// Record is one tab in a controller's ordered collection. It carries display
// and behavioral attributes and broadcasts a notification to its subscribers
// after every attribute change. A record is created detached (position -1)
// and becomes owned when handed to a controller insert, append, or replace
// operation; at most one controller owns it at a time.
type Record struct {
	id string

	label      string
	loading    bool
	labelColor string
	labelSize  *float64
	closable   bool
	draggable  bool
	keepAlive  bool
	payload    any
	content    any
	buttons    []Button
	leading    LeadingBuilder

	// position is the record's slot in its owner's collection, written only
	// by the owning controller. -1 while detached.
	position int

	observers map[int]Observer
	nextSub   int
}

// NewRecord returns a detached record. Closable and draggable default to
// true; the identity token is unique and stable for the record's lifetime,
// so keep-alive content can be keyed on it across rebuilds.
func NewRecord(label string) *Record {
	return &Record{
		id:        uuid.NewString(),
		label:     label,
		closable:  true,
		draggable: true,
		position:  -1,
		observers: make(map[int]Observer),
	}
}

// ID returns the record's identity token.
func (r *Record) ID() string { return r.id }

// Label returns the raw label.
func (r *Record) Label() string { return r.label }

// SetLabel updates the raw label.
func (r *Record) SetLabel(label string) {
	if r.label == label {
		return
	}
	r.label = label
	r.notify()
}

// DisplayLabel returns the label the rendering layer should show: the
// loading placeholder while loading, the raw label otherwise.
func (r *Record) DisplayLabel() string {
	if r.loading {
		return LoadingLabel
	}
	return r.label
}

// Loading reports whether the loading placeholder overrides the label.
func (r *Record) Loading() bool { return r.loading }

// SetLoading toggles the loading placeholder.
func (r *Record) SetLoading(loading bool) {
	if r.loading == loading {
		return
	}
	r.loading = loading
	r.notify()
}

// LabelColor returns the label color, or an empty string when unset.
func (r *Record) LabelColor() string { return r.labelColor }

// SetLabelColor updates the label color. An empty string clears it.
func (r *Record) SetLabelColor(color string) {
	if r.labelColor == color {
		return
	}
	r.labelColor = color
	r.notify()
}

// LabelSize returns the fixed label size and whether one is set.
func (r *Record) LabelSize() (float64, bool) {
	if r.labelSize == nil {
		return 0, false
	}
	return *r.labelSize, true
}

// SetLabelSize stores a fixed label size. Negative values are clamped to
// zero rather than rejected.
func (r *Record) SetLabelSize(size float64) {
	if size < 0 {
		size = 0
	}
	if r.labelSize != nil && *r.labelSize == size {
		return
	}
	r.labelSize = &size
	r.notify()
}

// ClearLabelSize removes the fixed label size.
func (r *Record) ClearLabelSize() {
	if r.labelSize == nil {
		return
	}
	r.labelSize = nil
	r.notify()
}

// Closable reports whether the rendering layer should offer a close
// affordance for this tab.
func (r *Record) Closable() bool { return r.closable }

// SetClosable updates the close affordance flag.
func (r *Record) SetClosable(closable bool) {
	if r.closable == closable {
		return
	}
	r.closable = closable
	r.notify()
}

// Draggable reports whether drag-reorder gestures apply to this tab.
func (r *Record) Draggable() bool { return r.draggable }

// SetDraggable updates the drag flag.
func (r *Record) SetDraggable(draggable bool) {
	if r.draggable == draggable {
		return
	}
	r.draggable = draggable
	r.notify()
}

// KeepAlive reports whether rendered content persists while off-screen.
func (r *Record) KeepAlive() bool { return r.keepAlive }

// SetKeepAlive updates the keep-alive flag.
func (r *Record) SetKeepAlive(keepAlive bool) {
	if r.keepAlive == keepAlive {
		return
	}
	r.keepAlive = keepAlive
	r.notify()
}

// Payload returns the caller-defined value attached to the record.
func (r *Record) Payload() any { return r.payload }

// SetPayload replaces the caller-defined value. Payloads are opaque, so the
// record treats every call as a change and notifies.
func (r *Record) SetPayload(payload any) {
	r.payload = payload
	r.notify()
}

// Content returns the render handle owned by the rendering layer.
func (r *Record) Content() any { return r.content }

// SetContent replaces the render handle. Always notifies; handles are
// opaque to the core.
func (r *Record) SetContent(content any) {
	r.content = content
	r.notify()
}

// Buttons returns the tab's button descriptors in order.
func (r *Record) Buttons() []Button { return r.buttons }

// SetButtons replaces the button descriptors. Always notifies.
func (r *Record) SetButtons(buttons []Button) {
	r.buttons = buttons
	r.notify()
}

// Leading returns the leading decoration builder, or nil.
func (r *Record) Leading() LeadingBuilder { return r.leading }

// SetLeading replaces the leading decoration builder. Always notifies.
func (r *Record) SetLeading(leading LeadingBuilder) {
	r.leading = leading
	r.notify()
}

// Position returns the record's slot in its owning controller's collection,
// or -1 while detached.
func (r *Record) Position() int { return r.position }

// setPosition is called only by the owning controller. Position stamps are
// reported through the controller's own notification, not the record's.
func (r *Record) setPosition(position int) {
	r.position = position
}

// Subscribe registers fn to run after every attribute change and returns a
// handle for Unsubscribe. Registration itself has no side effects.
func (r *Record) Subscribe(fn Observer) int {
	id := r.nextSub
	r.nextSub++
	r.observers[id] = fn
	return id
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (r *Record) Unsubscribe(id int) {
	delete(r.observers, id)
}

func (r *Record) notify() {
	subs := make([]Observer, 0, len(r.observers))
	for _, fn := range r.observers {
		subs = append(subs, fn)
	}
	for _, fn := range subs {
		fn()
	}
}
