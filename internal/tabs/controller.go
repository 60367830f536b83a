// Package tabs manages an ordered, observable collection of tab records and
// the currently selected member of that collection.
//
// The package is single-threaded by contract: operations run synchronously
// and never yield, so every invariant holds before and after each operation
// even though it may be violated transiently in between. Notification
// delivery is synchronous and reentrant: an observer may call back into the
// controller, and the nested operation runs to completion immediately on the
// same stack before the remaining observers fire.
package tabs

import "fmt"

// Side selects which side of the collection a split keeps. Both sides
// include the pivot record.
type Side int

const (
	// KeepHead discards the tail slice, keeping tabs [0, pivot].
	KeepHead Side = iota
	// KeepTail discards the head slice, keeping tabs [pivot, length).
	KeepTail
)

// Option configures a Controller at construction.
type Option func(*Controller)

// WithCapacity bounds the collection to at most n tabs. Non-positive values
// leave the collection unbounded.
func WithCapacity(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithoutReorder disables the Reorder operation; calls to it become no-ops.
func WithoutReorder() Option {
	return func(c *Controller) { c.reorder = false }
}

// WithPayload attaches a caller-defined value to the controller.
func WithPayload(payload any) Option {
	return func(c *Controller) { c.payload = payload }
}

// WithOnReorder registers a callback fired after every completed reorder
// with the originally requested indices.
func WithOnReorder(fn func(oldIndex, newIndex int)) Option {
	return func(c *Controller) { c.onReorder = fn }
}

// WithOnCapacityExceeded registers a callback fired whenever an insert or
// append is rejected, or input is truncated, because the capacity is full.
func WithOnCapacityExceeded(fn func(capacity int)) Option {
	return func(c *Controller) { c.onCapacityExceeded = fn }
}

// Controller owns an ordered collection of records, the optional selection
// cursor, and the capacity and reorder policies. It subscribes to every
// owned record and re-publishes record changes and its own structural
// changes as a single observable stream.
type Controller struct {
	items    []*Record
	selected int // index into items, -1 when nothing is selected
	capacity int // 0 means unbounded
	reorder  bool
	payload  any

	onReorder          func(oldIndex, newIndex int)
	onCapacityExceeded func(capacity int)

	observers map[int]Observer
	nextSub   int
	owned     map[*Record]int // record -> subscription handle on that record
}

// New constructs a controller owning records in order. The first tab is
// selected when the sequence is non-empty. A sequence longer than the
// configured capacity is truncated, firing the capacity callback.
func New(records []*Record, opts ...Option) *Controller {
	c := &Controller{
		selected:  -1,
		reorder:   true,
		observers: make(map[int]Observer),
		owned:     make(map[*Record]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.capacity > 0 && len(records) > c.capacity {
		records = records[:c.capacity]
		c.fireCapacityExceeded()
	}
	c.items = append(c.items, records...)
	for _, r := range c.items {
		c.own(r)
	}
	c.reindex()
	if len(c.items) > 0 {
		c.selected = 0
	}
	return c
}

// Len returns the number of owned tabs.
func (c *Controller) Len() int { return len(c.items) }

// Items returns the ordered collection. The slice is a read-only view;
// callers must not modify it.
func (c *Controller) Items() []*Record { return c.items }

// At returns the record at index.
func (c *Controller) At(index int) (*Record, error) {
	if err := c.checkIndex(index); err != nil {
		return nil, err
	}
	return c.items[index], nil
}

// Selected returns the selection cursor and whether a tab is selected.
func (c *Controller) Selected() (int, bool) {
	if c.selected < 0 {
		return 0, false
	}
	return c.selected, true
}

// SelectedRecord returns the selected record, or nil when none is selected.
func (c *Controller) SelectedRecord() *Record {
	if c.selected < 0 {
		return nil
	}
	return c.items[c.selected]
}

// Capacity returns the capacity bound and whether one is set.
func (c *Controller) Capacity() (int, bool) {
	return c.capacity, c.capacity > 0
}

// ReorderEnabled reports whether Reorder performs moves.
func (c *Controller) ReorderEnabled() bool { return c.reorder }

// Payload returns the caller-defined value attached to the controller.
func (c *Controller) Payload() any { return c.payload }

// InsertAt inserts a record so that it occupies index. It returns false and
// fires the capacity callback when the collection is full, and an error for
// an index outside [0, Len()]. The first inserted tab becomes selected.
func (c *Controller) InsertAt(index int, r *Record) (bool, error) {
	if c.capacity > 0 && len(c.items) >= c.capacity {
		c.fireCapacityExceeded()
		return false, nil
	}
	if index < 0 || index > len(c.items) {
		return false, fmt.Errorf("%w: insert at %d with length %d", ErrIndexOutOfRange, index, len(c.items))
	}
	wasEmpty := len(c.items) == 0
	c.items = append(c.items, nil)
	copy(c.items[index+1:], c.items[index:])
	c.items[index] = r
	c.own(r)
	c.reindex()
	if wasEmpty {
		c.selected = 0
	}
	c.notify()
	return true, nil
}

// Append adds a record at the end, with the same capacity rejection as
// InsertAt. The appended record's position is stamped directly; earlier
// tabs keep their slots.
func (c *Controller) Append(r *Record) bool {
	if c.capacity > 0 && len(c.items) >= c.capacity {
		c.fireCapacityExceeded()
		return false
	}
	c.items = append(c.items, r)
	c.own(r)
	r.setPosition(len(c.items) - 1)
	if len(c.items) == 1 {
		c.selected = 0
	}
	c.notify()
	return true
}

// AppendMany appends as many records as the remaining capacity allows,
// silently dropping the rest after firing the capacity callback. It returns
// true iff at least one record was added, notifying once in that case.
func (c *Controller) AppendMany(records []*Record) bool {
	if c.capacity > 0 {
		available := c.capacity - len(c.items)
		if available <= 0 {
			c.fireCapacityExceeded()
			return false
		}
		if len(records) > available {
			records = records[:available]
			defer c.fireCapacityExceeded()
		}
	}
	if len(records) == 0 {
		return false
	}
	wasEmpty := len(c.items) == 0
	for _, r := range records {
		c.items = append(c.items, r)
		c.own(r)
		r.setPosition(len(c.items) - 1)
	}
	if wasEmpty {
		c.selected = 0
	}
	c.notify()
	return true
}

// ReplaceAll detaches every owned record, then adopts records in order with
// AppendMany's truncation behavior. Every incoming record is re-owned even
// if it was detached moments earlier in the same operation; SplitAt relies
// on that. Cannot fail; notifies once.
func (c *Controller) ReplaceAll(records []*Record) {
	for _, r := range c.items {
		c.disown(r)
	}
	c.items = nil
	c.selected = -1
	if c.capacity > 0 && len(records) > c.capacity {
		records = records[:c.capacity]
		c.fireCapacityExceeded()
	}
	c.items = append(c.items, records...)
	for _, r := range c.items {
		c.own(r)
	}
	c.reindex()
	if len(c.items) > 0 {
		c.selected = 0
	}
	c.notify()
}

// RemoveAt detaches and returns the record at index. Selection repair:
// removing the last tab clears the selection; removing the selected tab, or
// stranding the cursor past the end, resets it to 0; removing a tab below
// the cursor shifts the cursor down with its record.
func (c *Controller) RemoveAt(index int) (*Record, error) {
	if err := c.checkIndex(index); err != nil {
		return nil, err
	}
	r := c.items[index]
	c.items = append(c.items[:index], c.items[index+1:]...)
	c.disown(r)
	c.reindex()
	switch {
	case len(c.items) == 0:
		c.selected = -1
	case c.selected == index || c.selected >= len(c.items):
		c.selected = 0
	case c.selected > index:
		c.selected--
	}
	c.notify()
	return r, nil
}

// RemoveAll detaches every record, clears the collection and the selection,
// and notifies once.
func (c *Controller) RemoveAll() {
	for _, r := range c.items {
		c.disown(r)
	}
	c.items = nil
	c.selected = -1
	c.notify()
}

// SplitAt removes one side of the collection relative to the pivot, keeping
// the other. The head slice spans [0, pivot] and the tail slice spans
// [pivot, length), so the pivot record belongs to both: it is detached with
// the discarded side and immediately re-owned by the ReplaceAll that adopts
// the kept side. Selection lands on 0 when the kept side is non-empty.
func (c *Controller) SplitAt(pivot int, keep Side) error {
	if err := c.checkIndex(pivot); err != nil {
		return err
	}
	head := append([]*Record(nil), c.items[:pivot+1]...)
	tail := append([]*Record(nil), c.items[pivot:]...)
	if keep == KeepTail {
		for _, r := range head {
			c.disown(r)
		}
		c.ReplaceAll(tail)
		return nil
	}
	for _, r := range tail {
		c.disown(r)
	}
	c.ReplaceAll(head)
	return nil
}

// Reorder moves the record at oldIndex so it lands at newIndex, counted in
// the pre-move order. A negative newIndex clamps to 0; one past the end
// appends. Moving a record onto itself or into the slot immediately after
// itself is a no-op without notification. The selected record is tracked by
// identity across the move. The registered reorder callback receives the
// indices as requested, before clamping.
func (c *Controller) Reorder(oldIndex, newIndex int) error {
	if !c.reorder {
		return nil
	}
	if len(c.items) == 0 {
		return fmt.Errorf("%w: reorder", ErrEmptyCollection)
	}
	if oldIndex < 0 || oldIndex >= len(c.items) {
		return fmt.Errorf("%w: reorder from %d with length %d", ErrIndexOutOfRange, oldIndex, len(c.items))
	}
	requestedOld, requestedNew := oldIndex, newIndex
	if newIndex < 0 {
		newIndex = 0
	}
	if oldIndex == newIndex || oldIndex == newIndex-1 {
		return nil
	}
	selectedRec := c.SelectedRecord()
	origLen := len(c.items)
	r := c.items[oldIndex]
	c.items = append(c.items[:oldIndex], c.items[oldIndex+1:]...)
	switch {
	case newIndex >= origLen:
		c.items = append(c.items, r)
	case oldIndex < newIndex:
		// Removal shifted everything after oldIndex down one.
		c.items = insertRecord(c.items, newIndex-1, r)
	default:
		c.items = insertRecord(c.items, newIndex, r)
	}
	c.reindex()
	if selectedRec != nil {
		c.selected = selectedRec.Position()
	}
	c.notify()
	if c.onReorder != nil {
		c.onReorder(requestedOld, requestedNew)
	}
	return nil
}

// Select moves the selection cursor. It notifies even when index equals the
// current selection.
func (c *Controller) Select(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.selected = index
	c.notify()
	return nil
}

// ClearSelection drops the selection cursor. Always legal; always notifies.
func (c *Controller) ClearSelection() {
	c.selected = -1
	c.notify()
}

// Subscribe registers fn to run after every structural mutation and after
// every attribute change on any owned record. Registration has no side
// effects on controller state.
func (c *Controller) Subscribe(fn Observer) int {
	id := c.nextSub
	c.nextSub++
	c.observers[id] = fn
	return id
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (c *Controller) Unsubscribe(id int) {
	delete(c.observers, id)
}

// Dispose detaches every record and discards all state, including
// subscriptions. Disposal is terminal; no further operations are valid.
func (c *Controller) Dispose() {
	for _, r := range c.items {
		c.disown(r)
	}
	c.items = nil
	c.selected = -1
	clear(c.observers)
	clear(c.owned)
}

func (c *Controller) checkIndex(index int) error {
	if index < 0 || index >= len(c.items) {
		return fmt.Errorf("%w: index %d with length %d", ErrIndexOutOfRange, index, len(c.items))
	}
	return nil
}

// own subscribes the controller to a record's change stream. Re-owning a
// record that is already owned replaces the prior subscription.
func (c *Controller) own(r *Record) {
	if id, ok := c.owned[r]; ok {
		r.Unsubscribe(id)
	}
	c.owned[r] = r.Subscribe(c.notify)
}

// disown reverses own and resets the record to detached. Safe to call on a
// record that is already detached.
func (c *Controller) disown(r *Record) {
	if id, ok := c.owned[r]; ok {
		r.Unsubscribe(id)
		delete(c.owned, r)
	}
	r.setPosition(-1)
}

func (c *Controller) reindex() {
	for i, r := range c.items {
		r.setPosition(i)
	}
}

func (c *Controller) fireCapacityExceeded() {
	if c.onCapacityExceeded != nil {
		c.onCapacityExceeded(c.capacity)
	}
}

func (c *Controller) notify() {
	subs := make([]Observer, 0, len(c.observers))
	for _, fn := range c.observers {
		subs = append(subs, fn)
	}
	for _, fn := range subs {
		fn()
	}
}

func insertRecord(items []*Record, index int, r *Record) []*Record {
	items = append(items, nil)
	copy(items[index+1:], items[index:])
	items[index] = r
	return items
}
