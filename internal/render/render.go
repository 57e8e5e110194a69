package render

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Output slots the checkout summary writes into.
const (
	SlotSubtotal   = "subtotal"
	SlotItemCount  = "item-count"
	SlotTax        = "tax"
	SlotShipping   = "shipping"
	SlotOrderTotal = "order-total"
)

// AllSlots lists every slot the summary can fill.
func AllSlots() []string {
	return []string{SlotSubtotal, SlotItemCount, SlotTax, SlotShipping, SlotOrderTotal}
}

// Renderer receives rendered summary text. Setting a slot the renderer does
// not expose is a silent no-op; rendering never fails the flow.
type Renderer interface {
	Set(slot, text string)
}

// SlotView holds rendered text for a declared set of slots.
type SlotView struct {
	mu    sync.Mutex
	slots map[string]string
}

// NewSlotView declares the slots this view exposes. Undeclared slots are
// ignored on Set.
func NewSlotView(slots ...string) *SlotView {
	declared := make(map[string]string, len(slots))
	for _, slot := range slots {
		declared[slot] = ""
	}
	return &SlotView{slots: declared}
}

func (v *SlotView) Set(slot, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.slots[slot]; !ok {
		return
	}
	v.slots[slot] = text
}

// Get returns the slot's text and whether the slot is declared.
func (v *SlotView) Get(slot string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	text, ok := v.slots[slot]
	return text, ok
}

// Snapshot copies the current slot contents.
func (v *SlotView) Snapshot() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]string, len(v.slots))
	for slot, text := range v.slots {
		out[slot] = text
	}
	return out
}

// WriterRenderer prints slot updates to a writer, for terminal use.
type WriterRenderer struct {
	Out io.Writer
}

func (r WriterRenderer) Set(slot, text string) {
	if r.Out == nil {
		return
	}
	fmt.Fprintf(r.Out, "%s: %s\n", slot, text)
}

// SortedSlots returns slot names in a stable order for display.
func SortedSlots(snapshot map[string]string) []string {
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
