package editor

import (
	designdomain "github.com/smallbiznis/atelier/internal/design/domain"
)

type snapshot []designdomain.DesignElement

// History is a bounded undo/redo stack of element-list snapshots. When
// the undo side is full the oldest snapshot is evicted, so very old
// states become unreachable rather than failing the mutation.
type History struct {
	capacity int
	past     []snapshot
	future   []snapshot
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 20
	}
	return &History{capacity: capacity}
}

// Record pushes the pre-mutation state onto the undo stack and discards
// any redo states; a new mutation forks the timeline.
func (h *History) Record(state []designdomain.DesignElement) {
	h.past = append(h.past, designdomain.CloneElements(state))
	if len(h.past) > h.capacity {
		h.past = h.past[1:]
	}
	h.future = nil
}

// Undo exchanges the current state for the most recent snapshot. The
// second return is false when there is nothing to undo.
func (h *History) Undo(current []designdomain.DesignElement) ([]designdomain.DesignElement, bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	h.future = append(h.future, designdomain.CloneElements(current))
	restored := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	return restored, true
}

// Redo reapplies the most recently undone state.
func (h *History) Redo(current []designdomain.DesignElement) ([]designdomain.DesignElement, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	h.past = append(h.past, designdomain.CloneElements(current))
	restored := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	return restored, true
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Reset clears both stacks, used when a template load replaces the
// whole design.
func (h *History) Reset() {
	h.past = nil
	h.future = nil
}
