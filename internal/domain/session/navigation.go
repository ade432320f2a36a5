// internal/domain/session/navigation.go
package session

// History is the back-button stack of previously visited screens. Forward
// navigation pushes the screen being left; back navigation pops.
type History struct {
	stack []Screen
}

// Push appends a screen to the history stack.
func (h *History) Push(s Screen) {
	h.stack = append(h.stack, s)
}

// Pop removes and returns the most recently pushed screen.
// The second return is false when the stack is empty.
func (h *History) Pop() (Screen, bool) {
	if len(h.stack) == 0 {
		return nil, false
	}
	last := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return last, true
}

// Clear empties the history stack.
func (h *History) Clear() {
	h.stack = nil
}

// Len returns the number of entries on the stack.
func (h *History) Len() int {
	return len(h.stack)
}
