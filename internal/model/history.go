package model

import "time"

const defaultHistoryCap = 60

// HistoryPoint is a single timestamped sample stored in the ring buffer.
type HistoryPoint struct {
	Timestamp    time.Time
	PowerKW      float64
	ActiveAlerts float64
	Availability float64
}

// History is a fixed-size ring buffer of HistoryPoints taken from successive
// snapshots. When the buffer is full, new pushes overwrite the oldest entry.
type History struct {
	buf  []HistoryPoint
	head int // index of the next write position
	size int // number of valid entries
}

// NewHistory creates a History with the given capacity.
// If capacity <= 0, defaultHistoryCap (60) is used.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = defaultHistoryCap
	}
	return &History{
		buf: make([]HistoryPoint, capacity),
	}
}

// Push appends a new point to the history, overwriting the oldest if full.
func (h *History) Push(p HistoryPoint) {
	h.buf[h.head] = p
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Len returns the number of valid entries in the history.
func (h *History) Len() int {
	return h.size
}

// Last returns the most recent point.
func (h *History) Last() (HistoryPoint, bool) {
	if h.size == 0 {
		return HistoryPoint{}, false
	}
	return h.buf[(h.head-1+len(h.buf))%len(h.buf)], true
}

// Clear resets the history to empty.
func (h *History) Clear() {
	h.head = 0
	h.size = 0
}

// Values returns the named field in chronological order (oldest first).
// Valid field names: "power", "alerts", "availability".
func (h *History) Values(field string) []float64 {
	out := make([]float64, h.size)
	// oldest entry sits at (head - size + cap) % cap
	start := (h.head - h.size + len(h.buf)) % len(h.buf)
	for i := 0; i < h.size; i++ {
		p := h.buf[(start+i)%len(h.buf)]
		switch field {
		case "power":
			out[i] = p.PowerKW
		case "alerts":
			out[i] = p.ActiveAlerts
		case "availability":
			out[i] = p.Availability
		}
	}
	return out
}
