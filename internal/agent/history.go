package agent

import "sync"

// DefaultHistoryLength is the number of turns kept per conversation.
const DefaultHistoryLength = 20

// DefaultConversationID is used when a caller does not name a conversation.
const DefaultConversationID = "default"

// Turn is one stored message.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History keeps the most recent turns of each conversation in memory. It is
// safe for concurrent use.
type History struct {
	mu    sync.Mutex
	limit int
	convs map[string][]Turn
}

// NewHistory creates a store bounded to limit turns per conversation. A
// non-positive limit means DefaultHistoryLength.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLength
	}

	return &History{
		limit: limit,
		convs: make(map[string][]Turn),
	}
}

// Limit returns the per-conversation bound.
func (h *History) Limit() int {
	return h.limit
}

// Get returns a copy of the conversation's turns, oldest first.
func (h *History) Get(id string) []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()

	turns := h.convs[id]
	out := make([]Turn, len(turns))
	copy(out, turns)

	return out
}

// Append adds turns, dropping the oldest beyond the limit.
func (h *History) Append(id string, turns ...Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	all := append(h.convs[id], turns...)
	if over := len(all) - h.limit; over > 0 {
		all = append([]Turn(nil), all[over:]...)
	}

	h.convs[id] = all
}

// Clear forgets a conversation.
func (h *History) Clear(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.convs, id)
}

// Len returns the number of stored turns.
func (h *History) Len(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.convs[id])
}
