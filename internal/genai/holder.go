package genai

import "sync"

// Holder owns the current Client. Credentials can be replaced at runtime
// through the config endpoint, so everything that calls the provider goes
// through the holder instead of keeping a client.
type Holder struct {
	mu     sync.RWMutex
	client *Client
	stats  *StatsRegistry
}

func NewHolder(stats *StatsRegistry) *Holder {
	return &Holder{stats: stats}
}

// Configure swaps in a client for the given credentials, closing any
// previous one.
func (h *Holder) Configure(apiURL, apiKey string) {
	next := NewClient(apiURL, apiKey, h.stats)

	h.mu.Lock()
	prev := h.client
	h.client = next
	h.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
}

// Client returns the current client, or nil when unconfigured.
func (h *Holder) Client() *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.client
}

// Configured reports whether a client is available.
func (h *Holder) Configured() bool {
	return h.Client() != nil
}

// Stats returns the latency registry shared by all clients.
func (h *Holder) Stats() *StatsRegistry {
	return h.stats
}

// Close releases the current client.
func (h *Holder) Close() {
	h.mu.Lock()
	prev := h.client
	h.client = nil
	h.mu.Unlock()
	if prev != nil {
		prev.Close()
	}
}
