package cart

import "time"

// Snapshot is the plain value form of a cart used by session stores.
type Snapshot struct {
	Items      []LineItem `json:"items"`
	EscapeDate time.Time  `json:"escape_date"`
}

// Snapshot copies the current cart state.
func (c *Cart) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		Items:      c.itemsLocked(),
		EscapeDate: c.escapeDate,
	}
}

// FromSnapshot rebuilds a cart. Entries are taken as-is; no merging is applied.
func FromSnapshot(snap Snapshot) *Cart {
	c := New()
	if len(snap.Items) > 0 {
		c.items = make([]LineItem, 0, len(snap.Items))
		for _, item := range snap.Items {
			c.items = append(c.items, item.clone())
		}
	}
	c.escapeDate = snap.EscapeDate
	return c
}
