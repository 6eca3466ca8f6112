package model

// Task is the sole entity: one to-do item.
//
// IDs are clock-derived (unix milliseconds at creation, bumped on collision)
// and act as the store's primary key. Order is the display position; a nil
// Order sorts after every task that has one.
type Task struct {
	ID    int64  `json:"id"`
	Text  string `json:"text"`
	Done  bool   `json:"done"`
	Order *int64 `json:"order,omitempty"`
}

// OrderValue returns the display order, or a sentinel that sorts last when
// the task has none.
func (t Task) OrderValue() int64 {
	if t.Order == nil {
		return int64(1)<<62 - 1
	}
	return *t.Order
}
