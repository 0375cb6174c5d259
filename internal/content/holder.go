package content

import "sync/atomic"

// Holder publishes the current resume to concurrent readers.
type Holder struct {
	current atomic.Pointer[Resume]
}

func NewHolder(initial *Resume) *Holder {
	h := &Holder{}
	if initial != nil {
		h.current.Store(initial)
	}
	return h
}

// Get returns the current resume or ErrNoContent.
func (h *Holder) Get() (*Resume, error) {
	r := h.current.Load()
	if r == nil {
		return nil, ErrNoContent
	}
	return r, nil
}

// Replace swaps in r. Readers holding the previous value keep it.
func (h *Holder) Replace(r *Resume) {
	if r != nil {
		h.current.Store(r)
	}
}
