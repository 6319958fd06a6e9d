package securebuf

// Handle is a tracked byte region that is guaranteed to be zeroized when
// released. Every buffer containing a password, derived key, plaintext, the
// Base64 form of an envelope, or a raw envelope should be held through a
// Handle for the lifetime of one operation and no longer.
type Handle struct {
	mgr      *Manager
	data     []byte
	released bool
}

// Bytes returns the underlying buffer. It returns nil once Release has been
// called.
func (h *Handle) Bytes() []byte {
	if h == nil || h.released {
		return nil
	}
	return h.data
}

// Len returns the length of the buffer, or 0 if released.
func (h *Handle) Len() int {
	if h == nil || h.released {
		return 0
	}
	return len(h.data)
}

// Release zeroizes the buffer, drops it from the manager's tracked set, and
// marks the handle as released. Idempotent: safe to call more than once, and
// safe to call on every exit path of an operation including a panic recovery.
func (h *Handle) Release() {
	if h == nil || h.released {
		return
	}
	SecureZero(h.data)
	h.data = nil
	h.released = true
	if h.mgr != nil {
		h.mgr.untrack(h)
	}
}
