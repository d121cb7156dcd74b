package scroll

// Lease is a scoped hold on page scroll suppression. Acquiring records the
// prior suppression state and suppresses; Release restores the recorded
// state exactly once.
type Lease struct {
	page     PageScroll
	prior    bool
	released bool
}

// AcquireLease suppresses page scroll on page.
func AcquireLease(page PageScroll) *Lease {
	l := &Lease{page: page, prior: page.ScrollSuppressed()}
	page.SetScrollSuppressed(true)
	return l
}

// Release restores the suppression state seen at acquire. Release is
// idempotent and safe on a nil lease.
func (l *Lease) Release() {
	if l == nil || l.released {
		return
	}
	l.released = true
	l.page.SetScrollSuppressed(l.prior)
}

// Released reports whether Release has run.
func (l *Lease) Released() bool {
	return l == nil || l.released
}
