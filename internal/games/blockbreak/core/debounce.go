package core

// Debounce gates one input channel. After the gated action fires, Reset
// blocks the channel for period milliseconds of elapsed frame time.
type Debounce struct {
	period    int64
	remaining int64
}

// NewDebounce returns a gate that is open immediately.
func NewDebounce(periodMs int64) Debounce {
	return Debounce{period: periodMs}
}

// Tick advances the countdown by dt and reports whether the channel is open.
func (d *Debounce) Tick(dt int64) bool {
	if d.remaining > 0 {
		d.remaining -= dt
	}
	if d.remaining < 0 {
		d.remaining = 0
	}
	return d.remaining == 0
}

// Ready reports whether the channel is open without advancing time.
func (d *Debounce) Ready() bool {
	return d.remaining <= 0
}

// Reset closes the channel for a full period.
func (d *Debounce) Reset() {
	d.remaining = d.period
}

// Remaining returns the milliseconds left before the channel reopens.
func (d *Debounce) Remaining() int64 {
	return d.remaining
}
