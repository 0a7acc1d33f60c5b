package core

// Control is a logical input the level polls once per frame.
type Control uint8

const (
	ControlUp Control = iota
	ControlDown
	ControlLeft
	ControlRight
	ControlSelect
	ControlCancel
	ControlPause
	controlCount
)

// Input reports which controls are active during the current frame.
type Input interface {
	Active(c Control) bool
}

// Controls is a fixed set of active controls. The zero value has nothing
// pressed.
type Controls [controlCount]bool

// Press returns a Controls with the given controls active.
func Press(cs ...Control) Controls {
	var out Controls
	for _, c := range cs {
		if c < controlCount {
			out[c] = true
		}
	}
	return out
}

// Active implements Input.
func (s Controls) Active(c Control) bool {
	return c < controlCount && s[c]
}
