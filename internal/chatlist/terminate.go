package chatlist

// Step is the detector's verdict for one observed identity.
type Step int

const (
	Continue Step = iota
	Terminal
)

func (s Step) String() string {
	if s == Terminal {
		return "terminal"
	}
	return "continue"
}

// Detector ends a traversal when focus stops moving: the identity seen
// after an advance equals the one seen after the previous advance.
// The zero value is ready to use.
type Detector struct {
	prev    Identity
	started bool
}

// Observe records the identity of the item focused by the latest advance.
func (d *Detector) Observe(id Identity) Step {
	if d.started && id == d.prev {
		return Terminal
	}
	d.prev = id
	d.started = true
	return Continue
}
