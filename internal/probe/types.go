package probe

// Presence is the tri-state outcome of a single profile probe. The zero
// value is Unknown so transport failures classify correctly by default.
type Presence int

const (
	Unknown Presence = iota
	NotFound
	Found
)

func (p Presence) String() string {
	switch p {
	case Found:
		return "found"
	case NotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Result is the classified outcome of one profile probe.
type Result struct {
	URL      string
	Presence Presence
	Status   int    // HTTP status when a response was received
	Detail   string // error text when Presence is Unknown
}
