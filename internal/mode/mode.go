package mode

// Mode is one controller state.
type Mode int

const (
	Idle Mode = iota
	Hints
	Grid
	Scroll
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Hints:
		return "hints"
	case Grid:
		return "grid"
	case Scroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// ParseMode resolves a mode name from the CLI or IPC surface.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "idle":
		return Idle, true
	case "hints":
		return Hints, true
	case "grid":
		return Grid, true
	case "scroll":
		return Scroll, true
	default:
		return Idle, false
	}
}
