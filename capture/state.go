package capture

// State is the state of a recording session.
type State int

const (
	// Idle means no session is active.
	Idle State = iota
	// Recording means the microphone is held and chunks are being collected.
	Recording
	// Stopped means the device is released and the artifact is ready.
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StatusText is the status line the capture UI shows for s.
func (s State) StatusText() string {
	switch s {
	case Recording:
		return "Recording... stop when finished."
	case Stopped:
		return "Recording complete. Play to review."
	default:
		return ""
	}
}
