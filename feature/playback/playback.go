package playback

import "fmt"

// State is the enumerated playback state reported by the player.
type State int

const (
	StateStopped State = iota
	StatePaused
	StatePlaying
	StateBuffering
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	case StateBuffering:
		return "buffering"
	default:
		return "unknown"
	}
}

// Target is the host-facing session state derived from a player state.
type Target struct {
	// Playing reports whether the session should present as playing.
	Playing bool
	// Loading reports whether the session should present as loading.
	Loading bool
}

// TargetFor translates a player state into its session target state. An
// out-of-range state is a contract violation by the caller.
func TargetFor(s State) (Target, error) {
	switch s {
	case StateStopped:
		return Target{}, nil
	case StatePaused:
		return Target{}, nil
	case StatePlaying:
		return Target{Playing: true}, nil
	case StateBuffering:
		return Target{Playing: true, Loading: true}, nil
	default:
		return Target{}, fmt.Errorf("playback: invalid state %d", int(s))
	}
}

// Command is an inbound transport-control directive from the host.
type Command string

const (
	CommandPlay  Command = "play"
	CommandPause Command = "pause"
	CommandStop  Command = "stop"
)

// TransportHandler receives dispatched transport commands.
type TransportHandler interface {
	Play() error
	Pause() error
	Stop() error
}

// Dispatch routes a transport command to the handler. An unsupported
// command fails fast; it is neither retried nor swallowed.
func Dispatch(cmd Command, h TransportHandler) error {
	switch cmd {
	case CommandPlay:
		return h.Play()
	case CommandPause:
		return h.Pause()
	case CommandStop:
		return h.Stop()
	default:
		return fmt.Errorf("playback: unsupported transport command %q", cmd)
	}
}
