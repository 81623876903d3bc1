package stream

// State is the lifecycle state of a Session.
type State int

const (
	// StateIdle is the entry state before Run is called.
	StateIdle State = iota

	// StateRequesting covers building and dialing the outbound request.
	StateRequesting

	// StateStreaming covers the read-decode-classify-emit loop.
	StateStreaming

	// StateFinished is the terminal success state.
	StateFinished

	// StateFailed is the terminal failure state.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateStreaming:
		return "streaming"
	case StateFinished:
		return "finished"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
