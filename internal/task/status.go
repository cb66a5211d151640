package task

// Status is the lifecycle state of a task. The success path is
// queued → starting → downloading → processing → finished; error is
// reachable from any non-terminal state. Transitions never go backward.
type Status string

const (
	StatusQueued      Status = "queued"
	StatusStarting    Status = "starting"
	StatusDownloading Status = "downloading"
	StatusProcessing  Status = "processing"
	StatusFinished    Status = "finished"
	StatusError       Status = "error"
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusError
}

// rank orders the success path for the forward-only transition check.
func (s Status) rank() int {
	switch s {
	case StatusQueued:
		return 0
	case StatusStarting:
		return 1
	case StatusDownloading:
		return 2
	case StatusProcessing:
		return 3
	case StatusFinished:
		return 4
	default:
		return 5
	}
}
