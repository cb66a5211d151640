package task

// Task is one conversion job tracked from creation to terminal state.
// Nullable fields are pointers; File is set only on finished, Err only
// on error. Pointer fields are replaced, never mutated in place, so a
// copy handed out by the registry stays consistent.
type Task struct {
	ID              string
	Status          Status
	DownloadedBytes int64
	TotalBytes      int64   // 0 until the transfer reports a size
	Speed           float64 // bytes per second
	Percent         *float64
	ETA             *int // seconds remaining
	File            *string
	Err             *string
}
