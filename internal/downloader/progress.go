package downloader

import "context"

// ProgressKind discriminates the events emitted during a fetch.
type ProgressKind int

const (
	// ProgressDownloading carries transfer counters for an in-flight fetch.
	ProgressDownloading ProgressKind = iota
	// ProgressFinished means the transfer is complete and conversion started.
	ProgressFinished
	// ProgressError means the transfer failed.
	ProgressError
)

// Progress is one progress event from the media tool.
type Progress struct {
	Kind            ProgressKind
	DownloadedBytes int64
	TotalBytes      int64   // 0 when the transfer size is unknown
	Speed           float64 // bytes per second
	ETA             *int    // seconds remaining, nil when unknown
}

// Prober looks up metadata for a media URL without fetching content.
type Prober interface {
	Probe(ctx context.Context, url string) (*MediaInfo, error)
}

// Fetcher downloads a media URL and converts it to the target audio
// format, writing output according to the given path template. The
// progress callback may be invoked zero or more times before Fetch
// returns.
type Fetcher interface {
	Fetch(ctx context.Context, url, outputTemplate string, onProgress func(Progress)) error
}
