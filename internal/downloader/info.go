package downloader

import (
	"fmt"
	"math"
)

// BitrateBPS is the target audio bitrate in bits per second. Size
// estimates and the transcode settings both derive from it.
const BitrateBPS = 64000

// MediaInfo is the metadata returned by a probe.
type MediaInfo struct {
	Title     string
	Thumbnail string
	Duration  float64 // seconds
}

// FormatDuration renders a duration in seconds as zero-padded "MM:SS".
// Minutes are not capped at 59. Negative or non-finite input yields "00:00".
func FormatDuration(sec float64) string {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < 0 {
		return "00:00"
	}
	s := int(sec)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// EstimateSizeMB estimates the output size in megabytes for a duration,
// assuming the fixed target bitrate. The byte count is truncated before
// converting, then rounded to two decimals.
func EstimateSizeMB(sec float64) float64 {
	if sec < 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return 0
	}
	bytes := int64(sec * BitrateBPS / 8)
	return math.Round(float64(bytes)/(1024*1024)*100) / 100
}
