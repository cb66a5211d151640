package downloader

import (
	"context"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// Client drives the yt-dlp tool. It implements Prober and Fetcher.
type Client struct {
	progressInterval time.Duration
}

func NewClient() *Client {
	return &Client{progressInterval: 500 * time.Millisecond}
}

// Install makes sure the yt-dlp binary is available, downloading it if
// needed. Call once at startup.
func Install(ctx context.Context) {
	ytdlp.MustInstall(ctx, nil)
}

// Probe fetches metadata for a URL without downloading content.
func (c *Client) Probe(ctx context.Context, url string) (*MediaInfo, error) {
	dl := ytdlp.New().
		SkipDownload().
		NoPlaylist().
		DumpSingleJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, err
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %v", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("no metadata returned for %s", url)
	}

	info := infos[0]
	mi := &MediaInfo{}
	if info.Title != nil {
		mi.Title = *info.Title
	}
	if info.Thumbnail != nil {
		mi.Thumbnail = *info.Thumbnail
	}
	if info.Duration != nil {
		mi.Duration = *info.Duration
	}
	return mi, nil
}

// Fetch downloads the best available audio for a URL and converts it to
// mp3 at the fixed target bitrate and sample rate. Output lands at the
// given template path with the extension filled in by the tool.
func (c *Client) Fetch(ctx context.Context, url, outputTemplate string, onProgress func(Progress)) error {
	dl := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality("64K").
		PostProcessorArgs("ffmpeg:-ar 32000 -b:a 64k").
		NoPlaylist().
		Output(outputTemplate)

	dl.ProgressFunc(c.progressInterval, func(update ytdlp.ProgressUpdate) {
		if onProgress == nil {
			return
		}
		switch update.Status {
		case ytdlp.ProgressStatusDownloading:
			ev := Progress{
				Kind:            ProgressDownloading,
				DownloadedBytes: int64(update.DownloadedBytes),
				TotalBytes:      int64(update.TotalBytes),
			}
			// The tool reports no instantaneous rate, so derive one
			// from bytes over elapsed time.
			if !update.Started.IsZero() {
				elapsed := time.Since(update.Started).Seconds()
				if elapsed > 0 {
					ev.Speed = float64(update.DownloadedBytes) / elapsed
				}
			}
			if eta := update.ETA(); eta > 0 {
				secs := int(eta.Seconds())
				ev.ETA = &secs
			}
			onProgress(ev)
		case ytdlp.ProgressStatusFinished:
			onProgress(Progress{Kind: ProgressFinished})
		case ytdlp.ProgressStatusError:
			onProgress(Progress{Kind: ProgressError})
		}
	})

	_, err := dl.Run(ctx, url)
	return err
}
