package task

import (
	"context"
	"log"
	"math"
	"strings"
	"sync"

	"audiograb/internal/downloader"
	"audiograb/internal/files"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Manager is the process-wide task registry plus the download workers
// that feed it. One mutex guards the map and every multi-field update,
// so readers always see a consistent snapshot.
type Manager struct {
	mu      sync.Mutex
	tasks   map[string]*Task
	fetcher downloader.Fetcher
	dir     string
}

func NewManager(fetcher downloader.Fetcher, dir string) *Manager {
	return &Manager{
		tasks:   make(map[string]*Task),
		fetcher: fetcher,
		dir:     dir,
	}
}

func newID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// Create registers a new queued task and returns its id. Ids are never
// reused for the lifetime of the process.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var id string
	for {
		id = newID()
		if _, exists := m.tasks[id]; !exists {
			break
		}
	}

	zero := 0.0
	m.tasks[id] = &Task{
		ID:      id,
		Status:  StatusQueued,
		Percent: &zero,
	}
	return id
}

// Get returns a snapshot of a task.
func (m *Manager) Get(id string) (Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// Start launches the download worker for a task. It returns immediately;
// progress is observable only through Get.
func (m *Manager) Start(id, url string) {
	go m.run(id, url)
}

// run drives one task to a terminal state.
func (m *Manager) run(id, url string) {
	m.setStatus(id, StatusStarting)
	log.Printf("task %s: fetching %s", id, url)

	err := m.fetcher.Fetch(context.Background(), url, files.OutputTemplate(m.dir, id), func(p downloader.Progress) {
		m.applyProgress(id, p)
	})
	if err != nil {
		m.fail(id, err.Error())
		log.Printf("task %s: failed: %v", id, err)
		return
	}

	name, size, ok := files.FindOutput(m.dir, id)
	if !ok {
		m.fail(id, "mp3 not found after processing")
		log.Printf("task %s: output missing after processing", id)
		return
	}
	m.finish(id, name)
	log.Printf("task %s: finished %s (%s)", id, name, humanize.Bytes(uint64(size)))
}

// applyProgress maps one progress event onto the task. Events against a
// terminal task, and events that would move the status backward, are
// dropped.
func (m *Manager) applyProgress(id string, p downloader.Progress) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok || t.Status.IsTerminal() {
		return
	}

	switch p.Kind {
	case downloader.ProgressDownloading:
		if StatusDownloading.rank() < t.Status.rank() {
			return
		}
		t.Status = StatusDownloading
		t.DownloadedBytes = p.DownloadedBytes
		t.TotalBytes = p.TotalBytes
		t.Speed = p.Speed
		if p.ETA != nil {
			eta := *p.ETA
			t.ETA = &eta
		} else {
			t.ETA = nil
		}
		if p.DownloadedBytes > 0 && p.TotalBytes > 0 {
			pct := round2(float64(p.DownloadedBytes) * 100 / float64(p.TotalBytes))
			t.Percent = &pct
		} else {
			t.Percent = nil
		}
	case downloader.ProgressFinished:
		if StatusProcessing.rank() < t.Status.rank() {
			return
		}
		t.Status = StatusProcessing
	case downloader.ProgressError:
		t.Status = StatusError
		msg := "Download error"
		t.Err = &msg
	}
}

func (m *Manager) setStatus(id string, status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok || t.Status.IsTerminal() || status.rank() < t.Status.rank() {
		return
	}
	t.Status = status
}

func (m *Manager) finish(id, filename string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok || t.Status.IsTerminal() {
		return
	}
	t.Status = StatusFinished
	t.File = &filename
}

func (m *Manager) fail(id, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok || t.Status.IsTerminal() {
		return
	}
	t.Status = StatusError
	t.Err = &msg
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
