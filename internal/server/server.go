package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"path/filepath"

	"audiograb/internal/config"
	"audiograb/internal/downloader"
	"audiograb/internal/task"
)

type Server struct {
	addr        string
	mgr         *task.Manager
	prober      downloader.Prober
	webDir      string
	downloadDir string
}

func NewServer(mgr *task.Manager, prober downloader.Prober) *Server {
	return &Server{
		addr:        fmt.Sprintf(":%d", config.GlobalConfig.Port),
		mgr:         mgr,
		prober:      prober,
		webDir:      config.GlobalConfig.WebDir,
		downloadDir: config.GlobalConfig.DownloadDir,
	}
}

func (s *Server) Start() error {
	log.Printf("Server starting at http://localhost%s", s.addr)
	return http.ListenAndServe(s.addr, s.routes())
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Web UI
	mux.Handle("/", http.FileServer(http.Dir(s.webDir)))

	// API Endpoints
	mux.HandleFunc("POST /info", s.handleInfo)
	mux.HandleFunc("POST /download", s.handleDownload)
	mux.HandleFunc("GET /status/{task_id}", s.handleStatus)
	mux.HandleFunc("GET /file/{task_id}", s.handleFile)

	return mux
}

type infoResponse struct {
	OK              bool    `json:"ok"`
	Title           string  `json:"title"`
	Thumbnail       string  `json:"thumbnail"`
	DurationSeconds float64 `json:"duration_seconds"`
	Duration        string  `json:"duration"`
	EstimatedSizeMB float64 `json:"estimated_size_mb"`
}

type downloadResponse struct {
	OK     bool   `json:"ok"`
	TaskID string `json:"task_id"`
}

type statusResponse struct {
	OK           bool     `json:"ok"`
	Status       string   `json:"status"`
	Percent      *float64 `json:"percent"`
	DownloadedMB float64  `json:"downloaded_mb"`
	TotalMB      *float64 `json:"total_mb"`
	SpeedKBs     float64  `json:"speed_kb_s"`
	ETA          *int     `json:"eta"`
	File         *string  `json:"file"`
	Error        *string  `json:"error"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{OK: false, Error: msg})
}

// decodeURL pulls the url field out of a JSON request body. A malformed
// body is treated the same as a missing url.
func decodeURL(r *http.Request) string {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return ""
	}
	return body.URL
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	url := decodeURL(r)
	if url == "" {
		writeError(w, http.StatusBadRequest, "No url provided")
		return
	}

	info, err := s.prober.Probe(r.Context(), url)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, infoResponse{
		OK:              true,
		Title:           info.Title,
		Thumbnail:       info.Thumbnail,
		DurationSeconds: info.Duration,
		Duration:        downloader.FormatDuration(info.Duration),
		EstimatedSizeMB: downloader.EstimateSizeMB(info.Duration),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	url := decodeURL(r)
	if url == "" {
		writeError(w, http.StatusBadRequest, "No url provided")
		return
	}

	id := s.mgr.Create()
	s.mgr.Start(id, url)

	writeJSON(w, http.StatusOK, downloadResponse{OK: true, TaskID: id})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	t, ok := s.mgr.Get(r.PathValue("task_id"))
	if !ok {
		writeError(w, http.StatusNotFound, "invalid task id")
		return
	}

	resp := statusResponse{
		OK:           true,
		Status:       t.Status.String(),
		Percent:      t.Percent,
		DownloadedMB: roundMB(t.DownloadedBytes),
		SpeedKBs:     round2(t.Speed / 1024),
		ETA:          t.ETA,
		File:         t.File,
		Error:        t.Err,
	}
	if t.TotalBytes > 0 {
		total := roundMB(t.TotalBytes)
		resp.TotalMB = &total
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	t, ok := s.mgr.Get(r.PathValue("task_id"))
	if !ok || t.Status != task.StatusFinished || t.File == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", *t.File))
	http.ServeFile(w, r, filepath.Join(s.downloadDir, *t.File))
}

func roundMB(bytes int64) float64 {
	return round2(float64(bytes) / (1024 * 1024))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
