// Package dashboard serves a read-only view of the bot's state files. It
// reads the JSON files fresh on every request, so it can run as a separate
// process next to the bot without sharing memory.
package dashboard

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/devunfiltered/engagebot/internal/store"
)

// Config holds the dashboard's file paths and listen address.
type Config struct {
	Addr         string
	ActivityPath string
	HistoryPath  string
	TopicsPath   string
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg  Config
	http *http.Server
}

// New creates a dashboard server with its routes registered.
func New(cfg Config) *Server {
	s := &Server{cfg: cfg}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/api/activity", s.handleActivity).Methods(http.MethodGet)
	r.HandleFunc("/api/history", s.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/api/topics", s.handleTopics).Methods(http.MethodGet)

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving HTTP until the server is shut down.
func (s *Server) ListenAndServe() error {
	slog.Info("dashboard listening", "addr", s.cfg.Addr)
	return s.http.ListenAndServe()
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// serveFileJSON streams a state file as JSON, substituting an empty
// document when the file doesn't exist yet.
func serveFileJSON(w http.ResponseWriter, path string, empty string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(empty))
			return
		}
		slog.Error("failed to read state file", "path", path, "error", err)
		http.Error(w, "failed to read state", http.StatusInternalServerError)
		return
	}
	if !json.Valid(data) {
		slog.Error("state file is not valid JSON", "path", path)
		http.Error(w, "state file corrupt", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	serveFileJSON(w, s.cfg.ActivityPath, "{}")
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	serveFileJSON(w, s.cfg.HistoryPath, "[]")
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	serveFileJSON(w, s.cfg.TopicsPath, "{}")
}

type indexData struct {
	Activity store.Activity
	Recent   []store.PostedRecord
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var data indexData
	if raw, err := os.ReadFile(s.cfg.ActivityPath); err == nil {
		if err := json.Unmarshal(raw, &data.Activity); err != nil {
			slog.Error("failed to parse activity log", "error", err)
		}
	}
	if raw, err := os.ReadFile(s.cfg.HistoryPath); err == nil {
		var history []store.PostedRecord
		if err := json.Unmarshal(raw, &history); err != nil {
			slog.Error("failed to parse posted history", "error", err)
		}
		// Newest first, capped for the page.
		for i := len(history) - 1; i >= 0 && len(data.Recent) < 20; i-- {
			data.Recent = append(data.Recent, history[i])
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		slog.Error("failed to render dashboard", "error", err)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>engagebot dashboard</title>
<style>
body { font-family: ui-monospace, monospace; max-width: 860px; margin: 2rem auto; padding: 0 1rem; background: #111; color: #ddd; }
h1 { font-size: 1.3rem; }
.stats { display: flex; gap: 2rem; margin: 1rem 0; }
.stat { background: #1b1b1b; padding: 0.8rem 1.2rem; border-radius: 6px; }
.stat .n { font-size: 1.6rem; font-weight: bold; color: #7dd3fc; }
table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
td, th { text-align: left; padding: 0.4rem 0.6rem; border-bottom: 1px solid #2a2a2a; vertical-align: top; }
.score { color: #86efac; }
a { color: #7dd3fc; }
</style>
</head>
<body>
<h1>engagebot</h1>
<div class="stats">
<div class="stat"><div class="n">{{.Activity.SuccessfulPosts}}</div>posted</div>
<div class="stat"><div class="n">{{.Activity.TotalRejections}}</div>rejected</div>
<div class="stat"><div class="n">{{.Activity.FailedPosts}}</div>failed</div>
</div>
{{if .Activity.NextPostTime}}<p>next post: {{.Activity.NextPostTime.Format "2006-01-02 15:04 MST"}}</p>{{end}}
<table>
<tr><th>when</th><th>type</th><th>score</th><th>post</th></tr>
{{range .Recent}}
<tr>
<td>{{.Timestamp.Format "01-02 15:04"}}</td>
<td>{{.ContentType}}</td>
<td class="score">{{.Score}}</td>
<td>{{.PostText}}{{if .URL}} <a href="{{.URL}}">↗</a>{{end}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))
