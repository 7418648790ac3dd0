package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-destroyer/internal/config"
	"github.com/tomz197/asteroid-destroyer/internal/score"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
	recentRuns  = 10
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"percent": func(p float64) int { return int(p * 100) },
	"when":    func(t time.Time) string { return t.Local().Format("Jan 2 15:04") },
}).Parse(htmlPage))

// pageData is what the landing page shows.
type pageData struct {
	SSHHost   string
	HighScore int
	Runs      []score.Run
}

// scoresResponse is the JSON form of the leaderboard.
type scoresResponse struct {
	HighScore int        `json:"highScore"`
	Runs      []runEntry `json:"runs"`
}

type runEntry struct {
	Outcome    string    `json:"outcome"`
	Score      int       `json:"score"`
	Progress   float64   `json:"progress"`
	FinishedAt time.Time `json:"finishedAt"`
}

type webServer struct {
	store   *score.Store
	sshHost string
	logger  *log.Logger
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal("failed to load .env", "err", err)
	}
	settings := config.FromEnv()

	logger, logCloser, err := settings.NewLogger(os.Stderr)
	if err != nil {
		log.Fatal("failed to set up logging", "err", err)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	store, err := score.Open(context.Background(), settings.ScoreDB)
	if err != nil {
		logger.Fatal("failed to open score store", "err", err)
	}
	defer store.Close()

	ws := &webServer{store: store, sshHost: sshHost, logger: logger}

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("Starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, ws.routes()); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func (ws *webServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", ws.handleIndex)
	mux.HandleFunc("GET /api/scores", ws.handleScores)
	return mux
}

// load reads the high score and latest runs.
func (ws *webServer) load(ctx context.Context) (int, []score.Run, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	hs, err := ws.store.HighScore(ctx)
	if err != nil {
		return 0, nil, err
	}
	runs, err := ws.store.RecentRuns(ctx, recentRuns)
	if err != nil {
		return 0, nil, err
	}
	return hs, runs, nil
}

func (ws *webServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	hs, runs, err := ws.load(r.Context())
	if err != nil {
		// The page is still useful without scores.
		ws.logger.Warn("load scores", "err", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{SSHHost: ws.sshHost, HighScore: hs, Runs: runs}
	if err := pageTemplate.Execute(w, data); err != nil {
		ws.logger.Error("render page", "err", err)
	}
}

func (ws *webServer) handleScores(w http.ResponseWriter, r *http.Request) {
	hs, runs, err := ws.load(r.Context())
	if err != nil {
		ws.logger.Error("load scores", "err", err)
		http.Error(w, "scores unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := scoresResponse{HighScore: hs, Runs: make([]runEntry, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, runEntry{
			Outcome:    string(run.Outcome),
			Score:      run.Score,
			Progress:   run.Progress,
			FinishedAt: run.FinishedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		ws.logger.Error("encode scores", "err", err)
	}
}
