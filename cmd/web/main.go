package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tomz197/eggcatch/internal/config"
)

//go:embed index.html
var htmlPage string

func main() {
	var cfg config.Web
	if err := config.ParseEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel, "web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	page := renderPage(cfg.DisplayHost)
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("Starting web server", "addr", "http://"+addr, "sshHost", cfg.DisplayHost)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// renderPage fills the SSH host into the landing page.
func renderPage(sshHost string) string {
	return strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
}
