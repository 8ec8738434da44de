package cmd

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tomz197/meteortype/internal/config"
	"github.com/tomz197/meteortype/internal/store"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the landing page and the high score API",
	Long: `Serve a landing page that explains how to connect over SSH, plus
GET /api/highscore returning the best score and best running total as JSON.`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	rootCmd.AddCommand(webCmd)

	webCmd.Flags().String("host", "0.0.0.0", "address to listen on")
	webCmd.Flags().Int("port", 8080, "port to listen on")
	webCmd.Flags().String("ssh-host", "localhost", "host name shown in the SSH connect hint")

	viper.BindPFlag("web.host", webCmd.Flags().Lookup("host"))
	viper.BindPFlag("web.port", webCmd.Flags().Lookup("port"))
	viper.BindPFlag("web.ssh_display_host", webCmd.Flags().Lookup("ssh-host"))
}

// highScoreResponse is the body of GET /api/highscore.
type highScoreResponse struct {
	HighScore int `json:"highScore"`
	BestTotal int `json:"bestTotal"`
}

// pageData fills index.html.
type pageData struct {
	SSHHost string
	SSHPort int
}

func runWeb(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	addr := net.JoinHostPort(cfg.Web.Host, strconv.Itoa(cfg.Web.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           newWebHandler(cfg, st, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	logger.Info("starting web server", "url", "http://"+addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// newWebHandler routes the landing page and the API.
func newWebHandler(cfg config.Config, st *store.Store, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{SSHHost: cfg.Web.SSHDisplayHost, SSHPort: cfg.SSH.Port}
		if err := pageTemplate.Execute(w, data); err != nil {
			logger.Error("rendering page", "err", err)
		}
	})

	mux.HandleFunc("GET /api/highscore", func(w http.ResponseWriter, r *http.Request) {
		var resp highScoreResponse
		var err error
		if resp.HighScore, err = st.HighScore(r.Context()); err != nil {
			logger.Error("reading high score", "err", err)
			http.Error(w, "high score unavailable", http.StatusInternalServerError)
			return
		}
		if resp.BestTotal, err = st.BestTotal(r.Context()); err != nil {
			logger.Error("reading best total", "err", err)
			http.Error(w, "high score unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	return mux
}
