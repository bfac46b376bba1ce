package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/attacq/internal/minigame"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve mini-game fragments over HTTP",
	Long: `Serve mini-game fragments over HTTP so another install can load them
with minigames.fragments_url (or ATTACQ_FRAGMENTS_URL).

Fragments are served from --dir when given, otherwise from the set built
into the binary. The directory must contain a games/ folder.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		dir, _ := cmd.Flags().GetString("dir")

		// serve owns no TUI, so its logs go straight to stderr.
		log := zap.NewNop()
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			log = l.Named("serve")
		}

		fsys := minigame.Fragments()
		if dir != "" {
			fsys = os.DirFS(dir)
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           newFragmentRouter(fsys, log),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "Serving fragments on http://%s (Ctrl+C to stop)\n", addr)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("serve: %w", err)
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// newFragmentRouter serves GET /games/{file} from fsys and a health check.
func newFragmentRouter(fsys fs.FS, log *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/games/{file}", func(w http.ResponseWriter, req *http.Request) {
		name := "games/" + mux.Vars(req)["file"]
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			log.Debug("fragment not found", zap.String("file", name))
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(raw)
		log.Debug("served fragment", zap.String("file", name), zap.String("v", req.URL.Query().Get("v")))
	}).Methods(http.MethodGet)

	return r
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8787", "Listen address")
	serveCmd.Flags().String("dir", "", "Directory holding a games/ folder of fragments")
}
