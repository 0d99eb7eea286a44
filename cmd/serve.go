package cmd

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jsphweid/byteserve/config"
	"github.com/jsphweid/byteserve/constants"
	"github.com/jsphweid/byteserve/file"
	"github.com/jsphweid/byteserve/model"
	"github.com/jsphweid/byteserve/sink"
	"github.com/jsphweid/byteserve/stream"
)

var serveFlags struct {
	addr       string
	dir        string
	configPath string
	chunkSize  int
	throttle   time.Duration
	inline     bool
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "listen address")
	serveCmd.Flags().StringVar(&serveFlags.dir, "dir", "", "directory to serve files from")
	serveCmd.Flags().StringVar(&serveFlags.configPath, "config", "", "path to a YAML config file")
	serveCmd.Flags().IntVar(&serveFlags.chunkSize, "chunk-size", 0, "bytes streamed per chunk")
	serveCmd.Flags().DurationVar(&serveFlags.throttle, "throttle", 0, "pause between streamed chunks")
	serveCmd.Flags().BoolVar(&serveFlags.inline, "inline", false, "serve files inline instead of as attachments")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve files over HTTP with byte-range support",
	Long:  `Serve files over HTTP with byte-range support`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadServeConfig()
		if err != nil {
			return err
		}
		log.Infof("serving %s on %s", cfg.MediaDir, cfg.Addr)
		return http.ListenAndServe(cfg.Addr, NewRouter(cfg))
	},
}

// loadServeConfig layers config sources: defaults, then file, then env,
// then flags.
func loadServeConfig() (config.Config, error) {
	cfg := config.Default()
	if serveFlags.configPath != "" {
		loaded, err := config.LoadFromFile(serveFlags.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}
	if serveFlags.addr != "" {
		cfg.Addr = serveFlags.addr
	}
	if serveFlags.dir != "" {
		cfg.MediaDir = serveFlags.dir
	}
	if serveFlags.chunkSize != 0 {
		cfg.ChunkSize = serveFlags.chunkSize
	}
	if serveFlags.throttle != 0 {
		cfg.Throttle = serveFlags.throttle
	}
	if serveFlags.inline {
		cfg.Disposition = model.DispositionInline
	}
	return cfg, cfg.Validate()
}

// NewRouter builds the HTTP surface: one file endpoint behind cors.
// Exported so end-to-end tests can drive it through httptest.
func NewRouter(cfg config.Config) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/files/{name}", HandleFile(cfg)).Methods("GET")
	return cors.Default().Handler(router)
}

// HandleFile serves a single file from the media dir, honoring the Range
// header.
func HandleFile(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.WithFields(log.Fields{
			"request_id": uuid.NewString(),
			"remote":     r.RemoteAddr,
		})

		name := mux.Vars(r)["name"]
		path, err := resolvePath(cfg.MediaDir, name)
		if err != nil {
			logger.Warnf("rejected %q: %v", name, err)
			http.NotFound(w, r)
			return
		}

		res := stream.Serve(stream.Request{
			Path:        path,
			RangeHeader: r.Header.Get(constants.HeaderRange),
			Disposition: cfg.Disposition,
		}, sink.NewHTTP(w, r), stream.Config{
			ChunkSize: cfg.ChunkSize,
			Throttle:  cfg.Throttle,
		})

		if res.Err != nil {
			if errors.Is(res.Err, file.ErrUnavailable) {
				// Nothing was written yet; a plain 404 is still possible.
				http.NotFound(w, r)
			}
			logger.Warnf("%s %s: %v", name, res.Outcome, res.Err)
			return
		}
		logger.Infof("%s %s (%d ranges)", name, res.Outcome, len(res.Ranges))
	}
}

// resolvePath keeps requests inside the media dir. Names are single path
// segments; anything pointing elsewhere is rejected.
func resolvePath(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return "", errors.Errorf("invalid file name %q", name)
	}
	return filepath.Join(dir, name), nil
}
