package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mlortz/sankey/pkg/dataset"
	"github.com/mlortz/sankey/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string // listen address
	configPath string // optional TOML configuration file
	delimiter  string // CSV field delimiter
	noHeader   bool   // treat the first CSV row as data
}

// newServeCmd creates the serve command for running a local preview
// server. The server re-reads the dataset on every request, so edits to
// the CSV file show up on refresh.
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr:      "localhost:8080",
		delimiter: ",",
	}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a live diagram preview over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVar(&opts.delimiter, "delimiter", opts.delimiter, "CSV field delimiter")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "treat the first CSV row as data")

	return cmd
}

// runServe starts the preview server and blocks until ctx is cancelled.
func runServe(ctx context.Context, input string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newPreviewHandler(logger, input, opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printInfo("Serving %s on http://%s", input, opts.addr)
	printDetail("endpoints: /, /diagram.svg, /diagram.png, /diagram.json")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// newPreviewHandler builds the chi router for the preview server.
// Every request gets an X-Request-ID and a structured log line.
func newPreviewHandler(logger *log.Logger, input string, opts *serveOpts) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID(logger))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, previewPage, input)
	})
	r.Get("/diagram.svg", servePreview(logger, input, opts, pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/diagram.png", servePreview(logger, input, opts, pipeline.FormatPNG, "image/png"))
	r.Get("/diagram.json", servePreview(logger, input, opts, pipeline.FormatJSON, "application/json"))

	return r
}

// requestID is a middleware that assigns each request an X-Request-ID
// (honoring one supplied by the client) and logs the request.
func requestID(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id := req.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)

			start := time.Now()
			next.ServeHTTP(w, req)

			logger.Info("request",
				"id", id,
				"method", req.Method,
				"path", req.URL.Path,
				"duration", time.Since(start).Round(time.Microsecond))
		})
	}
}

// servePreview runs the pipeline for one format and writes the artifact.
// Pipeline failures surface as 422 so a broken CSV edit shows its error
// in the browser instead of killing the server.
func servePreview(logger *log.Logger, input string, opts *serveOpts, format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		pipeOpts, err := previewPipelineOptions(input, opts, format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		runner := pipeline.NewRunner(logger)
		result, err := runner.Execute(req.Context(), pipeOpts)
		if err != nil {
			logger.Error("pipeline failed", "err", err)
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(result.Artifacts[format])
	}
}

// previewPipelineOptions assembles the pipeline options for one request.
func previewPipelineOptions(input string, opts *serveOpts, format string) (pipeline.Options, error) {
	pipeOpts := pipeline.Options{
		Input:   input,
		Formats: []string{format},
	}

	if opts.configPath != "" {
		cfg, err := dataset.LoadConfig(opts.configPath)
		if err != nil {
			return pipeline.Options{}, err
		}
		pipeOpts.Diagram = cfg.DiagramOptions()
		pipeOpts.Render = cfg.RenderOptions()
	}

	csvOpts := dataset.DefaultCSVOptions()
	if opts.delimiter != "" {
		csvOpts.Delimiter = rune(opts.delimiter[0])
	}
	if opts.noHeader {
		csvOpts.HasHeader = false
	}
	pipeOpts.CSV = csvOpts
	return pipeOpts, nil
}

// previewPage is the HTML shell served at /. The image tag points at
// the SVG endpoint, which re-renders on every load.
const previewPage = `<!DOCTYPE html>
<html>
<head><title>sankey preview</title></head>
<body style="margin:2rem;font-family:sans-serif">
<h3 style="font-weight:normal;color:#555">%s</h3>
<img src="/diagram.svg" alt="diagram" style="max-width:100%%">
</body>
</html>
`
