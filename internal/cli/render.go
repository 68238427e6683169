package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blueprintmrk/graphy/pkg/pipeline"
	"github.com/blueprintmrk/graphy/pkg/render/googlechart"
)

// renderOpts holds the command-line flags for the render command.
// These options control backend selection, output dimensions, and caching.
type renderOpts struct {
	output   string // output file path ("" prints text artifacts to stdout)
	backend  string // render backend: "googlechart", "googlechart-image", "gochart"
	width    int    // chart width in pixels
	height   int    // chart height in pixels
	encoding string // googlechart data encoding: "simple" or "extended"
	form     string // googlechart artifact form: "url" or "img"
	noCache  bool   // disable the artifact cache
	refresh  bool   // bypass the cache and re-render
}

// renderCommand creates the render command for generating chart artifacts.
// It decodes a TOML or JSON definition file and renders it through the
// selected backend. Without a file argument it opens an interactive picker
// over the definition files in the current directory.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart definition to an artifact",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveInput(args)
			if err != nil {
				return err
			}
			return c.runRender(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (text artifacts print to stdout when unset)")
	cmd.Flags().StringVarP(&opts.backend, "backend", "b", pipeline.DefaultBackend, "render backend: googlechart (default), googlechart-image, gochart")
	cmd.Flags().IntVar(&opts.width, "width", 0, "chart width in pixels (default 800)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "chart height in pixels (default 600)")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "googlechart data encoding: simple (default), extended")
	cmd.Flags().StringVar(&opts.form, "form", "", "googlechart artifact form: url (default), img")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and re-render")

	return cmd
}

// urlCommand creates the url command, a shortcut for rendering a definition
// to a Google Chart URL and printing it.
func (c *CLI) urlCommand() *cobra.Command {
	opts := renderOpts{backend: pipeline.BackendGoogleChart, noCache: true}

	cmd := &cobra.Command{
		Use:   "url [file]",
		Short: "Print the Google Chart URL for a definition",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveInput(args)
			if err != nil {
				return err
			}
			return c.runRender(cmd, input, &opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "chart width in pixels (default 800)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "chart height in pixels (default 600)")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "data encoding: simple (default), extended")

	return cmd
}

// resolveInput returns the definition file to render: the positional
// argument when given, otherwise an interactive pick over the current
// directory's definition files.
func resolveInput(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return pickDefinition(".")
}

// runRender executes the pipeline on a definition file and writes the
// resulting artifact.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)

	// Network-bound backends get a spinner; URL assembly is instant.
	var spin *Spinner
	if opts.backend == pipeline.BackendGoogleChartImage {
		spin = newSpinnerWithContext(cmd.Context(), "Fetching chart image...")
		spin.Start()
	}

	result, err := runner.ExecuteFile(cmd.Context(), input, pipeline.Options{
		Backend:  opts.backend,
		Width:    opts.width,
		Height:   opts.height,
		Encoding: opts.encoding,
		Output:   opts.form,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	if spin != nil {
		if err != nil {
			spin.StopWithError("Render failed")
		} else {
			spin.Stop()
		}
	}
	if err != nil {
		return err
	}
	prog.done("Rendered chart")

	return writeArtifact(input, result, opts)
}

// writeArtifact writes or prints the rendered artifact depending on its
// content type and the --output flag.
func writeArtifact(input string, result *pipeline.Result, opts *renderOpts) error {
	artifact := result.Artifact

	// Text artifacts print to stdout unless an output file was requested.
	if opts.output == "" && isTextArtifact(artifact.ContentType) {
		fmt.Println(artifact.String())
		printStats(result.Stats.SeriesCount, result.CacheInfo.RenderHit)
		return nil
	}

	path := opts.output
	if path == "" {
		path = outputPath(input, artifact.ContentType)
	}
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	printSuccess("Rendered %s", filepath.Base(input))
	printFile(path)
	printStats(result.Stats.SeriesCount, result.CacheInfo.RenderHit)
	return nil
}

// isTextArtifact reports whether a content type prints cleanly to a terminal.
func isTextArtifact(contentType string) bool {
	return contentType == googlechart.ContentTypeURL ||
		contentType == googlechart.ContentTypeImg ||
		strings.HasPrefix(contentType, "text/")
}

// outputPath derives an artifact file name from the input file and the
// artifact's content type.
func outputPath(input, contentType string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	switch contentType {
	case "image/png":
		return base + ".png"
	case googlechart.ContentTypeImg:
		return base + ".html"
	default:
		return base + ".txt"
	}
}
