// File: cmd/render.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/xkilldash9x/boxmodel/internal/browser/render"
	"github.com/xkilldash9x/boxmodel/internal/observability"
	"go.uber.org/zap"
)

// documentFlags are the inputs shared by render and inspect.
type documentFlags struct {
	htmlFiles []string
	cssFile   string
	fragment  bool
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.htmlFiles, "html", nil, "HTML file to render (repeatable)")
	cmd.Flags().StringVar(&f.cssFile, "css", "", "stylesheet applied to every document")
	cmd.Flags().BoolVar(&f.fragment, "fragment", false, "parse HTML as a body fragment instead of a full document")
	_ = cmd.MarkFlagRequired("html")
}

// inputs reads the files named by the flags.
func (f *documentFlags) inputs() ([]render.Input, error) {
	var css string
	if f.cssFile != "" {
		data, err := readFile(f.cssFile)
		if err != nil {
			return nil, fmt.Errorf("reading stylesheet: %w", err)
		}
		css = data
	}

	inputs := make([]render.Input, 0, len(f.htmlFiles))
	for _, path := range f.htmlFiles {
		data, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
		inputs = append(inputs, render.Input{Name: path, HTML: data, CSS: css, Fragment: f.fragment})
	}
	return inputs, nil
}

func readFile(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Clean(expanded))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newRenderCmd() *cobra.Command {
	var docs documentFlags

	renderCmd := &cobra.Command{
		Use:   "render --html page.html [--html other.html] [--css style.css]",
		Short: "Render documents to PNG, JPEG, SVG or a JSON display list",
		Long: `Render parses each HTML document, applies the stylesheet, lays the
boxes out in a viewport and writes one output file per document into the
output directory. Several documents render concurrently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}

			inputs, err := docs.inputs()
			if err != nil {
				return err
			}

			renderer := render.NewRenderer(cfg.Render(), logger)
			results, renderErr := renderer.RenderBatch(ctx, inputs)

			paths, err := renderer.WriteAll(results)
			if err != nil {
				return err
			}
			written := 0
			for _, path := range paths {
				if path == "" {
					continue
				}
				written++
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			logger.Info("Render complete",
				zap.Int("documents", len(inputs)),
				zap.Int("written", written),
				zap.String("format", cfg.Render().OutputFormat))
			if renderErr != nil {
				return fmt.Errorf("%d of %d documents failed: %w", len(inputs)-written, len(inputs), renderErr)
			}
			return nil
		},
	}

	docs.register(renderCmd)
	renderCmd.Flags().StringP("out", "o", "", "output directory (overrides render.output_dir)")
	renderCmd.Flags().StringP("format", "f", "", "output format: png, jpeg, svg or json")
	renderCmd.Flags().Int("width", 0, "viewport width in pixels")
	renderCmd.Flags().Int("height", 0, "viewport height in pixels")
	renderCmd.Flags().Int("concurrency", 0, "documents rendered at once")
	renderCmd.Flags().Int("quality", 0, "JPEG quality (1-100)")
	renderCmd.Flags().Bool("inline-style", true, "apply style attributes after stylesheet rules")
	return renderCmd
}
