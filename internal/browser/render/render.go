// Package render drives a document through the whole pipeline: HTML and CSS
// parsing, the cascade, box tree construction, block layout, display list
// generation and rasterization.
//
// Every stage produces a fresh tree, so documents never share state and a
// Renderer can be used from many goroutines at once.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xkilldash9x/boxmodel/internal/browser/dom"
	"github.com/xkilldash9x/boxmodel/internal/browser/layout"
	"github.com/xkilldash9x/boxmodel/internal/browser/painting"
	"github.com/xkilldash9x/boxmodel/internal/browser/parser"
	"github.com/xkilldash9x/boxmodel/internal/browser/style"
	"github.com/xkilldash9x/boxmodel/internal/config"
	"go.uber.org/zap"
)

// Input is one document to render.
type Input struct {
	// Name labels the document in logs, errors and output file names.
	Name string
	HTML string
	CSS  string
	// Fragment parses HTML in a body context instead of as a full document.
	Fragment bool
}

// Result holds every intermediate tree of a render along with the pixels.
type Result struct {
	ID          string
	Name        string
	Document    *dom.Document
	Styled      *style.StyledNode
	Layout      *layout.LayoutBox
	DisplayList painting.DisplayList
	Canvas      *painting.Canvas
	Elapsed     time.Duration
}

// Renderer runs the pipeline with a fixed configuration.
type Renderer struct {
	cfg     config.RenderConfig
	logger  *zap.Logger
	css     *parser.Parser
	cascade *style.Engine
	layout  *layout.Engine
}

// NewRenderer builds a Renderer. A nil logger discards everything.
func NewRenderer(cfg config.RenderConfig, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
	return &Renderer{
		cfg:     cfg,
		logger:  logger.Named("render"),
		css:     parser.NewParser(logger),
		cascade: style.NewEngine(logger, style.WithInlineStyles(cfg.InlineStyles)),
		layout:  layout.NewEngine(logger),
	}
}

// Config returns the configuration the Renderer was built with.
func (r *Renderer) Config() config.RenderConfig {
	return r.cfg
}

// Render runs one document through every stage. The stages themselves never
// block, so ctx is only consulted between them.
func (r *Renderer) Render(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	res := &Result{ID: uuid.New().String(), Name: in.Name}
	logger := r.logger.With(zap.String("run_id", res.ID), zap.String("document", in.Name))
	logger.Debug("Rendering document.")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := r.parseHTML(in)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	res.Document = doc

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sheet, err := r.css.Parse(in.CSS)
	if err != nil {
		return nil, fmt.Errorf("parsing css: %w", err)
	}
	res.Styled = r.cascade.Resolve(doc.Root, sheet)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Layout, err = r.layout.BuildAndLayoutTree(res.Styled, float32(r.cfg.ViewportWidth))
	if err != nil {
		return nil, fmt.Errorf("building layout: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.DisplayList, err = painting.BuildDisplayList(res.Layout)
	if err != nil {
		return nil, fmt.Errorf("building display list: %w", err)
	}
	res.Canvas = painting.Rasterize(res.DisplayList, r.cfg.ViewportWidth, r.cfg.ViewportHeight)

	res.Elapsed = time.Since(start)
	logger.Info("Document rendered.",
		zap.Int("rules", len(sheet.Rules)),
		zap.Int("display_commands", len(res.DisplayList)),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

func (r *Renderer) parseHTML(in Input) (*dom.Document, error) {
	if in.Fragment {
		return dom.ParseFragmentString(in.HTML)
	}
	return dom.ParseHTMLString(in.HTML)
}

// Encode writes res in the configured output format.
func (r *Renderer) Encode(w io.Writer, res *Result) error {
	return painting.Encode(w, r.cfg.OutputFormat, res.Canvas, res.DisplayList, painting.EncodeOptions{JPEGQuality: r.cfg.JPEGQuality})
}

// OutputPath returns where WriteFile stores res.
func (r *Renderer) OutputPath(res *Result) string {
	name := res.Name
	if name == "" {
		name = res.ID
	}
	return r.outputPath(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
}

func (r *Renderer) outputPath(stem string) string {
	return filepath.Join(r.cfg.OutputDir, stem+painting.Extension(r.cfg.OutputFormat))
}

// OutputPaths returns a distinct destination for each result, aligned with
// results. When a path is already taken earlier in the slice, the run id is
// appended to the file name. Nil results get an empty path.
func (r *Renderer) OutputPaths(results []*Result) []string {
	paths := make([]string, len(results))
	taken := make(map[string]bool, len(results))
	for i, res := range results {
		if res == nil {
			continue
		}
		path := r.OutputPath(res)
		if taken[path] {
			stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			short := res.ID
			if len(short) > 8 {
				short = short[:8]
			}
			path = r.outputPath(stem + "-" + short)
			if taken[path] {
				path = r.outputPath(stem + "-" + res.ID)
			}
		}
		taken[path] = true
		paths[i] = path
	}
	return paths
}

// WriteFile encodes res into the output directory and returns the file path.
func (r *Renderer) WriteFile(res *Result) (string, error) {
	path := r.OutputPath(res)
	return path, r.writeFile(res, path)
}

// WriteAll writes every non-nil result to the path OutputPaths picks for it and
// returns those paths. It stops at the first failure.
func (r *Renderer) WriteAll(results []*Result) ([]string, error) {
	paths := r.OutputPaths(results)
	for i, res := range results {
		if res == nil {
			continue
		}
		if err := r.writeFile(res, paths[i]); err != nil {
			return nil, fmt.Errorf("writing %s: %w", res.Name, err)
		}
	}
	return paths, nil
}

func (r *Renderer) writeFile(res *Result, path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	if err := r.Encode(f, res); err != nil {
		return err
	}
	r.logger.Debug("Output written.", zap.String("run_id", res.ID), zap.String("path", path))
	return nil
}
