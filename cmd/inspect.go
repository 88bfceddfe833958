// File: cmd/inspect.go
package cmd

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/xkilldash9x/boxmodel/internal/browser/layout"
	"github.com/xkilldash9x/boxmodel/internal/browser/render"
	"github.com/xkilldash9x/boxmodel/internal/observability"
	"go.uber.org/zap"
)

func newInspectCmd() *cobra.Command {
	var (
		docs     documentFlags
		selector string
	)

	inspectCmd := &cobra.Command{
		Use:   "inspect --html page.html --select <xpath|css>",
		Short: "Print the laid-out geometry of matching elements as JSON",
		Long: `Inspect renders a single document and prints the content, padding,
border and margin boxes of every element matched by --select. Expressions
starting with "/" or "(" are XPath; anything else is a CSS selector.
Matched elements without a box (display: none) are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			if len(docs.htmlFiles) != 1 {
				return fmt.Errorf("inspect takes exactly one --html document, got %d", len(docs.htmlFiles))
			}

			inputs, err := docs.inputs()
			if err != nil {
				return err
			}
			res, err := render.NewRenderer(cfg.Render(), logger).Render(ctx, inputs[0])
			if err != nil {
				return err
			}

			nodes, err := res.Document.Query(selector)
			if err != nil {
				return fmt.Errorf("invalid selector %q: %w", selector, err)
			}

			geometries := make([]*layout.ElementGeometry, 0, len(nodes))
			for _, n := range nodes {
				g, err := layout.GetElementGeometry(res.Layout, n)
				if err != nil {
					logger.Debug("Skipping element without a box", zap.String("xpath", res.Document.XPath(n)), zap.Error(err))
					continue
				}
				g.XPath = res.Document.XPath(n)
				geometries = append(geometries, g)
			}

			out, err := json.MarshalIndent(geometries, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding geometry: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	docs.register(inspectCmd)
	inspectCmd.Flags().StringVarP(&selector, "select", "s", "", "XPath or CSS selector of the elements to report")
	inspectCmd.Flags().Int("width", 0, "viewport width in pixels")
	inspectCmd.Flags().Bool("inline-style", true, "apply style attributes after stylesheet rules")
	_ = inspectCmd.MarkFlagRequired("select")
	return inspectCmd
}
