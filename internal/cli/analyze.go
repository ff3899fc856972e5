package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordsphere/pkg/analysis"
	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/pipeline"
	"github.com/matzehuels/wordsphere/pkg/render"
	"github.com/matzehuels/wordsphere/pkg/shell"
)

// analyzeOpts holds flags for the analyze command.
type analyzeOpts struct {
	api     string
	output  string
	formats string
	seed    uint64
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze URL",
		Short: "Analyze a news article and write its keyword cloud",
		Long: `Analyze sends URL to the analysis service, prints the top keywords and
writes the sphere layout as a JSON scene and/or an SVG snapshot.`,
		Example: `  wordsphere analyze https://www.bbc.com
  wordsphere analyze https://www.nytimes.com -f json,svg -o nyt --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.api, "api", "", "analysis service URL (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", appName, "output path without extension")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output formats: json, svg (comma-separated)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "layout seed (0 = random)")

	return cmd
}

func (c *CLI) runAnalyze(cmd *cobra.Command, url string, opts analyzeOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	cfg, err := c.config()
	if err != nil {
		return err
	}
	api := opts.api
	if api == "" {
		api = cfg.API.URL
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	client := analysis.NewClient(api, analysis.WithLogger(logger))

	m := shell.New(ctx, client, newBuilder(opts.seed))
	m, _ = m.Update(shell.SetURLMsg{URL: url})

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, shell.StatusLoading)
	spinner.Start()
	m = shell.Run(m, shell.SubmitMsg{})

	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	if m.Err() != "" {
		spinner.StopWithError(m.Err())
		return errors.New(errors.ErrCodeAnalysisFailed, "%s", m.Err())
	}
	spinner.StopWithSuccess(m.Status())
	prog.done("Analyzed article")

	labels := m.Labels()
	if overlay := renderOverlay(m.Words()); overlay != "" {
		fmt.Fprintln(stdout, overlay)
	}
	fmt.Fprintln(stdout, renderWords(labels, 80))

	for _, format := range formats {
		path := opts.output + "." + format
		data, err := renderFormat(format, labels, url)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printNextStep("Explore interactively", "wordsphere tui")
	return nil
}

// newBuilder returns a layout builder seeded with seed, or randomly when
// seed is zero.
func newBuilder(seed uint64) *cloud.Builder {
	if seed == 0 {
		return cloud.NewBuilder()
	}
	return cloud.NewBuilder(cloud.WithSampler(cloud.NewSampler(seed)))
}

func renderFormat(format string, labels []cloud.Label, title string) ([]byte, error) {
	switch format {
	case pipeline.FormatJSON:
		return render.JSON(labels)
	case pipeline.FormatSVG:
		return render.SVG(labels, render.WithTitle(title)), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}
