package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/pipeline"
)

// analyzeOpts holds the flags shared by analyze and readme.
type analyzeOpts struct {
	format    string
	output    string
	graph     string
	recursive bool
	refresh   bool
	noCache   bool
	detailed  bool
	maxFiles  int
	scale     float64
}

func (o *analyzeOpts) bindFetchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.recursive, "recursive", "r", false, "list the whole tree instead of the top level")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cached snapshots and analyses")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&o.maxFiles, "max-files", 0, "cap on manifest contents to load (0 = default)")
}

func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze <url|dir>",
		Short: "Analyze a repository's language, package manager and dependencies",
		Long: `Analyze a GitHub or GitLab repository, or a local directory.

The report goes to stdout unless --output is given. --graph additionally
writes the dependency graph; its format follows the file extension
(.dot, .svg, .png or .pdf).`,
		Example: `  repolens analyze https://github.com/charmbracelet/log
  repolens analyze . --format text
  repolens analyze gitlab.com/gitlab-org/cli -o report.json --graph deps.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatJSON, "report format: json, text, readme, dot, svg, png, pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.graph, "graph", "g", "", "also write the dependency graph to this file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show versions in graph labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "PNG scale factor")
	opts.bindFetchFlags(cmd)

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, arg string, opts analyzeOpts) error {
	formats := []string{opts.format}
	graphFmt := ""
	if opts.graph != "" {
		f, err := graphFormat(opts.graph)
		if err != nil {
			return err
		}
		graphFmt = f
		if f != opts.format {
			formats = append(formats, f)
		}
	}

	result, err := c.execute(ctx, arg, opts, formats)
	if err != nil {
		return err
	}

	if err := c.writeOutput(opts.output, result.Artifacts[opts.format]); err != nil {
		return err
	}
	if graphFmt != "" {
		if err := c.writeOutput(opts.graph, result.Artifacts[graphFmt]); err != nil {
			return err
		}
	}
	return nil
}

// execute runs the pipeline with a spinner and reports the outcome.
func (c *CLI) execute(ctx context.Context, arg string, opts analyzeOpts, formats []string) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)

	popts := target(arg)
	popts.Recursive = opts.recursive
	popts.Refresh = opts.refresh
	popts.MaxContents = opts.maxFiles
	popts.Formats = formats
	popts.Detailed = opts.detailed
	popts.Scale = opts.scale
	popts.Logger = logger

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Analyzing "+arg+"...")
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return nil, err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Analyzed %s (%s)", result.Repo.Name, result.Analysis.Language))
	printStats(result.Stats, result.CacheInfo.AnalysisHit)
	prog.done("Pipeline finished")

	return result, nil
}

// graphFormat maps a graph output path to its render format.
func graphFormat(path string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF:
		return ext, nil
	case "gv":
		return pipeline.FormatDOT, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "cannot infer graph format from %q (use .dot, .svg, .png or .pdf)", path)
	}
}
