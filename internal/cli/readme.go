package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/repolens/pkg/pipeline"
)

func (c *CLI) readmeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "readme <url|dir>",
		Short: "Generate a README.md for a repository",
		Example: `  repolens readme https://github.com/charmbracelet/log
  repolens readme . -o README.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.execute(cmd.Context(), args[0], opts, []string{pipeline.FormatReadme})
			if err != nil {
				return err
			}
			return c.writeOutput(opts.output, result.Artifacts[pipeline.FormatReadme])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	opts.bindFetchFlags(cmd)

	return cmd
}
