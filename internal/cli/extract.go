package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/repolens/pkg/analyzer"
	"github.com/matzehuels/repolens/pkg/deps/languages"
	"github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/source"
)

// maxLocalManifests bounds how many manifests extract reads from a directory.
const maxLocalManifests = 1000

type extractOpts struct {
	pick    bool
	json    bool
	recurse bool
}

func (c *CLI) extractCommand() *cobra.Command {
	var opts extractOpts

	cmd := &cobra.Command{
		Use:   "extract <file|dir>",
		Short: "Extract dependency records from manifest files",
		Long: `Extract dependency records from a single manifest file, or from every
manifest found in a directory. The file name selects the format, so
package.json, go.mod, Cargo.toml and friends must keep their names.`,
		Example: `  repolens extract package.json
  repolens extract . --pick
  repolens extract ./services -r --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExtract(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.pick, "pick", "p", false, "choose a manifest interactively")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of tables")
	cmd.Flags().BoolVarP(&opts.recurse, "recursive", "r", false, "search subdirectories for manifests")

	return cmd
}

func (c *CLI) runExtract(ctx context.Context, arg string, opts extractOpts) error {
	a := analyzer.New(analyzer.Options{
		Concurrency: c.Config.Concurrency,
		Logger:      loggerFromContext(ctx),
	})

	info, err := os.Stat(arg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "open %s", arg)
	}

	var files []source.File
	if info.IsDir() {
		files, err = manifestsIn(ctx, a, arg, opts.recurse)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			printInfo("No manifest files found in %s", arg)
			return nil
		}
		if opts.pick {
			picked, err := pickManifest(files)
			if err != nil || picked == nil {
				return err
			}
			files = []source.File{*picked}
		}
	} else {
		f, err := manifestFile(arg, info.Size())
		if err != nil {
			return err
		}
		files = []source.File{f}
	}

	res, err := a.Analyze(ctx, files)
	if err != nil {
		return err
	}
	if !info.IsDir() && res.Dependencies[0].Error != "" {
		return errors.New(errors.ErrCodeParse, "%s", res.Dependencies[0].Error)
	}

	if opts.json {
		data, err := json.MarshalIndent(res.Dependencies, "", "  ")
		if err != nil {
			return err
		}
		return c.writeOutput("", append(data, '\n'))
	}
	return c.printDependencyFiles(res.Dependencies)
}

// manifestFile reads a single manifest from disk.
func manifestFile(path string, size int64) (source.File, error) {
	name := filepath.Base(path)
	if err := errors.ValidateManifestFilename(name); err != nil {
		return source.File{}, err
	}
	if _, ok := languages.Default.PackageManager(name); !ok {
		return source.File{}, errors.New(errors.ErrCodeInvalidManifest, "unsupported manifest: %s", name)
	}
	if size > errors.MaxManifestSize {
		return source.File{}, errors.New(errors.ErrCodeInvalidManifest, "%s exceeds %d bytes", name, errors.MaxManifestSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return source.File{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	content := string(data)
	if err := errors.ValidateManifestContent(content); err != nil {
		return source.File{}, err
	}
	return source.File{Name: name, Path: name, Type: source.TypeFile, Size: size, Content: &content}, nil
}

// manifestsIn lists the dependency files under dir with their contents.
func manifestsIn(ctx context.Context, a *analyzer.Analyzer, dir string, recursive bool) ([]source.File, error) {
	repo, err := source.Local(ctx, dir, source.Options{
		Recursive:   recursive,
		Wanted:      a.Wants,
		MaxContents: maxLocalManifests,
	})
	if err != nil {
		return nil, err
	}
	var out []source.File
	for _, f := range repo.Files {
		if _, ok := languages.Default.Lookup(f.Path); ok && f.IsFile() {
			out = append(out, f)
		}
	}
	return out, nil
}

func pickManifest(files []source.File) (*source.File, error) {
	final, err := tea.NewProgram(NewManifestListModel(files), tea.WithOutput(uiOut)).Run()
	if err != nil {
		return nil, fmt.Errorf("manifest picker: %w", err)
	}
	return final.(ManifestListModel).Selected, nil
}

func (c *CLI) printDependencyFiles(files []analyzer.DependencyFile) error {
	var b strings.Builder
	for i, f := range files {
		if i > 0 {
			b.WriteString("\n")
		}
		pm, _ := languages.Default.PackageManager(f.File)
		b.WriteString(StyleTitle.Render(f.Path) + " " + StyleDim.Render("("+pm+")") + "\n")
		switch {
		case f.Error != "":
			b.WriteString(StyleWarning.Render("  unparsable: "+f.Error) + "\n")
		case len(f.Packages) == 0:
			b.WriteString(StyleDim.Render("  no dependencies") + "\n")
		default:
			b.WriteString(dependencyTable(f) + "\n")
		}
	}
	return c.writeOutput("", []byte(b.String()))
}
