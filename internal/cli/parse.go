package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgrid/pkg/errors"
	"github.com/matzehuels/flowgrid/pkg/flowchart"
	"github.com/matzehuels/flowgrid/pkg/layout"
	"github.com/matzehuels/flowgrid/pkg/pipeline"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	format  string // output format: json or dot
	pinned  bool   // add computed positions to DOT output
	output  string // output file, or directory for several inputs
	config  string // TOML layout configuration
	refresh bool   // bypass the layout cache
	jobs    int    // parallel documents for batch runs
	cache   cacheFlags
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	opts := parseOpts{format: pipeline.DefaultFormat}

	cmd := &cobra.Command{
		Use:   "parse [file|-]...",
		Short: "Parse and lay out flowchart documents",
		Long: `Parse flowchart documents, compute the grid layout and write the laid-out
record as JSON or Graphviz DOT.

With no file or "-", the document is read from standard input. Several
files are processed in parallel and require -o to name a directory.

Examples:
  flowgrid parse flow.mmd                       # JSON record to stdout
  flowgrid parse flow.mmd -o flow.json          # JSON record to a file
  flowgrid parse --format dot --pinned flow.mmd # DOT with fixed positions
  flowgrid parse -o out/ docs/*.mmd             # batch into a directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{pipeline.StdinName}
			}
			return c.runParse(cmd, &opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json, dot")
	cmd.Flags().BoolVar(&opts.pinned, "pinned", false, "pin DOT nodes to their computed positions")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty), or directory for several inputs")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML file with layout settings")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute the layout even if cached")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "documents processed in parallel (0 = number of CPUs)")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, opts *parseOpts, args []string) error {
	if err := pipeline.ValidateFormat(opts.format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse")
	}
	cfg, err := loadLayoutConfig(opts.config)
	if err != nil {
		return err
	}

	docs := make([]pipeline.Options, 0, len(args))
	for _, arg := range args {
		src, err := readSource(arg, cmd.InOrStdin())
		if err != nil {
			return err
		}
		docs = append(docs, pipeline.Options{
			Name:    arg,
			Source:  src,
			Format:  opts.format,
			Pinned:  opts.pinned,
			Layout:  cfg,
			Refresh: opts.refresh,
		})
	}

	ctx := withLogger(cmd.Context(), c.Logger)
	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if len(docs) == 1 {
		result, err := runner.Execute(ctx, docs[0])
		if err != nil {
			return err
		}
		if err := writeResult(cmd.OutOrStdout(), opts.output, result.Output); err != nil {
			return err
		}
		printResult(result, opts.output)
		return nil
	}

	if opts.output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "several documents need -o <directory>")
	}
	if err := os.MkdirAll(opts.output, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	prog := newProgress(c.Logger)
	spin := newSpinner(ctx, fmt.Sprintf("Laying out %d documents...", len(docs)))
	spin.Start()
	results, err := runner.RunBatch(ctx, docs, opts.jobs)
	if err != nil {
		spin.Stop()
		return err
	}
	spin.StopWithSuccess("Laid out %d documents", len(results))

	failed := 0
	for _, br := range results {
		if br.Err != nil {
			failed++
			printError("%s: %v", br.Name, br.Err)
			continue
		}
		path := filepath.Join(opts.output, outputName(br.Name, opts.format))
		if err := writeResult(cmd.OutOrStdout(), path, br.Result.Output); err != nil {
			return err
		}
		printResult(br.Result, path)
	}
	prog.done(fmt.Sprintf("Processed %d documents", len(results)))

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

// layersCommand creates the layers command.
func (c *CLI) layersCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "layers [file|-]",
		Short: "Print the breadth-first layers of a flowchart",
		Long: `Print the layers the layout engine assigns, one line per layer with node
IDs in their within-layer order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := pipeline.StdinName
			if len(args) == 1 {
				name = args[0]
			}
			src, err := readSource(name, cmd.InOrStdin())
			if err != nil {
				return err
			}

			g := flowchart.Parse(src)
			layers := layout.Layers(g)
			c.Logger.Debug("computed layers", "name", name, "nodes", g.NodeCount(), "layers", len(layers))

			out := cmd.OutOrStdout()
			if asJSON {
				if layers == nil {
					layers = [][]string{}
				}
				enc := json.NewEncoder(out)
				return enc.Encode(layers)
			}
			for i, layer := range layers {
				fmt.Fprintf(out, "%d\t%s\n", i, strings.Join(layer, " "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print layers as a JSON array")
	return cmd
}

// =============================================================================
// Helpers
// =============================================================================

// readSource reads a document from a file, or from stdin for "-".
func readSource(name string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == pipeline.StdinName {
		data, err = io.ReadAll(io.LimitReader(stdin, errors.MaxSourceBytes+1))
	} else {
		if err := errors.ValidatePath(name); err != nil {
			return "", err
		}
		data, err = os.ReadFile(name)
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", name)
		}
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}

	src := string(data)
	if err := errors.ValidateSource(src, errors.MaxSourceBytes); err != nil {
		return "", err
	}
	return src, nil
}

// loadLayoutConfig reads a TOML layout configuration, or returns the
// defaults when path is empty.
func loadLayoutConfig(path string) (layout.Config, error) {
	if path == "" {
		return layout.DefaultConfig(), nil
	}
	cfg, err := layout.LoadConfig(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout config %s", path)
	}
	return cfg, nil
}

// writeResult writes data to path, or to stdout when path is empty.
func writeResult(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// outputName derives the batch output file name from an input path.
func outputName(input, format string) string {
	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

func printResult(r *pipeline.Result, path string) {
	if path == "" {
		printSuccess("Laid out %s", r.Name)
	} else {
		printSuccess("Wrote %s", r.Format)
		printFile(path)
	}
	printStats(r.Stats, r.CacheInfo.LayoutHit)
}
