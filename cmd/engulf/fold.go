package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"engulf/internal/config"
	"engulf/internal/errors"
	"engulf/internal/fold"
	"engulf/internal/input"
	"engulf/internal/output"
)

var (
	foldOutput      string
	foldGroupBy     []string
	foldMaxDepth    int
	foldInputFormat string
	foldFormat      string
)

var foldCmd = &cobra.Command{
	Use:   "fold [input]",
	Short: "Fold a JSON document into weighted stacks",
	Long: `Fold a JSON document into folded stacks, one line per leaf path with the
serialized size of everything under it.

The input may be gzip, zstd or lz4 compressed, and JSON, JSONC, YAML, TOML or
CBOR. Without an input argument the document is read from stdin.

Examples:
  engulf fold response.json > stacks.folded
  engulf fold --group-by type,name events.json.gz
  kubectl get pods -o json | engulf fold -o pods.folded
  engulf fold --format json config.yaml
  engulf fold -o stacks.folded.zst dump.cbor`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFold,
}

func init() {
	foldCmd.Flags().StringVarP(&foldOutput, "output", "o", "", "Write stacks to this file instead of stdout (.gz, .zst and .lz4 are compressed)")
	foldCmd.Flags().StringSliceVarP(&foldGroupBy, "group-by", "g", nil,
		"Keys used to label array elements, in order of precedence")
	foldCmd.Flags().IntVar(&foldMaxDepth, "max-depth", 0, "Maximum nesting depth, 0 for unbounded")
	foldCmd.Flags().StringVar(&foldInputFormat, "input-format", "", "Input syntax: auto, cbor, json, jsonc, toml or yaml")
	foldCmd.Flags().StringVar(&foldFormat, "format", "", "Output format: folded or json")
	rootCmd.AddCommand(foldCmd)
}

// foldOptions is the effective configuration of a single fold.
type foldOptions struct {
	Input       string
	Output      string
	GroupBy     []string
	MaxDepth    int
	InputFormat string
	Format      string
}

// resolveFoldOptions merges fold flags over the loaded configuration.
// Precedence: CLI flag > ENGULF_* env var > config file > defaults
func resolveFoldOptions(cmd *cobra.Command, args []string, c *config.Config) foldOptions {
	opts := foldOptions{
		Output:      foldOutput,
		GroupBy:     pick(cmd, "group-by", foldGroupBy, c.GroupBy),
		MaxDepth:    pick(cmd, "max-depth", foldMaxDepth, c.MaxDepth),
		InputFormat: pick(cmd, "input-format", foldInputFormat, c.InputFormat),
		Format:      pick(cmd, "format", foldFormat, c.OutputFormat),
	}
	if len(args) > 0 {
		opts.Input = args[0]
	}
	return opts
}

func runFold(cmd *cobra.Command, args []string) error {
	opts := resolveFoldOptions(cmd, args, cfg)

	if opts.Output == "" || opts.Output == "-" {
		_, err := foldDocument(cmd.OutOrStdout(), opts, logger)
		return err
	}

	f, err := output.NewFileWriter(opts.Output)
	if err != nil {
		return errors.Wrap(errors.IOError, "cannot create output", err)
	}
	if _, err := foldDocument(f, opts, logger); err != nil {
		_ = f.Close()
		_ = os.Remove(opts.Output)
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.IOError, "cannot write output", err)
	}
	return nil
}

// foldDocument loads opts.Input, folds it and writes the entries to w in
// opts.Format.
func foldDocument(w io.Writer, opts foldOptions, l *slog.Logger) (*fold.Result, error) {
	start := time.Now()

	switch opts.Format {
	case "", "folded", "json":
	default:
		return nil, errors.Wrap(errors.UnsupportedFormat,
			fmt.Sprintf("unknown output format %q (want folded or json)", opts.Format), nil)
	}

	res, err := loadAndFold(opts, l)
	if err != nil {
		return nil, err
	}

	if opts.Format == "json" {
		err = output.WriteJSON(w, res.Entries, "  ")
	} else {
		err = output.WriteFolded(w, res.Entries)
	}
	if err != nil {
		return nil, errors.Wrap(errors.IOError, "cannot write output", err)
	}

	l.Info("Folded document",
		"input", inputName(opts.Input),
		"paths", len(res.Entries),
		"leaves", res.Stats.Leaves,
		"weight", humanize.IBytes(uint64(res.Stats.TotalWeight)),
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return res, nil
}

// DepthDetails is attached to DEPTH_EXCEEDED errors.
type DepthDetails struct {
	Input    string `json:"input"`
	MaxDepth int    `json:"maxDepth"`
}

// loadAndFold reads and folds the document named by opts.Input.
func loadAndFold(opts foldOptions, l *slog.Logger) (*fold.Result, error) {
	if opts.MaxDepth < 0 {
		return nil, errors.NewEngulfError(errors.InvalidInput,
			fmt.Sprintf("--max-depth must be >= 0, got %d", opts.MaxDepth), nil,
			errors.GetSuggestedFixes(errors.DepthExceeded))
	}

	format, err := input.ParseFormat(opts.InputFormat)
	if err != nil {
		return nil, err
	}

	root, err := input.Load(opts.Input, format)
	if err != nil {
		return nil, err
	}

	engine := fold.NewEngine(fold.Options{
		GroupKeys: opts.GroupBy,
		MaxDepth:  opts.MaxDepth,
	}, l)

	res, err := engine.Fold(root)
	if err != nil {
		if stderrors.Is(err, fold.ErrDepthExceeded) {
			return nil, errors.Wrap(errors.DepthExceeded, "document nests too deeply", err).
				WithDetails(DepthDetails{Input: inputName(opts.Input), MaxDepth: opts.MaxDepth})
		}
		return nil, errors.Wrap(errors.InternalError, "fold failed", err)
	}
	return res, nil
}

func inputName(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	return path
}
