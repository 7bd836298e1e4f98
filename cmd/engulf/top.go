package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"engulf/internal/errors"
	"engulf/internal/input"
	"engulf/internal/output"
)

var (
	topLimit       int
	topFromFolded  bool
	topFormat      string
	topGroupBy     []string
	topMaxDepth    int
	topInputFormat string
)

var topCmd = &cobra.Command{
	Use:   "top [input]",
	Short: "Show the heaviest paths of a JSON document",
	Long: `Fold a document and print its heaviest paths with their share of the total.

With --from-folded the input is read as folded stacks (as written by
'engulf fold') instead of a JSON document; duplicate paths are summed.

Examples:
  engulf top response.json
  engulf top -n 5 --group-by kind manifests.yaml
  engulf top --from-folded stacks.folded`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTop,
}

func init() {
	topCmd.Flags().IntVarP(&topLimit, "limit", "n", 0, "Number of paths to show, 0 for all (default: from config, else 20)")
	topCmd.Flags().BoolVar(&topFromFolded, "from-folded", false, "Read folded stacks instead of a JSON document")
	topCmd.Flags().StringVar(&topFormat, "format", "human", "Output format (json, human)")
	topCmd.Flags().StringSliceVarP(&topGroupBy, "group-by", "g", nil,
		"Keys used to label array elements, in order of precedence")
	topCmd.Flags().IntVar(&topMaxDepth, "max-depth", 0, "Maximum nesting depth, 0 for unbounded")
	topCmd.Flags().StringVar(&topInputFormat, "input-format", "", "Input syntax: auto, cbor, json, jsonc, toml or yaml")
	rootCmd.AddCommand(topCmd)
}

// TopResponseCLI is the result of 'engulf top'.
type TopResponseCLI struct {
	Summary output.Summary `json:"summary"`
	Rows    []output.Row   `json:"rows"`

	width int
}

func runTop(cmd *cobra.Command, args []string) error {
	opts := foldOptions{
		GroupBy:     pick(cmd, "group-by", topGroupBy, cfg.GroupBy),
		MaxDepth:    pick(cmd, "max-depth", topMaxDepth, cfg.MaxDepth),
		InputFormat: pick(cmd, "input-format", topInputFormat, cfg.InputFormat),
	}
	if len(args) > 0 {
		opts.Input = args[0]
	}
	limit := pick(cmd, "limit", topLimit, cfg.Top)

	entries, err := topEntries(opts, topFromFolded)
	if err != nil {
		return err
	}

	resp := buildTopResponse(entries, limit)
	resp.width = terminalWidth()

	out, err := FormatResponse(resp, OutputFormat(topFormat))
	if err != nil {
		return errors.Wrap(errors.UnsupportedFormat, "cannot format output", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// topEntries returns the entries of opts.Input, folding it unless
// fromFolded is set.
func topEntries(opts foldOptions, fromFolded bool) ([]output.Entry, error) {
	if !fromFolded {
		res, err := loadAndFold(opts, logger)
		if err != nil {
			return nil, err
		}
		return res.Entries, nil
	}

	f, err := input.Open(opts.Input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r, _, err := input.Decompress(f)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	entries, err := output.ParseFolded(r)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput, fmt.Sprintf("%s: not folded stacks", inputName(opts.Input)), err)
	}
	logger.Debug("Read folded stacks", "input", inputName(opts.Input), "lines", len(entries))
	return output.MergeEntries(entries), nil
}

func buildTopResponse(entries []output.Entry, limit int) *TopResponseCLI {
	return &TopResponseCLI{
		Summary: output.Summarize(entries),
		Rows:    output.Top(entries, limit),
	}
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
