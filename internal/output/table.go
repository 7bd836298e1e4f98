package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

const (
	weightColumn = 10
	shareColumn  = 8
	ellipsis     = "…"
)

// WriteTable writes rows as an aligned WEIGHT / SHARE / PATH table followed
// by a totals line. Paths wider than the remaining terminal width keep their
// rightmost segments; width <= 0 disables truncation.
func WriteTable(w io.Writer, rows []Row, summary Summary, width int) error {
	bw := bufio.NewWriter(w)

	pathWidth := 0
	if width > 0 {
		pathWidth = width - weightColumn - shareColumn
		if pathWidth < 8 {
			pathWidth = 8
		}
	}

	fmt.Fprintf(bw, "%s%s%s\n",
		runewidth.FillRight("WEIGHT", weightColumn),
		runewidth.FillRight("SHARE", shareColumn),
		"PATH")

	for _, r := range rows {
		path := r.Path
		if path == "" {
			path = "(root)"
		}
		fmt.Fprintf(bw, "%s%s%s\n",
			runewidth.FillRight(humanize.IBytes(uint64(r.Weight)), weightColumn),
			runewidth.FillRight(FormatPercent(r.Share), shareColumn),
			TruncateLeft(path, pathWidth))
	}

	fmt.Fprintf(bw, "\ntotal %s (%s bytes) in %s paths\n",
		humanize.IBytes(uint64(summary.TotalWeight)),
		humanize.Comma(summary.TotalWeight),
		humanize.Comma(int64(summary.Paths)))

	return bw.Flush()
}

// TruncateLeft shortens s to at most width display cells by dropping runes
// from the front and prefixing an ellipsis. width <= 0 returns s unchanged.
func TruncateLeft(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}

	budget := width - runewidth.StringWidth(ellipsis)
	runes := []rune(s)
	used := 0
	start := len(runes)
	for start > 0 {
		rw := runewidth.RuneWidth(runes[start-1])
		if used+rw > budget {
			break
		}
		used += rw
		start--
	}
	return ellipsis + string(runes[start:])
}
