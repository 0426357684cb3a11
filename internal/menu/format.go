package menu

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kk-code-lab/rbook/internal/catalog"
	"github.com/kk-code-lab/rbook/internal/textutil"
)

const titleColumnWidth = 32

// FormatList renders the catalog as numbered rows for `rbook list`. The
// numbers are the indexes accepted by the other commands.
func FormatList(entries []catalog.Entry, now time.Time) string {
	if len(entries) == 0 {
		return mutedText.Render("catalog is empty; add a book with `rbook add <path>`") + "\n"
	}
	var b strings.Builder
	for i, e := range entries {
		b.WriteString(formatRow(i+1, e, now))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatRow(index int, e catalog.Entry, now time.Time) string {
	title := textutil.PadToWidth(textutil.TruncateToWidth(displayTitle(e), titleColumnWidth), titleColumnWidth)
	row := fmt.Sprintf("%3d  %s  %5.1f%%  %9s", index, title, e.ProgressPercent, humanize.Bytes(uint64(max(e.FileSize, 0))))
	if !e.LastRead.IsZero() {
		row += "  " + humanize.RelTime(e.LastRead, now, "ago", "from now")
	}
	if !e.Available {
		return missingItem.Render(row) + mutedText.Render("  (missing)")
	}
	return normalItem.Render(row)
}

func displayTitle(e catalog.Entry) string {
	title := textutil.SanitizeTerminalText(e.Title)
	if title == "" {
		title = e.Path
	}
	if e.Author != "" {
		title += " · " + textutil.SanitizeTerminalText(e.Author)
	}
	return title
}
