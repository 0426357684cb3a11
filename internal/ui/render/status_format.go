package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kk-code-lab/rbook/internal/reader"
)

// formatStatus summarises where the frame sits in the book.
func formatStatus(frame reader.Frame) string {
	parts := []string{fmt.Sprintf("%5.1f%%", frame.Percent)}
	parts = append(parts, fmt.Sprintf("%s / %s", humanize.IBytes(uint64(frame.Offset)), humanize.IBytes(uint64(frame.Size))))
	if frame.Segments > 1 {
		parts = append(parts, fmt.Sprintf("part %d/%d", frame.Segment+1, frame.Segments))
	}
	return strings.Join(parts, " · ")
}
