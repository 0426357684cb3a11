package render

import "strings"

var footerHelpSegments = []string{
	"PgDn: next",
	"PgUp: back",
	"End/Esc: close",
	"other keys: close",
}

// buildFooterHelpText returns the key hint string with leading/trailing padding.
func buildFooterHelpText() string {
	return " " + strings.Join(footerHelpSegments, "  ") + " "
}
