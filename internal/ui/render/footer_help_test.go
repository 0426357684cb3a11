package render

import (
	"strings"
	"testing"
)

func TestBuildFooterHelpTextListsNavigationKeys(t *testing.T) {
	got := buildFooterHelpText()
	for _, want := range []string{"PgDn: next", "PgUp: back", "End/Esc: close"} {
		if !strings.Contains(got, want) {
			t.Fatalf("footer %q missing %q", got, want)
		}
	}
	if !strings.HasPrefix(got, " ") || !strings.HasSuffix(got, " ") {
		t.Fatalf("footer should be padded, got %q", got)
	}
}
