package dynexpr

import (
	"fmt"
	"os"

	"github.com/starkandwayne/goutils/ansi"
)

// silenceDiagnostics mirrors the teacher's SilenceWarnings switch: tests
// and latency-sensitive search loops can turn the type-mismatch
// diagnostic off globally without threading a flag through every
// Evaluate call.
var silenceDiagnostics bool

// SilenceDiagnostics enables or disables the type-promotion diagnostic
// printed by EvaluatePromoting. Diagnostics print by default.
func SilenceDiagnostics(should bool) {
	silenceDiagnostics = should
}

// warnPromotion prints the type-mismatch diagnostic required by spec
// §4.3/§7: evaluating a tree against data of a different element type is
// informational, not an error, but is surfaced so it doesn't silently
// compound inside a tight search loop (see DESIGN.md's Open Question
// resolution).
func warnPromotion(treeType, dataType string) {
	if silenceDiagnostics {
		return
	}
	fmt.Fprintln(os.Stderr, ansi.Sprintf("@Y{warning:} evaluating a @c{%s} tree against @c{%s} data; promoting both", treeType, dataType))
}
