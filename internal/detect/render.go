package detect

import (
	"fmt"
	"strings"
)

// Markdown renders a compact report suitable for terminals or docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[PII SCAN]\n")
	b.WriteString(fmt.Sprintf("Flagged: %d\n", len(r.Entries)))
	if r.Empty() {
		b.WriteString("\nNo PII signals detected.\n")
		return b.String()
	}
	b.WriteString("\n[FLAGGED COLUMNS]\n")
	for _, e := range r.Entries {
		reasons := make([]string, len(e.Reasons))
		for i, rs := range e.Reasons {
			reasons[i] = string(rs)
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", e.Key(), strings.Join(reasons, "; ")))
	}
	return b.String()
}
