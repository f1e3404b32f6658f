package splitdiff

import (
	"fmt"
	"strings"
)

// contextRows is how many unchanged rows surround each hunk when a
// comparison is formatted for a prompt.
const contextRows = 3

// PromptFormatter renders a summary input as structured text for LLM
// prompts.
type PromptFormatter interface {
	Format(input SummaryInput) string
}

// DefaultFormatter implements PromptFormatter with the standard format.
type DefaultFormatter struct{}

// Format renders the comparison as structured text: a context header
// with file metadata, then each hunk in row order with old lines
// prefixed "-", new lines prefixed "+" and a few unchanged rows
// around it.
func (f *DefaultFormatter) Format(input SummaryInput) string {
	var sb strings.Builder

	sb.WriteString("<context>\n")
	fmt.Fprintf(&sb, "File: %s\n", input.Pair.Title)
	fmt.Fprintf(&sb, "Lines: %d old, %d new\n", input.Pair.Old.Len(), input.Pair.New.Len())
	if input.Map.Coarse {
		sb.WriteString("Note: the change was too large for a fine-grained comparison; it is shown as one block.\n")
	}
	sb.WriteString("</context>\n\n")

	sb.WriteString("<comparison>\n")
	for _, h := range input.Map.Hunks {
		fmt.Fprintf(&sb, "--- HUNK %d (old %s, new %s) ---\n",
			h.Ordinal, formatLineRange(h.Old), formatLineRange(h.New))

		start := max(0, h.Rows.Start-contextRows)
		end := min(input.Map.Len(), h.Rows.End+contextRows)
		for _, row := range input.Map.Rows[start:end] {
			if row.Kind == RowContext {
				sb.WriteString(" " + input.Pair.Old.Line(row.OldLine) + "\n")
				continue
			}
			if row.HasOld() {
				sb.WriteString("-" + input.Pair.Old.Line(row.OldLine) + "\n")
			}
			if row.HasNew() {
				sb.WriteString("+" + input.Pair.New.Line(row.NewLine) + "\n")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("</comparison>")

	return sb.String()
}

// formatLineRange renders a line range 1-based for display, or "-"
// when the range is empty.
func formatLineRange(r Range) string {
	if r.Empty() {
		return "-"
	}
	return fmt.Sprintf("%d-%d", r.Start+1, r.End)
}
