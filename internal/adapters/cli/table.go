package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// row renders cells left-aligned in fixed-width columns.
func row(style lipgloss.Style, widths []int, cells ...string) string {
	var b strings.Builder
	for i, c := range cells {
		if i < len(widths) {
			c = fmt.Sprintf("%-*s", widths[i], c)
		}
		b.WriteString(style.Render(c))
	}
	return b.String()
}
