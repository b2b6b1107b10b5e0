package waybar

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var pangoTag = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

// Preview prints the tooltip of out the way a terminal can show it: the
// Pango-marked header in bold, the remaining lines indented inside a border.
func Preview(w io.Writer, out Output, opts ...termenv.OutputOption) error {
	r := lipgloss.NewRenderer(w, opts...)

	header, body, _ := strings.Cut(out.Tooltip, "\n")
	header = pangoTag.ReplaceAllString(header, "")
	body = pangoTag.ReplaceAllString(body, "")

	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render(header)
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(body)

	_, err := fmt.Fprintf(w, "%s\n%s\n", title, box)
	return err
}
