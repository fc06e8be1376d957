package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/usecase"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			PaddingRight(2)

	cellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			PaddingRight(2)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

const emptyMessage = "Nenhum registro encontrado."

// noticePrinter writes store notifications to stderr, one line each.
type noticePrinter struct {
	w io.Writer
}

func (p noticePrinter) Notify(level usecase.Level, message string) {
	var line string
	switch level {
	case usecase.LevelPositive:
		line = positiveStyle.Render("✓ " + message)
	case usecase.LevelNegative:
		line = negativeStyle.Render("✗ " + message)
	case usecase.LevelWarning:
		line = warningStyle.Render("! " + message)
	default:
		line = infoStyle.Render("• " + message)
	}
	fmt.Fprintln(p.w, line)
}

// table renders rows with columns padded to their widest cell.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) {
	if t.title != "" {
		fmt.Fprintln(w, titleStyle.Render(t.title))
	}
	if len(t.rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render(emptyMessage))
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(style lipgloss.Style, cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = style.Width(widths[i] + 2).Render(cell)
		}
		return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " ")
	}

	fmt.Fprintln(w, line(headerStyle, t.headers))
	for _, row := range t.rows {
		fmt.Fprintln(w, line(cellStyle, row))
	}
}

// details renders key/value pairs in order.
type details struct {
	title string
	pairs [][2]string
}

func (d *details) add(key, value string) {
	d.pairs = append(d.pairs, [2]string{key, value})
}

func (d *details) render(w io.Writer) {
	if d.title != "" {
		fmt.Fprintln(w, titleStyle.Render(d.title))
	}
	width := 0
	for _, p := range d.pairs {
		if n := lipgloss.Width(p[0]); n > width {
			width = n
		}
	}
	for _, p := range d.pairs {
		fmt.Fprintln(w, keyStyle.Width(width+2).Render(p[0])+p[1])
	}
}

func str(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func num(f *float64) string {
	if f == nil {
		return "-"
	}
	return decimal(*f)
}

func decimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func money(f float64) string {
	return fmt.Sprintf("R$ %.2f", f)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func date(t *domain.Timestamp) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Date()
}

func datetime(t domain.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func userName(u *domain.User) string {
	if u == nil {
		return "-"
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

func vehicleName(v *domain.Vehicle) string {
	if v == nil {
		return "-"
	}
	return v.DisplayName()
}

func yesNo(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}
