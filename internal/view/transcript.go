// Package view renders a cleaned conversation as a terminal transcript.
package view

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/arahm071/Messenger-Analysis/internal/format"
	"github.com/arahm071/Messenger-Analysis/internal/model"
)

// Options defines the configurable parameters for rendering a transcript.
type Options struct {
	Wrap         int
	MaxRows      int
	ForceColor   bool
	ForceNoColor bool
	Out          io.Writer
	OutFile      *os.File
}

// Run writes the table's rows as chat bubbles to opts.Out.
func Run(t *model.Table, opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ForceColor && opts.ForceNoColor {
		return fmt.Errorf("color cannot be both forced and disabled")
	}

	width := opts.Wrap
	if width <= 0 {
		width = terminalWidth(opts.OutFile)
	}
	useColor := resolveColorChoice(opts)

	rows := t.Rows
	if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
		rows = rows[len(rows)-opts.MaxRows:]
	}

	layout := senderLayoutFor(t.Senders())
	for idx, row := range rows {
		if idx > 0 {
			fmt.Fprintln(opts.Out)
		}
		for _, line := range renderBubble(row, layout, width, useColor) {
			fmt.Fprintln(opts.Out, line)
		}
	}
	return nil
}

// senderLayout assigns each participant an alignment and a color. The first
// sender to appear reads as "me" on the right; everyone else sits left.
type senderLayout struct {
	align map[string]string
	color map[string]string
}

func senderLayoutFor(senders []string) senderLayout {
	layout := senderLayout{
		align: make(map[string]string, len(senders)),
		color: make(map[string]string, len(senders)),
	}
	for i, sender := range senders {
		if i == 0 {
			layout.align[sender] = "right"
		} else {
			layout.align[sender] = "left"
		}
		layout.color[sender] = senderPalette[i%len(senderPalette)]
	}
	return layout
}

func renderBubble(row model.Row, layout senderLayout, totalWidth int, useColor bool) []string {
	const padding = 2

	maxContentWidth := totalWidth - padding*2 - 10
	if maxContentWidth < 8 {
		maxContentWidth = 8
	}

	headerText := fmt.Sprintf("%s · %s %s", row.Sender, row.Date, row.Clock)
	body := bubbleBody(row)
	content := wrapLines(append([]string{headerText}, body...), maxContentWidth)

	bubbleWidth := 0
	for _, line := range content {
		if w := runewidth.StringWidth(line); w > bubbleWidth {
			bubbleWidth = w
		}
	}
	if bubbleWidth > maxContentWidth {
		bubbleWidth = maxContentWidth
	}

	leftPad := padding
	if layout.align[row.Sender] == "right" {
		leftPad = totalWidth - bubbleWidth - 4
		if leftPad < padding {
			leftPad = padding
		}
	}

	if useColor {
		colored := fmt.Sprintf("%s · %s",
			colorize(layout.color[row.Sender], row.Sender),
			colorize(ansiTimestamp, row.Date+" "+row.Clock),
		)
		content[0] = strings.Replace(content[0], headerText, colored, 1)
	}

	indent := strings.Repeat(" ", leftPad)
	top := fmt.Sprintf("%s╭%s╮", indent, strings.Repeat("─", bubbleWidth+2))
	bottom := fmt.Sprintf("%s╰%s╯", indent, strings.Repeat("─", bubbleWidth+2))

	lines := []string{top}
	for _, line := range content {
		visible := visibleWidth(line)
		if visible > bubbleWidth {
			line = runewidth.Truncate(line, bubbleWidth, "")
			visible = bubbleWidth
		}
		lines = append(lines, fmt.Sprintf("%s│ %s%s │", indent, line, strings.Repeat(" ", bubbleWidth-visible)))
	}
	lines = append(lines, bottom)
	return lines
}

func bubbleBody(row model.Row) []string {
	if row.CallDuration > 0 {
		return []string{fmt.Sprintf("📞 Call · %s", format.FormatDuration(row.CallDuration))}
	}
	if row.Content == "" {
		return []string{"(no text)"}
	}
	return strings.Split(row.Content, "\n")
}

func wrapLines(lines []string, width int) []string {
	var out []string
	for _, line := range lines {
		out = append(out, wrapText(line, width)...)
	}
	return out
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	text = strings.TrimRight(text, " ")
	if text == "" {
		return []string{""}
	}

	var out []string
	var current strings.Builder
	currentWidth := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if currentWidth+rw > width && current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
			currentWidth = 0
		}
		current.WriteRune(r)
		currentWidth += rw
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

const (
	ansiReset     = "\x1b[0m"
	ansiTimestamp = "\x1b[38;5;245m"
)

var senderPalette = []string{
	"\x1b[38;5;220m",
	"\x1b[38;5;44m",
	"\x1b[38;5;207m",
	"\x1b[38;5;118m",
	"\x1b[38;5;209m",
}

func colorize(code, text string) string {
	return code + text + ansiReset
}

func visibleWidth(text string) int {
	clean := text
	for {
		start := strings.Index(clean, "\x1b[")
		if start < 0 {
			break
		}
		end := strings.Index(clean[start:], "m")
		if end < 0 {
			break
		}
		clean = clean[:start] + clean[start+end+1:]
	}
	return runewidth.StringWidth(clean)
}

func resolveColorChoice(opts Options) bool {
	if opts.ForceColor {
		return true
	}
	if opts.ForceNoColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if opts.OutFile == nil {
		return false
	}
	return isatty.IsTerminal(opts.OutFile.Fd()) || isatty.IsCygwinTerminal(opts.OutFile.Fd())
}

func terminalWidth(outFile *os.File) int {
	const fallback = 100
	if outFile == nil {
		return fallback
	}
	width, _, err := term.GetSize(int(outFile.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
