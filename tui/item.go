package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/tubescribe/tubescribe/color"
	"github.com/tubescribe/tubescribe/icon"
	"github.com/tubescribe/tubescribe/style"
	"github.com/tubescribe/tubescribe/util"
	"github.com/tubescribe/tubescribe/video"
)

// cardLayout controls how much of a result a list card shows.
type cardLayout struct {
	width        int
	previewLines int
	showURLs     bool
}

// height is the number of lines a card occupies, title included.
func (c cardLayout) height() int {
	h := 1 + c.previewLines + 1
	if c.showURLs {
		h++
	}
	return h
}

// listItem is one result card.
type listItem struct {
	result video.Result
	layout cardLayout
}

var statusColors = map[video.Status]lipgloss.Color{
	video.StatusPending:    color.Pending,
	video.StatusProcessing: color.Running,
	video.StatusCompleted:  color.Completed,
	video.StatusError:      color.Failed,
}

var statusIcons = map[video.Status]icon.Icon{
	video.StatusPending:    icon.Pending,
	video.StatusProcessing: icon.Processing,
	video.StatusCompleted:  icon.Completed,
	video.StatusError:      icon.Failed,
}

func badge(s video.Status) string {
	label := util.Capitalize(s.String())
	if i := icon.Get(statusIcons[s]); i != "" {
		label = i + " " + label
	}
	return style.Status(label, statusColors[s])
}

func displayTitle(r video.Result) string {
	switch {
	case r.Title != "":
		return r.Title
	case r.Status == video.StatusProcessing:
		return "Processing Video..."
	default:
		return "Unknown Title"
	}
}

func (t *listItem) Title() string {
	return badge(t.result.Status) + " " + displayTitle(t.result)
}

func (t *listItem) Description() string {
	r := t.result
	var lines []string

	if t.layout.showURLs {
		lines = append(lines, style.Faint(r.URL))
	}

	switch r.Status {
	case video.StatusError:
		lines = append(lines, style.Fg(color.Failed)(r.Error))
	case video.StatusCompleted:
		lines = append(lines, preview(r.Transcription, t.layout.width, t.layout.previewLines)...)
		if len(r.Sources) > 0 {
			titles := lo.Map(r.Sources, func(s video.Source, _ int) string { return s.Title })
			lines = append(lines, style.Faint(icon.Get(icon.Source)+" "+strings.Join(titles, " · ")))
		}
	case video.StatusProcessing:
		lines = append(lines, style.Faint("Fetching title and transcription..."))
	case video.StatusPending:
		lines = append(lines, style.Faint("Queued"))
	}

	return strings.Join(lines, "\n")
}

func (t *listItem) FilterValue() string {
	return t.result.Title + " " + t.result.URL
}

// preview wraps text to width and keeps at most n lines, marking a cut with an ellipsis.
func preview(text string, width, n int) []string {
	if n <= 0 {
		return nil
	}

	if width <= 0 {
		width = 80
	}

	lines := strings.Split(wordwrap.String(strings.TrimSpace(text), width), "\n")
	if len(lines) <= n {
		return lines
	}

	lines = lines[:n]
	lines[n-1] = strings.TrimRight(lines[n-1], " ") + "…"
	return lines
}
