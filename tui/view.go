package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/tubescribe/tubescribe/color"
	"github.com/tubescribe/tubescribe/constant"
	"github.com/tubescribe/tubescribe/icon"
	"github.com/tubescribe/tubescribe/style"
	"github.com/tubescribe/tubescribe/util"
	"github.com/tubescribe/tubescribe/video"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case inputState:
		output = b.viewInput()
	case resultsState:
		output = b.viewResults()
	case transcriptState:
		output = b.viewTranscript()
	case confirmClearState:
		output = b.viewConfirmClear()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) statusLine() string {
	count := len(b.store.Results())
	line := style.Faint(util.Quantify(count, "video", "videos"))
	if b.store.Processing() {
		line = b.spinnerC.View() + " " + style.Fg(color.Running)("Processing...") + "  " + line
	}
	return line
}

func (b *statefulBubble) viewInput() string {
	lines := []string{
		style.Title(fmt.Sprintf("%s %s", icon.Get(icon.Video), util.Capitalize(constant.Tubescribe))),
		"",
		"Paste YouTube links, one per line or separated by commas.",
		"",
		b.inputC.View(),
		"",
	}

	if b.alert != "" {
		lines = append(lines, style.Fg(color.Failed)(icon.Get(icon.Cross)+" "+b.alert))
	}

	lines = append(lines, b.statusLine())

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewResults() string {
	if len(b.resultsC.Items()) == 0 {
		return b.renderLines(true, []string{
			b.resultsC.Styles.Title.Render(b.resultsC.Title),
			"",
			style.Faint("No videos processed yet"),
			style.Faint("Press tab to paste some links."),
		})
	}

	view := b.resultsC.View()
	if b.store.Processing() {
		view = b.statusLine() + "\n" + view
	}
	return listExtraPaddingStyle.Render(view)
}

// transcriptContent is the full text shown when reading an entry.
func transcriptContent(r video.Result, width int) string {
	var sb strings.Builder

	sb.WriteString(style.Faint(r.URL))
	sb.WriteString("\n\n")

	switch r.Status {
	case video.StatusCompleted:
		sb.WriteString(wordwrap.String(r.Transcription, width))
	case video.StatusError:
		sb.WriteString(style.Fg(color.Failed)(wrap.String(r.Error, width)))
	default:
		sb.WriteString(style.Faint("Transcription is not available yet."))
	}

	if len(r.Sources) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(style.Bold("Sources"))
		for _, s := range r.Sources {
			sb.WriteString("\n")
			sb.WriteString(icon.Get(icon.Source) + " " + s.Title)
			if s.Linked() {
				sb.WriteString(" " + style.Link(s.URI))
			}
		}
	}

	return sb.String()
}

func (b *statefulBubble) viewTranscript() string {
	title := "Transcript"
	if r, ok := b.store.Get(b.reading); ok {
		title = displayTitle(r)
	}

	return b.renderLines(true, []string{
		style.Title(style.Truncate(max(10, b.width-2))(title)),
		"",
		b.transcriptC.View(),
		"",
	})
}

func (b *statefulBubble) viewConfirmClear() string {
	return b.renderLines(true, []string{
		style.ErrorTitle("Clear results"),
		"",
		fmt.Sprintf("%s Remove all %s from the list?", icon.Get(icon.Question), util.Quantify(len(b.store.Results()), "video", "videos")),
		style.Faint("Downloaded files are kept."),
	})
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	var message string
	if b.lastError != nil {
		message = b.lastError.Error()
	}
	errorMsg := wrap.String(errorStyle.Render(message), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Failed) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := lipgloss.Height(strings.Join(lines, "\n"))
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
