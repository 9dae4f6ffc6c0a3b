package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/batch"
	"github.com/tubescribe/tubescribe/constant"
	"github.com/tubescribe/tubescribe/internal/ui"
	"github.com/tubescribe/tubescribe/key"
	"github.com/tubescribe/tubescribe/style"
	"github.com/tubescribe/tubescribe/util"
	"github.com/tubescribe/tubescribe/video"
)

type statefulBubble struct {
	state         state
	statesHistory util.History[state]

	keymap *statefulKeymap

	// components
	spinnerC    spinner.Model
	inputC      textarea.Model
	resultsC    list.Model
	transcriptC viewport.Model
	helpC       help.Model

	store       *batch.Store
	events      <-chan batch.Event
	unsubscribe func()
	ctx         context.Context

	// reading is the id of the result open in transcriptState.
	reading string

	alert     string
	lastError error

	layout        cardLayout
	width, height int
	notifier      *ui.Model

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)

	if s == inputState && !b.store.Processing() {
		b.inputC.Focus()
	} else {
		b.inputC.Blur()
	}
}

// newState moves to s, remembering where we came from.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{confirmClearState, errorState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if s, ok := b.statesHistory.Pop(); ok {
		b.setState(s)
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	b.resultsC.SetSize(listWidth, listHeight)
	b.resultsC.Help.Width = listWidth

	b.inputC.SetWidth(styledWidth)
	b.inputC.SetHeight(max(3, min(10, styledHeight/3)))

	// title, blank line, viewport, blank line, help
	b.transcriptC.Width = styledWidth
	b.transcriptC.Height = max(1, styledHeight-4)

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth

	b.layout.width = max(20, listWidth-4)
	b.refreshResults()
	if b.state == transcriptState {
		b.refreshTranscript()
	}
}

// refreshResults rebuilds the cards from a store snapshot, keeping the cursor on the same entry.
func (b *statefulBubble) refreshResults() {
	var selectedID string
	if r, ok := b.selectedResult().Get(); ok {
		selectedID = r.ID
	}

	results := b.store.Results()
	items := lo.Map(results, func(r video.Result, _ int) list.Item {
		return &listItem{result: r, layout: b.layout}
	})
	b.resultsC.SetItems(items)
	b.resultsC.Title = fmt.Sprintf("%s · %s", constant.Tubescribe, util.Quantify(len(results), "video", "videos"))

	if _, idx, ok := lo.FindIndexOf(results, func(r video.Result) bool { return r.ID == selectedID }); ok {
		b.resultsC.Select(idx)
	}
}

func (b *statefulBubble) selectedResult() mo.Option[video.Result] {
	item, ok := b.resultsC.SelectedItem().(*listItem)
	if !ok {
		return mo.None[video.Result]()
	}
	return mo.Some(item.result)
}

// focusedResult is the entry actions apply to: the one being read, or the one under the cursor.
func (b *statefulBubble) focusedResult() mo.Option[video.Result] {
	if b.state == transcriptState {
		if r, ok := b.store.Get(b.reading); ok {
			return mo.Some(r)
		}
		return mo.None[video.Result]()
	}
	return b.selectedResult()
}

func newBubble(options *Options) *statefulBubble {
	if options.Context == nil {
		options.Context = context.Background()
	}

	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.History[state]{Limit: 16},
		keymap:        keymap,
		store:         options.Store,
		ctx:           options.Context,
		notifier:      &ui.Model{},
		options:       options,
		layout: cardLayout{
			width:        80,
			previewLines: max(0, viper.GetInt(key.TUIPreviewLines)),
			showURLs:     viper.GetBool(key.TUIShowURLs),
		},
	}

	bubble.events, bubble.unsubscribe = bubble.store.Subscribe()

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textarea.New()
	bubble.inputC.Placeholder = "https://www.youtube.com/watch?v=...\nhttps://youtu.be/..."
	bubble.inputC.ShowLineNumbers = false
	bubble.inputC.CharLimit = 0
	bubble.inputC.MaxHeight = 0
	bubble.inputC.SetValue(options.Initial)

	bubble.transcriptC = viewport.New(80, 20)

	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(bubble.layout.height())
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle.Foreground(style.Text)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))

	bubble.resultsC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.resultsC.KeyMap = keymap.forList()
	bubble.resultsC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.resultsC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.resultsC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	bubble.resultsC.Styles.NoItems = paddingStyle
	bubble.resultsC.StatusMessageLifetime = time.Hour * 999
	bubble.resultsC.SetFilteringEnabled(false)
	bubble.resultsC.SetShowStatusBar(false)
	bubble.resultsC.SetStatusBarItemName("video", "videos")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	} else {
		bubble.refreshResults()
	}

	bubble.setState(inputState)

	return &bubble
}
