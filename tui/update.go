package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tubescribe/tubescribe/batch"
	"github.com/tubescribe/tubescribe/export"
	"github.com/tubescribe/tubescribe/internal/ui"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, tea.Batch(cmds...)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case storeEventMsg:
		b.onStoreEvent(batch.Event(msg))
		return b, tea.Batch(append(cmds, b.waitForEvent())...)
	case batchDoneMsg:
		b.refreshResults()
		if b.state == inputState {
			b.inputC.Focus()
		}
		return b, tea.Batch(append(cmds, ui.Notify(summaryText(batch.Summary(msg))))...)
	case spinner.TickMsg:
		if !b.store.Processing() {
			return b, tea.Batch(cmds...)
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, tea.Batch(append(cmds, cmd)...)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var (
		next tea.Model
		cmd  tea.Cmd
	)

	switch b.state {
	case inputState:
		next, cmd = b.updateInput(msg)
	case resultsState:
		next, cmd = b.updateResults(msg)
	case transcriptState:
		next, cmd = b.updateTranscript(msg)
	case confirmClearState:
		next, cmd = b.updateConfirmClear(msg)
	case errorState:
		next, cmd = b.updateError(msg)
	default:
		next = b
	}

	return next, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) onStoreEvent(e batch.Event) {
	b.refreshResults()

	switch e.Type {
	case batch.EventResultsCleared:
		b.resultsC.Select(0)
		if b.state == transcriptState {
			b.previousState()
		}
	case batch.EventResultUpdated:
		if b.state == transcriptState && e.Result != nil && e.Result.ID == b.reading {
			b.refreshTranscript()
		}
	}
}

func (b *statefulBubble) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.submit):
			return b, b.submit()
		case bubblesKey.Matches(msg, b.keymap.toggle):
			b.newState(resultsState)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() > 0 {
				b.previousState()
			}
			return b, nil
		}

		// input is locked while a batch runs
		if b.store.Processing() {
			return b, nil
		}

		b.alert = ""
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.toggle):
			b.newState(inputState)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.read):
			return b, b.openTranscript()
		case bubblesKey.Matches(msg, b.keymap.copy):
			return b, b.copyFocused()
		case bubblesKey.Matches(msg, b.keymap.downloadTxt):
			return b, b.downloadFocused(export.FormatTxt)
		case bubblesKey.Matches(msg, b.keymap.downloadDoc):
			return b, b.downloadFocused(export.FormatDoc)
		case bubblesKey.Matches(msg, b.keymap.openURL):
			return b, b.openFocusedURL()
		case bubblesKey.Matches(msg, b.keymap.openSource):
			return b, b.openFocusedSource()
		case bubblesKey.Matches(msg, b.keymap.clear):
			return b, b.requestClear()
		}
	}

	var cmd tea.Cmd
	b.resultsC, cmd = b.resultsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateTranscript(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back), bubblesKey.Matches(msg, b.keymap.quit):
			b.reading = ""
			b.previousState()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.copy):
			return b, b.copyFocused()
		case bubblesKey.Matches(msg, b.keymap.downloadTxt):
			return b, b.downloadFocused(export.FormatTxt)
		case bubblesKey.Matches(msg, b.keymap.downloadDoc):
			return b, b.downloadFocused(export.FormatDoc)
		case bubblesKey.Matches(msg, b.keymap.openURL):
			return b, b.openFocusedURL()
		case bubblesKey.Matches(msg, b.keymap.openSource):
			return b, b.openFocusedSource()
		case bubblesKey.Matches(msg, b.keymap.top):
			b.transcriptC.GotoTop()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.bottom):
			b.transcriptC.GotoBottom()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.transcriptC, cmd = b.transcriptC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			b.previousState()
			if b.store.Processing() {
				return b, ui.Notify("Results cannot be cleared while processing")
			}
			b.store.Clear()
			b.refreshResults()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.cancel):
			b.previousState()
			return b, nil
		}
	}
	return b, nil
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, nil
}
