package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/tubescribe/tubescribe/batch"
	"github.com/tubescribe/tubescribe/export"
	"github.com/tubescribe/tubescribe/icon"
	"github.com/tubescribe/tubescribe/internal/ui"
	"github.com/tubescribe/tubescribe/intake"
	"github.com/tubescribe/tubescribe/log"
	"github.com/tubescribe/tubescribe/open"
	"github.com/tubescribe/tubescribe/util"
	"github.com/tubescribe/tubescribe/video"
	"github.com/tubescribe/tubescribe/where"
)

type storeEventMsg batch.Event

type batchDoneMsg batch.Summary

// waitForEvent delivers the next store event. It returns nil once the subscription is closed.
func (b *statefulBubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-b.events
		if !ok {
			return nil
		}
		return storeEventMsg(e)
	}
}

// submit validates the input and starts a batch. Invalid input leaves the
// text untouched and shows an alert.
func (b *statefulBubble) submit() tea.Cmd {
	if b.store.Processing() {
		b.alert = "Please wait for the current batch to finish."
		return nil
	}

	created, err := b.store.Submit(b.inputC.Value())
	switch {
	case errors.Is(err, intake.ErrNoValidLinks):
		b.alert = "Please enter valid YouTube URLs."
		return nil
	case errors.Is(err, batch.ErrBusy):
		b.alert = "Please wait for the current batch to finish."
		return nil
	case err != nil:
		b.raiseError(err)
		return nil
	}

	b.alert = ""
	b.inputC.Reset()
	b.refreshResults()
	b.resultsC.Select(0)
	b.newState(resultsState)

	return tea.Batch(b.runBatch(created), b.spinnerC.Tick)
}

func (b *statefulBubble) runBatch(created *batch.Batch) tea.Cmd {
	return func() tea.Msg {
		log.With(log.Fields{"batch": created.ID}).Info("tui batch started")
		return batchDoneMsg(b.store.Run(b.ctx, created))
	}
}

func summaryText(s batch.Summary) string {
	text := fmt.Sprintf("Finished %s: %d completed, %d failed",
		util.Quantify(s.Total, "video", "videos"), s.Completed, s.Failed)
	if s.Dropped > 0 {
		text += fmt.Sprintf(", %d cleared", s.Dropped)
	}
	return text
}

// completedFocus returns the focused entry if it can be exported, or a notification explaining why not.
func (b *statefulBubble) completedFocus() (video.Result, tea.Cmd) {
	r, ok := b.focusedResult().Get()
	if !ok {
		return video.Result{}, ui.Notify("Nothing selected")
	}
	if r.Status != video.StatusCompleted {
		return video.Result{}, ui.Notify("Only completed videos can be copied or downloaded")
	}
	return r, nil
}

func (b *statefulBubble) copyFocused() tea.Cmd {
	r, cmd := b.completedFocus()
	if cmd != nil {
		return cmd
	}

	if err := export.Copy(r); err != nil {
		log.With(log.Fields{"id": r.ID}).WithError(err).Warn("copy failed")
		return ui.Notify(icon.Get(icon.Cross) + " " + err.Error())
	}
	return ui.Notify(icon.Get(icon.Copy) + " Copied to clipboard")
}

func (b *statefulBubble) downloadFocused(format export.Format) tea.Cmd {
	r, cmd := b.completedFocus()
	if cmd != nil {
		return cmd
	}

	path, err := export.Write(r, format, b.exportDir())
	if err != nil {
		log.With(log.Fields{"id": r.ID, "format": format}).WithError(err).Warn("download failed")
		return ui.Notify(icon.Get(icon.Cross) + " " + err.Error())
	}

	log.With(log.Fields{"id": r.ID, "path": path}).Info("exported")
	return ui.Notify(icon.Get(icon.Download) + " Saved " + path)
}

func (b *statefulBubble) exportDir() string {
	if b.options.ExportDir != "" {
		return b.options.ExportDir
	}
	return where.Exports()
}

func (b *statefulBubble) openFocusedURL() tea.Cmd {
	r, ok := b.focusedResult().Get()
	if !ok {
		return nil
	}
	return openCmd(r.URL)
}

func (b *statefulBubble) openFocusedSource() tea.Cmd {
	r, ok := b.focusedResult().Get()
	if !ok {
		return nil
	}

	src, ok := lo.Find(r.Sources, video.Source.Linked)
	if !ok {
		return ui.Notify("No sources to open")
	}
	return openCmd(src.URI)
}

func openCmd(link string) tea.Cmd {
	if err := open.URL(link); err != nil {
		return ui.Notify(icon.Get(icon.Cross) + " " + err.Error())
	}
	return ui.Notify(icon.Get(icon.Link) + " Opened " + link)
}

func (b *statefulBubble) requestClear() tea.Cmd {
	if b.store.Processing() {
		return ui.Notify("Results cannot be cleared while processing")
	}

	if len(b.store.Results()) == 0 {
		return nil
	}

	if b.options.ConfirmClear {
		b.newState(confirmClearState)
		return nil
	}

	b.store.Clear()
	b.refreshResults()
	return nil
}

func (b *statefulBubble) refreshTranscript() {
	r, ok := b.store.Get(b.reading)
	if !ok {
		return
	}
	b.transcriptC.SetContent(transcriptContent(r, max(20, b.width)))
}

func (b *statefulBubble) openTranscript() tea.Cmd {
	r, ok := b.selectedResult().Get()
	if !ok {
		return nil
	}

	b.reading = r.ID
	b.refreshTranscript()
	b.transcriptC.GotoTop()
	b.newState(transcriptState)
	return nil
}
