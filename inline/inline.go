// Package inline runs a single batch without the interactive interface and prints the results.
package inline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/tubescribe/tubescribe/batch"
	"github.com/tubescribe/tubescribe/export"
	"github.com/tubescribe/tubescribe/filesystem"
	"github.com/tubescribe/tubescribe/log"
	"github.com/tubescribe/tubescribe/video"
)

// Options configures a run.
type Options struct {
	Context context.Context
	Store   *batch.Store

	// Text is the raw link input.
	Text string

	Out io.Writer
	// Progress receives one line per finished entry. Nil disables it.
	Progress io.Writer

	Json   bool
	Export mo.Option[export.Format]
	Dir    string
}

// Input joins positional links, the contents of file and stdin into one text blob.
func Input(args []string, file string, stdin io.Reader) (string, error) {
	parts := append([]string(nil), args...)

	if file != "" {
		contents, err := filesystem.API().ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read links file: %w", err)
		}
		parts = append(parts, string(contents))
	}

	if stdin != nil {
		contents, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		parts = append(parts, string(contents))
	}

	return strings.Join(parts, "\n"), nil
}

// Run processes options.Text and writes the report. It fails only when no
// link is accepted or output cannot be written; failed entries are part of the report.
func Run(options *Options) (*Output, error) {
	if options.Context == nil {
		options.Context = context.Background()
	}

	if options.Progress != nil {
		events, cancel := options.Store.Subscribe()
		done := make(chan struct{})
		go func() {
			defer close(done)
			reportProgress(options.Progress, events)
		}()
		defer func() {
			cancel()
			<-done
		}()
	}

	created, summary, err := options.Store.Process(options.Context, options.Text)
	if err != nil {
		return nil, err
	}

	ids := created.IDs()
	results := lo.FilterMap(ids, func(id string, _ int) (video.Result, bool) {
		return options.Store.Get(id)
	})

	output := &Output{Results: results, Summary: summary}

	if format, ok := options.Export.Get(); ok {
		taken := make(map[string]bool)
		for _, r := range results {
			if r.Status != video.StatusCompleted {
				continue
			}

			path, err := export.WriteNew(r, format, options.Dir, taken)
			if err != nil {
				return nil, err
			}
			log.With(log.Fields{"id": r.ID, "path": path}).Info("exported")
			output.Files = append(output.Files, path)
		}
	}

	if options.Json {
		return output, writeJson(options.Out, output)
	}
	return output, writeText(options.Out, output)
}

func reportProgress(w io.Writer, events <-chan batch.Event) {
	for e := range events {
		if e.Type != batch.EventResultUpdated || e.Result == nil {
			continue
		}

		switch e.Result.Status {
		case video.StatusProcessing:
			fmt.Fprintf(w, "… %s\n", e.Result.URL)
		case video.StatusCompleted:
			fmt.Fprintf(w, "✓ %s\n", e.Result.Title)
		case video.StatusError:
			fmt.Fprintf(w, "✗ %s: %s\n", e.Result.URL, e.Result.Error)
		}
	}
}

const separator = "\n\n----------------------------------------\n\n"

func writeText(out io.Writer, output *Output) error {
	blocks := lo.Map(output.Results, func(r video.Result, _ int) string {
		if r.Status == video.StatusCompleted {
			block := export.Render(r)
			if len(r.Sources) > 0 {
				block += "\n\nSources:\n" + strings.Join(lo.Map(r.Sources, func(s video.Source, _ int) string {
					return fmt.Sprintf("- %s (%s)", s.Title, s.URI)
				}), "\n")
			}
			return block
		}
		return fmt.Sprintf("URL: %s\nError: %s", r.URL, r.Error)
	})

	report := strings.Join(blocks, separator)
	report += fmt.Sprintf("\n\n%d completed, %d failed\n", output.Summary.Completed, output.Summary.Failed)
	for _, f := range output.Files {
		report += "saved " + f + "\n"
	}

	_, err := io.WriteString(out, report)
	return err
}
