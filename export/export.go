// Package export renders completed results as downloadable files and clipboard text.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/atotto/clipboard"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/constant"
	"github.com/tubescribe/tubescribe/filesystem"
	"github.com/tubescribe/tubescribe/key"
	"github.com/tubescribe/tubescribe/video"
)

// ErrNotCompleted is returned when exporting an entry that has no transcription yet.
var ErrNotCompleted = errors.New("only completed results can be exported")

// Format is a downloadable file format.
type Format string

const (
	FormatTxt Format = "txt"
	FormatDoc Format = "doc"
)

var mediaTypes = map[Format]string{
	FormatTxt: "text/plain",
	FormatDoc: "application/msword",
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatTxt, FormatDoc}
}

// ParseFormat accepts "txt" or "doc", case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := mediaTypes[f]; !ok {
		return "", fmt.Errorf("unknown export format %q, expected one of %v", s, Formats())
	}
	return f, nil
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// MediaType returns the declared content type. Both formats carry the same plain text.
func (f Format) MediaType() string {
	return mediaTypes[f]
}

var (
	fileTemplate      = template.Must(template.New("file").Parse(constant.ExportTemplate))
	clipboardTemplate = template.Must(template.New("clipboard").Parse(constant.ClipboardTemplate))
)

func execute(t *template.Template, r video.Result) string {
	var b strings.Builder
	lo.Must0(t.Execute(&b, r))
	return b.String()
}

// Render returns the file body for r.
func Render(r video.Result) string {
	return execute(fileTemplate, r)
}

// Summary returns the clipboard text for r.
func Summary(r video.Result) string {
	return execute(clipboardTemplate, r)
}

var unsafeChars = regexp.MustCompile(`(?i)[^a-z0-9]`)

const maxStem = 50

// Filename derives a file name from the title: every character outside
// [a-z0-9] becomes an underscore, the result is lower-cased and cut to 50 characters.
func Filename(r video.Result, f Format) string {
	stem := r.Title
	if stem == "" {
		stem = "transcription"
	}

	stem = strings.ToLower(unsafeChars.ReplaceAllString(stem, "_"))
	if runes := []rune(stem); len(runes) > maxStem {
		stem = string(runes[:maxStem])
	}

	return stem + f.Extension()
}

// Write saves r to dir and returns the written path. Existing files are overwritten.
func Write(r video.Result, f Format, dir string) (string, error) {
	return WriteNew(r, f, dir, nil)
}

// WriteNew is Write that never picks a name already in taken: a title seen
// before gets _2, _3 and so on before the extension. The chosen name is
// recorded in taken. A nil taken behaves like Write.
func WriteNew(r video.Result, f Format, dir string, taken map[string]bool) (string, error) {
	if r.Status != video.StatusCompleted {
		return "", ErrNotCompleted
	}

	if _, ok := mediaTypes[f]; !ok {
		return "", fmt.Errorf("unknown export format %q", f)
	}

	name := Filename(r, f)
	if taken != nil {
		stem := strings.TrimSuffix(name, f.Extension())
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s_%d%s", stem, n, f.Extension())
		}
		taken[name] = true
	}

	path := filepath.Join(dir, name)
	if err := filesystem.WriteFile(path, []byte(Render(r)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}

// DefaultFormat returns export.format, or txt when it is not a known format.
func DefaultFormat() Format {
	f, err := ParseFormat(viper.GetString(key.ExportFormat))
	if err != nil {
		return FormatTxt
	}
	return f
}

// Clean removes the files in dir that carry an export extension and returns
// their paths. Subdirectories and any other file are left alone.
func Clean(dir string) ([]string, error) {
	fs := filesystem.API()
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() || !lo.ContainsBy(Formats(), func(f Format) bool {
			return strings.EqualFold(filepath.Ext(entry.Name()), f.Extension())
		}) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := fs.Remove(path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", path, err)
		}
		removed = append(removed, path)
	}

	return removed, nil
}

// Copy puts Summary(r) on the system clipboard.
func Copy(r video.Result) error {
	if r.Status != video.StatusCompleted {
		return ErrNotCompleted
	}

	if clipboard.Unsupported {
		return errors.New("clipboard is not available on this system")
	}

	return clipboard.WriteAll(Summary(r))
}
