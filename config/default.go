// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/color"
	"github.com/tubescribe/tubescribe/constant"
	"github.com/tubescribe/tubescribe/key"
	"github.com/tubescribe/tubescribe/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
	// Secret fields are masked whenever their value is printed.
	Secret bool
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Tubescribe + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// Current returns the effective value, masked for secret fields.
func (f *Field) Current() any {
	v := viper.Get(f.Key)
	if f.Secret {
		return Mask(fmt.Sprint(v))
	}
	return v
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       f.Current(),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Mask hides all but the last four characters of a secret.
func Mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(f Field) {
		if _, exists := Default[f.Key]; exists {
			panic("Duplicate config key: " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}

	for _, f := range []Field{
		{Key: key.GeminiAPIKey, Value: "", Description: "Gemini API key.\nPrefer \"tubescribe auth set\" to keep it in the system keyring", Secret: true},
		{Key: key.GeminiModel, Value: constant.DefaultModel, Description: "Gemini model used to retrieve titles and transcriptions"},
		{Key: key.GeminiSearch, Value: true, Description: "Enable Google Search grounding for retrieval requests"},
		{Key: key.GeminiBaseURL, Value: "", Description: "Override the Gemini API endpoint (proxies, testing).\nEmpty uses the default endpoint"},
		{Key: key.IntakeHosts, Value: []string{"youtube.com", "youtu.be"}, Description: "Accepted video-platform domains.\nLinks whose registrable domain is not listed are dropped"},
		{Key: key.ExportFormat, Value: "txt", Description: "Format used by inline --save and by server exports without ?format.\nAvailable options are: txt, doc"},
		{Key: key.ExportDir, Value: "", Description: "Directory for downloaded transcriptions.\nEmpty uses \"tubescribe where --exports\""},
		{Key: key.TUIItemSpacing, Value: 1, Description: "Spacing between items in the TUI"},
		{Key: key.TUIPreviewLines, Value: 4, Description: "Number of transcription lines shown on a collapsed card"},
		{Key: key.TUIShowURLs, Value: true, Description: "Show video URLs under list items"},
		{Key: key.TUIConfirmClear, Value: true, Description: "Ask for confirmation before clearing results"},
		{Key: key.ServeAddr, Value: ":8080", Description: "Listen address for \"tubescribe serve\""},
		{Key: key.IconsVariant, Value: "plain", Description: "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)"},
		{Key: key.LogsWrite, Value: false, Description: "Write logs"},
		{Key: key.LogsLevel, Value: "info", Description: "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
		{Key: key.LogsJson, Value: false, Description: "Use json format for logs"},
		{Key: key.CliColored, Value: true, Description: "Enable colored CLI output"},
		{Key: key.CliVersionCheck, Value: true, Description: "Enable automatic version check"},
	} {
		register(f)
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl .Current }}
{{ blue "Default:" }} {{ hl .Value }}
{{ blue "Type:" }}    {{ typename .Value }}`))
