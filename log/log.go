// Package log wraps logrus with a process-wide switch and a daily log file under where.Logs().
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/filesystem"
	"github.com/tubescribe/tubescribe/key"
	"github.com/tubescribe/tubescribe/where"
)

// Fields is an alias so callers don't have to import logrus.
type Fields = logrus.Fields

var enabled bool

// Setup opens today's log file and configures the formatter and level.
// When logs.write is off every emission below is a no-op.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		logrus.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

// Enabled reports whether log emissions reach the backend.
func Enabled() bool {
	return enabled
}

// Entry is a field-scoped logger that respects the global switch.
type Entry struct {
	entry *logrus.Entry
}

// With returns an Entry carrying the given structured fields.
func With(fields Fields) Entry {
	return Entry{entry: logrus.WithFields(fields)}
}

// With adds more fields to the entry.
func (e Entry) With(fields Fields) Entry {
	return Entry{entry: e.entry.WithFields(fields)}
}

// WithError attaches err under the standard "error" field.
func (e Entry) WithError(err error) Entry {
	return Entry{entry: e.entry.WithError(err)}
}

func (e Entry) Error(args ...any) {
	if enabled {
		e.entry.Error(args...)
	}
}

func (e Entry) Warn(args ...any) {
	if enabled {
		e.entry.Warn(args...)
	}
}

func (e Entry) Info(args ...any) {
	if enabled {
		e.entry.Info(args...)
	}
}

func (e Entry) Debug(args ...any) {
	if enabled {
		e.entry.Debug(args...)
	}
}

// Error logs at error level without fields.
func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}
