// Package logutil builds the process logger.
package logutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/datawire/dlib/dlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/Nsfr750/pack/pkg/config"
)

// LevelFlag is a pflag.Value that rejects invalid log levels at parse time
// instead of at first use.
type LevelFlag struct {
	Level string
}

var _ pflag.Value = (*LevelFlag)(nil)

func (f *LevelFlag) String() string { return f.Level }
func (f *LevelFlag) Type() string   { return "LEVEL" }

func (f *LevelFlag) Set(value string) error {
	if _, err := logrus.ParseLevel(value); err != nil {
		return err
	}
	f.Level = value
	return nil
}

// DefaultLogFile is where Logger writes when asked to persist logs without
// an explicit path.
func DefaultLogFile() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pypack.log"), nil
}

// Options configures Logger.
type Options struct {
	// Level names a logrus level ("debug", "info", "warn", ...).  Empty
	// means "info".
	Level string
	// File, when non-empty, additionally appends every log line to the
	// named file.
	File string
}

// Logger builds a dlog.Logger writing human-oriented text to stderr, plus
// the optional log file.
func Logger(opts Options) (dlog.Logger, error) {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.0000",
	}

	level := opts.Level
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logutil: %w", err)
	}
	log.SetLevel(parsed)

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("logutil: %w", err)
		}
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("logutil: %w", err)
		}
		log.SetOutput(io.MultiWriter(os.Stderr, file))
	} else {
		log.SetOutput(os.Stderr)
	}

	return dlog.WrapLogrus(log), nil
}
