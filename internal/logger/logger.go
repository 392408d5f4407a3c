// Package logger configures the shared logrus instance for the taskdeps CLI
// and library.
package logger

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// L returns the shared logger instance.
func L() *logrus.Logger {
	return log
}

// Setup configures level and formatting. Environment variables override CLI
// flags: LOG_MODE=quiet|verbose|debug, LOG_FORMAT=json|text.
func Setup(verbose bool, jsonLogs bool, quiet bool) {
	switch os.Getenv("LOG_MODE") {
	case "quiet":
		quiet = true
		verbose = false
	case "verbose", "debug":
		verbose = true
		quiet = false
	}
	switch os.Getenv("LOG_FORMAT") {
	case "json":
		jsonLogs = true
	case "text":
		jsonLogs = false
	}

	switch {
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	log.SetOutput(os.Stderr)
	if jsonLogs {
		log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	if verbose {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   isatty.IsTerminal(os.Stderr.Fd()),
		})
		return
	}
	log.SetFormatter(&CLIFormatter{
		DisableColors: !isatty.IsTerminal(os.Stderr.Fd()),
	})
}

// CLIFormatter provides clean LEVEL: message output for terminal use.
type CLIFormatter struct {
	DisableColors bool
}

func (f *CLIFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	levelColor := ""
	resetColor := ""
	if !f.DisableColors {
		switch entry.Level {
		case logrus.ErrorLevel:
			levelColor = "\033[31m" // Red
		case logrus.WarnLevel:
			levelColor = "\033[33m" // Yellow
		case logrus.InfoLevel:
			levelColor = "\033[36m" // Cyan
		case logrus.DebugLevel:
			levelColor = "\033[37m" // White
		}
		resetColor = "\033[0m"
	}

	b.WriteString(levelColor)
	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString(resetColor)
	b.WriteString(": ")
	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		b.WriteString(" ")
		for k, v := range entry.Data {
			b.WriteString(fmt.Sprintf("%s=%v ", k, v))
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Convenience helpers delegating to the shared instance.

func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithField creates an entry with a single field.
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}
