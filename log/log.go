// Package log wraps logrus with the application's output, format and level settings.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cinelink/cinelink/filesystem"
	"github.com/cinelink/cinelink/key"
	"github.com/cinelink/cinelink/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Setup configures output, formatter and level from the logs.* keys.
// Logs go to stderr unless logs.write redirects them to a dated file.
func Setup() error {
	if viper.GetBool(key.LogsWrite) {
		filename := fmt.Sprintf("%s.log", time.Now().Format("2006-01-02"))
		path := filepath.Join(where.Logs(), filename)

		f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logrus.SetOutput(f)
	} else {
		logrus.SetOutput(os.Stderr)
	}

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

// Fields is an alias so callers need not import logrus for structured logging.
type Fields = logrus.Fields

// WithFields starts a structured entry.
func WithFields(fields Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

func Error(args ...interface{}) {
	logrus.Error(args...)
}
func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}
func Warn(args ...interface{}) {
	logrus.Warn(args...)
}
func Warnf(format string, args ...interface{}) {
	logrus.Warnf(format, args...)
}
func Info(args ...interface{}) {
	logrus.Info(args...)
}
func Infof(format string, args ...interface{}) {
	logrus.Infof(format, args...)
}
func Debug(args ...interface{}) {
	logrus.Debug(args...)
}
func Debugf(format string, args ...interface{}) {
	logrus.Debugf(format, args...)
}
