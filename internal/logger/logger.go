package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LevelFor maps a -v count to a logrus level: 0 warn, 1 info, 2+ debug.
func LevelFor(verbosity int) logrus.Level {
	switch {
	case verbosity >= 2:
		return logrus.DebugLevel
	case verbosity == 1:
		return logrus.InfoLevel
	default:
		return logrus.WarnLevel
	}
}

// New builds the logger for one invocation. A nil writer means stderr.
func New(verbosity int, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(LevelFor(verbosity))
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       verbosity < 2,
		FullTimestamp:          true,
		DisableLevelTruncation: true,
	})
	return log
}

// Discard returns a logger that drops everything. Components fall back to it
// when constructed without a logger.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

// OrDiscard returns log, or a discarding logger when log is nil.
func OrDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return Discard()
	}
	return log
}
