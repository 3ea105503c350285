package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// InitLogger sets the level of the process-wide logger.
func InitLogger(level logrus.Level) {
	logger.SetLevel(level)
}

// GetLogger returns the process-wide logger. It is usable before InitLogger is called.
func GetLogger() *logrus.Logger {
	return logger
}

// ParseLevel converts a config string such as "debug" into a logrus level,
// falling back to info for unknown values.
func ParseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		logger.Warnf("Unknown log level %q, using info", s)
		return logrus.InfoLevel
	}
	return level
}
