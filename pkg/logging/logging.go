package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger. pattern is a strftime pattern for
// a daily log file, empty disables file logging.
func Setup(level, pattern string, console bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("error setting logrus loglevel: %w", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stderr)
	}
	if pattern != "" {
		rl, err := rotatelogs.New(pattern,
			rotatelogs.WithRotationTime(24*time.Hour),
			rotatelogs.WithMaxAge(-1),
			rotatelogs.WithRotationCount(14),
		)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		writers = append(writers, rl)
	}

	switch len(writers) {
	case 0:
		logrus.SetOutput(io.Discard)
	case 1:
		logrus.SetOutput(writers[0])
	default:
		logrus.SetOutput(io.MultiWriter(writers...))
	}
	return nil
}
