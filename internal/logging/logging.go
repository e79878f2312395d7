package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

// Init configures the process logger. Safe to call more than once;
// only the first call takes effect.
func Init(logFile string) {
	once.Do(func() {
		logger = logrus.New()
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		if logFile != "" {
			rotator := &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    50, // megabytes
				MaxBackups: 3,
				MaxAge:     7, // days
				Compress:   true,
			}
			logger.SetOutput(io.MultiWriter(os.Stdout, rotator))
		}
	})
}

// L returns the process logger, initializing a stdout-only logger if
// Init was never called (tests).
func L() *logrus.Logger {
	if logger == nil {
		Init("")
	}
	return logger
}
