// Package utils
package utils

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

// GetLogger returns the process-wide logger. Output goes to stderr so stdout stays free for results.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return logger
}

// Configure sets the level and format of the process-wide logger.
func Configure(level string, json bool) error {
	l := GetLogger()
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return err
		}
		l.SetLevel(lvl)
	}
	if json {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}
