package main

import (
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the process-wide logger. When logFile is empty,
// output goes to stderr only; otherwise it's duplicated to a rotating
// file sink, the way gcsfuse pairs lumberjack.Logger with its own
// stderr writer.
func newLogger(logFile string) *log.Logger {
	runID := uuid.New().String()

	var out io.Writer = os.Stderr
	if logFile != "" {
		rotating := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stderr, rotating)
	}

	return log.New(out, "lockfsctl["+runID[:8]+"] ", log.LstdFlags|log.Lmicroseconds)
}
