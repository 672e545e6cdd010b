package logger

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures a size-rotated log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewFileWriter returns a writer that appends to opts.Path and rotates it
// once it grows past MaxSizeMB. Close it on shutdown.
func NewFileWriter(opts FileOptions) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
}

// TeeToFile sends log output to both the current writer and a rotated file.
// The returned closer releases the file.
func TeeToFile(opts FileOptions) io.Closer {
	fw := NewFileWriter(opts)
	mu.RLock()
	current := out
	mu.RUnlock()
	SetOutput(io.MultiWriter(current, fw))
	return fw
}
