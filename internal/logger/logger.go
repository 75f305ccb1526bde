// Package logger builds the application's error logger.  Lines go to
// stderr and to a size-rotated file.
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/iliyamo/fyyur/internal/config"
)

// Logger is a log.Logger that also owns the rotating file behind it.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New returns a logger writing "date time file:line: message" lines to
// stderr and cfg.File.  An empty cfg.File logs to stderr only.
func New(cfg config.LogConfig) *Logger {
	return newWithConsole(cfg, os.Stderr)
}

func newWithConsole(cfg config.LogConfig, console io.Writer) *Logger {
	writers := []io.Writer{}
	if console != nil {
		writers = append(writers, console)
	}
	l := &Logger{}
	if cfg.File != "" {
		if dir := filepath.Dir(cfg.File); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		writers = append(writers, l.file)
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}
	l.Logger = log.New(io.MultiWriter(writers...), "", log.LstdFlags|log.Lshortfile)
	return l
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
