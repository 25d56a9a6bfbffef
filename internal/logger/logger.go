package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	instance *Logger
	once     sync.Once
)

// Logger provides TUI-safe logging: everything goes to files, never stdout.
// A dedicated persist log keeps an audit trail of committed writes.
type Logger struct {
	fileLogger    *log.Logger
	persistLogger *log.Logger
	logFile       *os.File
	persistFile   *os.File
	mu            sync.Mutex
}

// Init initializes the global logger instance with log files under dir.
func Init(dir string) error {
	var err error
	once.Do(func() {
		instance, err = newLogger(dir)
	})
	return err
}

func newLogger(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	logPath := filepath.Join(dir, "quill.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	persistPath := filepath.Join(dir, "persist.log")
	persistFile, err := os.OpenFile(persistPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("failed to open persist log file: %w", err)
	}

	return &Logger{
		fileLogger:    log.New(logFile, "", log.LstdFlags|log.Lshortfile),
		persistLogger: log.New(persistFile, "", log.LstdFlags),
		logFile:       logFile,
		persistFile:   persistFile,
	}, nil
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	if instance != nil {
		instance.log("INFO", format, args...)
	}
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	if instance != nil {
		instance.log("ERROR", format, args...)
	}
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	if instance != nil {
		instance.log("DEBUG", format, args...)
	}
}

// Tool logs a tool execution message
func Tool(name string, input string) {
	if instance != nil {
		instance.log("TOOL", "%s(%s)", name, input)
	}
}

// Persist records a committed write to the audit log.
func Persist(taskID string, value string) {
	if instance != nil {
		instance.mu.Lock()
		defer instance.mu.Unlock()
		instance.persistLogger.Printf("[COMMIT] task=%s bytes=%d", taskID, len(value))
	}
}

func (l *Logger) log(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	message := fmt.Sprintf(format, args...)
	l.fileLogger.Printf("[%s] %s", level, message)
}

// Close closes both log files
func Close() error {
	if instance != nil {
		var err1, err2 error
		if instance.logFile != nil {
			err1 = instance.logFile.Close()
		}
		if instance.persistFile != nil {
			err2 = instance.persistFile.Close()
		}
		if err1 != nil {
			return err1
		}
		return err2
	}
	return nil
}

// SetOutput allows changing the output destination (useful for testing)
func SetOutput(w io.Writer) {
	if instance != nil {
		instance.mu.Lock()
		defer instance.mu.Unlock()
		instance.fileLogger.SetOutput(w)
	}
}
