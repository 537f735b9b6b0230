package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Logger writes run-scoped diagnostics to a log file. Each run gets its own
// file and id so interleaved console output can be correlated afterwards.
type Logger struct {
	*log.Logger
	runID string
	file  *os.File
}

// NewLogger creates a logger writing to a fresh file under logDir.
func NewLogger(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runID := uuid.NewString()
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logDir, fmt.Sprintf("run_%s.log", timestamp))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l := &Logger{
		Logger: log.New(file, "", log.LstdFlags),
		runID:  runID,
		file:   file,
	}
	l.Printf("run %s started", runID)
	return l, nil
}

// RunID returns the unique id of this run.
func (l *Logger) RunID() string {
	return l.runID
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// LogLLMInteraction records one text-generation call with its input, output,
// and error, if any.
func (l *Logger) LogLLMInteraction(operation string, input interface{}, output interface{}, err error) {
	l.Printf("[%s] LLM Operation: %s\n", l.runID, operation)
	l.Printf("Input: %+v\n", input)
	if err != nil {
		l.Printf("Error: %v\n", err)
	} else {
		l.Printf("Output: %+v\n", output)
	}
	l.Println("---")
}

// LogRequest records one dispatched HTTP request and the response status.
func (l *Logger) LogRequest(method, url string, status int, err error) {
	if err != nil {
		l.Printf("[%s] %s %s failed: %v\n", l.runID, method, url, err)
		return
	}
	l.Printf("[%s] %s %s -> %d\n", l.runID, method, url, status)
}
