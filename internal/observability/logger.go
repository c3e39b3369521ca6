package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType defines the category of the log event.
type EventType string

const (
	EventTypeStage    EventType = "stage"
	EventTypeWeather  EventType = "weather"
	EventTypeLLM      EventType = "llm"
	EventTypeFallback EventType = "fallback"
	EventTypeError    EventType = "error"
)

// Event represents a structured log entry.
type Event struct {
	Type      EventType `json:"type"`
	City      string    `json:"city,omitempty"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Logger handles structured logging.
type Logger struct {
	mu         sync.Mutex
	out        io.Writer
	llmLogPath string
	maxSize    int64
}

// NewLogger writes events to out and mirrors LLM exchanges to llmLogPath.
// An empty llmLogPath disables the file mirror.
func NewLogger(out io.Writer, llmLogPath string, maxSize int64) *Logger {
	if out == nil {
		out = NewTermWriter()
	}
	return &Logger{
		out:        out,
		llmLogPath: llmLogPath,
		maxSize:    maxSize,
	}
}

// NopLogger discards every event.
func NopLogger() *Logger {
	return NewLogger(io.Discard, "", 0)
}

// Log emits a structured JSON event.
func (l *Logger) Log(evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		data = []byte(fmt.Sprintf("{\"error\": \"failed to marshal event: %v\"}", err))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.out, string(data))

	if evt.Type == EventTypeLLM && l.llmLogPath != "" {
		l.writeToFile(data)
	}
}

func (l *Logger) writeToFile(data []byte) {
	if err := os.MkdirAll(filepath.Dir(l.llmLogPath), 0755); err != nil {
		log.Printf("failed to create log directory: %v", err)
		return
	}

	// Check size before writing
	info, err := os.Stat(l.llmLogPath)
	if err == nil && l.maxSize > 0 && info.Size() > l.maxSize {
		l.rotateLogs()
	}

	f, err := os.OpenFile(l.llmLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("failed to open log file: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		log.Printf("failed to write to log file: %v", err)
	}
}

func (l *Logger) rotateLogs() {
	// keep one .old file
	oldPath := l.llmLogPath + ".old"
	_ = os.Remove(oldPath)
	_ = os.Rename(l.llmLogPath, oldPath)
}

// Helper methods for common events

func (l *Logger) LogStage(city, stage, status string) {
	l.Log(Event{
		Type: EventTypeStage,
		City: city,
		Data: map[string]string{
			"stage":  stage,
			"status": status,
		},
	})
}

func (l *Logger) LogWeather(city string, tempC float64, condition string, humidity int, windKph float64) {
	l.Log(Event{
		Type: EventTypeWeather,
		City: city,
		Data: map[string]any{
			"temp_c":      tempC,
			"condition":   condition,
			"humidity":    humidity,
			"wind_kmph":   windKph,
			"description": fmt.Sprintf("%.1f°C, %s, humidity %d%%, wind %.1fkm/h", tempC, condition, humidity, windKph),
		},
	})
}

func (l *Logger) LogLLM(city, model string, prompt any, response string) {
	l.Log(Event{
		Type: EventTypeLLM,
		City: city,
		Data: map[string]any{
			"model":    model,
			"prompt":   prompt,
			"response": response,
		},
	})
}

func (l *Logger) LogFallback(city string, reason error) {
	l.Log(Event{
		Type: EventTypeFallback,
		City: city,
		Data: map[string]string{"reason": reason.Error()},
	})
}

func (l *Logger) LogError(city, stage string, err error) {
	l.Log(Event{
		Type: EventTypeError,
		City: city,
		Data: map[string]string{
			"stage": stage,
			"error": err.Error(),
		},
	})
}
