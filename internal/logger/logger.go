package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
}

// Logger writes colored lines to the terminal and, when a log file could
// be opened, one JSON object per line to logs/eventgo-<date>.log.
type Logger struct {
	logFile *os.File
	silent  bool
}

func NewLogger() *Logger {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("logger: cannot create logs directory: %v", err)
		return &Logger{}
	}

	name := fmt.Sprintf("logs/eventgo-%s.log", time.Now().Format("2006-01-02"))
	logFile, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("logger: cannot open %s: %v", name, err)
		return &Logger{}
	}
	return &Logger{logFile: logFile}
}

// NewSilent returns a logger that discards everything. Used by tests.
func NewSilent() *Logger {
	return &Logger{silent: true}
}

func (l *Logger) log(level LogLevel, category, message string) {
	if l == nil || l.silent {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     levelToString(level),
		Category:  strings.ToUpper(category),
		Message:   message,
	}

	fmt.Print(formatTerminal(entry))

	if l.logFile != nil {
		jsonBytes, _ := json.Marshal(entry)
		l.logFile.WriteString(string(jsonBytes) + "\n")
	}
}

func formatTerminal(entry LogEntry) string {
	var attr color.Attribute
	switch entry.Level {
	case "DEBUG":
		attr = color.FgCyan
	case "WARN":
		attr = color.FgYellow
	case "ERROR":
		attr = color.FgRed
	default:
		attr = color.FgGreen
	}

	timeStr := color.New(color.FgBlue).Sprint(entry.Timestamp[11:19])
	levelStr := color.New(attr).Sprintf("%-5s", entry.Level)
	categoryStr := color.New(attr, color.Bold).Sprintf("[%-10s]", entry.Category)
	return fmt.Sprintf("%s %s %s %s\n", timeStr, levelStr, categoryStr, entry.Message)
}

func levelToString(level LogLevel) string {
	switch level {
	case DEBUG:
		return "DEBUG"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) Debug(category, message string) { l.log(DEBUG, category, message) }
func (l *Logger) Info(category, message string)  { l.log(INFO, category, message) }
func (l *Logger) Warn(category, message string)  { l.log(WARN, category, message) }
func (l *Logger) Error(category, message string) { l.log(ERROR, category, message) }

func (l *Logger) Close() {
	if l != nil && l.logFile != nil {
		l.logFile.Close()
	}
}
