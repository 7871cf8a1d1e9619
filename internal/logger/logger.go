package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config selects the level, format and destination of the global logger
type Config struct {
	Level   string // DEBUG, INFO, WARN, ERROR
	Format  string // text or json
	File    string // empty means stderr, or the default log file in TUI mode
	TUIMode bool   // stderr would corrupt the terminal UI, so log to a file
}

var (
	mu        sync.RWMutex
	logger    *slog.Logger
	logLevel  slog.Level
	logFormat string
	logFile   string
	tuiMode   bool
	output    io.Closer
)

func init() {
	Initialize()
}

// Initialize configures the logger from LOG_LEVEL, LOG_FORMAT and WIDESCREEN_DEBUG
func Initialize() {
	_ = InitializeWithConfig(ConfigFromEnv())
}

// ConfigFromEnv reads the logger configuration from the environment
func ConfigFromEnv() Config {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = os.Getenv("WIDESCREEN_DEBUG")
		if levelStr == "1" || levelStr == "true" {
			levelStr = "DEBUG"
		} else {
			levelStr = "INFO"
		}
	}
	return Config{
		Level:  levelStr,
		Format: os.Getenv("LOG_FORMAT"),
		File:   os.Getenv("LOG_FILE"),
	}
}

// InitializeWithConfig replaces the global logger. In TUI mode without an
// explicit file, logs go to ~/.widescreen/logs/widescreen.log.
func InitializeWithConfig(cfg Config) error {
	level := ParseLevel(cfg.Level)
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "text"
	}

	file := cfg.File
	if file == "" && cfg.TUIMode {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		file = filepath.Join(home, ".widescreen", "logs", "widescreen.log")
	}

	var w io.Writer = os.Stderr
	var closer io.Closer
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	defer mu.Unlock()
	if output != nil {
		_ = output.Close()
	}
	logger = slog.New(handler)
	logLevel = level
	logFormat = format
	logFile = file
	tuiMode = cfg.TUIMode
	output = closer
	return nil
}

// ParseLevel maps a level name to a slog level, defaulting to INFO
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close closes the log file, if any, and falls back to stderr
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if output == nil {
		return nil
	}
	err := output.Close()
	output = nil
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	return err
}

func GetLogger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func GetLevel() slog.Level {
	mu.RLock()
	defer mu.RUnlock()
	return logLevel
}

func GetFormat() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFormat
}

func GetLogFile() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFile
}

func IsTUIMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return tuiMode
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}
