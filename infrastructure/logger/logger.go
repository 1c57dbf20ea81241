// Package logger provides per-subsystem leveled loggers, in the shape every
// other package in this tree expects: call RegisterSubSystem once per
// package to get a logger tagged with that package's short subsystem code,
// then log through its Tracef/Debugf/Infof/Warnf/Errorf/Criticalf methods.
package logger

import (
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/jrick/logrotate/rotator"
)

// Level is a logging severity level
type Level uint32

// The supported logging levels, from least to most severe
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

var levelNames = map[Level]string{
	LevelTrace:    "TRC",
	LevelDebug:    "DBG",
	LevelInfo:     "INF",
	LevelWarn:     "WRN",
	LevelError:    "ERR",
	LevelCritical: "CRT",
}

// LevelFromString parses a level name, defaulting to LevelInfo if unrecognized
func LevelFromString(s string) (Level, bool) {
	switch s {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "critical":
		return LevelCritical, true
	}
	return LevelInfo, false
}

// Backend is the shared destination every subsystem Logger writes through.
// It multiplexes to stdout and, once initialized, a rotating log file.
type Backend struct {
	mtx     sync.Mutex
	rotator *rotator.Rotator
	std     *log.Logger
}

var backend = &Backend{std: log.New(os.Stdout, "", log.Ldate|log.Ltime)}

// InitLogRotator points the backend at a rotating log file in addition to stdout
func InitLogRotator(logFile string, maxRollFiles int) error {
	r, err := rotator.New(logFile, 10*1024, false, maxRollFiles)
	if err != nil {
		return fmt.Errorf("failed to create log rotator: %w", err)
	}
	backend.mtx.Lock()
	backend.rotator = r
	backend.mtx.Unlock()
	return nil
}

func (b *Backend) write(line string) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.std.Output(3, line) //nolint:errcheck
	if b.rotator != nil {
		_, _ = b.rotator.Write([]byte(line + "\n"))
	}
}

// Logger is a single subsystem's leveled logger
type Logger struct {
	tag   string
	level Level
}

var subsystems = struct {
	mtx sync.Mutex
	m   map[string]*Logger
}{m: make(map[string]*Logger)}

// RegisterSubSystem creates (or returns the existing) Logger for the given
// subsystem tag, e.g. "BDAG", "MMGR", "RCHB"
func RegisterSubSystem(tag string) *Logger {
	subsystems.mtx.Lock()
	defer subsystems.mtx.Unlock()
	if existing, ok := subsystems.m[tag]; ok {
		return existing
	}
	l := &Logger{tag: tag, level: LevelInfo}
	subsystems.m[tag] = l
	return l
}

// SetLogLevel sets the level of the named subsystem, if it's been registered
func SetLogLevel(tag string, level string) {
	subsystems.mtx.Lock()
	l, ok := subsystems.m[tag]
	subsystems.mtx.Unlock()
	if !ok {
		return
	}
	if parsed, valid := LevelFromString(level); valid {
		l.SetLevel(parsed)
	}
}

// SetLogLevels sets every registered subsystem to level
func SetLogLevels(level string) {
	subsystems.mtx.Lock()
	tags := make([]string, 0, len(subsystems.m))
	for tag := range subsystems.m {
		tags = append(tags, tag)
	}
	subsystems.mtx.Unlock()
	for _, tag := range tags {
		SetLogLevel(tag, level)
	}
}

// SupportedSubsystems returns the tags of every registered subsystem, sorted
func SupportedSubsystems() []string {
	subsystems.mtx.Lock()
	defer subsystems.mtx.Unlock()
	tags := make([]string, 0, len(subsystems.m))
	for tag := range subsystems.m {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// SetLevel sets this logger's minimum level directly
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	backend.write(fmt.Sprintf("[%s] %s %s", l.tag, levelNames[level], fmt.Sprintf(format, args...)))
}

// Tracef logs at LevelTrace
func (l *Logger) Tracef(format string, args ...interface{}) { l.logf(LevelTrace, format, args...) }

// Debugf logs at LevelDebug
func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }

// Infof logs at LevelInfo
func (l *Logger) Infof(format string, args ...interface{}) { l.logf(LevelInfo, format, args...) }

// Warnf logs at LevelWarn
func (l *Logger) Warnf(format string, args ...interface{}) { l.logf(LevelWarn, format, args...) }

// Errorf logs at LevelError
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

// Criticalf logs at LevelCritical
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.logf(LevelCritical, format, args...)
}
