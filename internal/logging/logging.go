package logging

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelNone
)

var (
	mx      sync.Mutex
	out     io.Writer = os.Stderr
	current           = LevelWarning

	debug   *log.Logger
	info    *log.Logger
	warning *log.Logger
	failure *log.Logger
)

func init() {
	flags := log.Ldate | log.Ltime | log.LUTC
	debug = log.New(io.Discard, "D ", flags)
	info = log.New(io.Discard, "I ", flags)
	warning = log.New(io.Discard, "W ", flags)
	failure = log.New(io.Discard, "E ", flags)

	SetLevel(LevelWarning)
}

// ParseLevel maps a level name ("debug", "info", "warning", "error") to a
// Level. Unknown names disable logging.
func ParseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warning", "warn":
		return LevelWarning
	case "error":
		return LevelError
	default:
		return LevelNone
	}
}

func SetLevel(l Level) {
	mx.Lock()
	defer mx.Unlock()
	current = l
	apply()
}

// SetOutput redirects all enabled levels to w.
func SetOutput(w io.Writer) {
	mx.Lock()
	defer mx.Unlock()
	out = w
	apply()
}

func apply() {
	loggers := []*log.Logger{debug, info, warning, failure}
	for i, l := range loggers {
		if Level(i) >= current {
			l.SetOutput(out)
		} else {
			l.SetOutput(io.Discard)
		}
	}
}

func Debug(msg string, v ...interface{}) {
	debug.Printf(msg, v...)
}

func Info(msg string, v ...interface{}) {
	info.Printf(msg, v...)
}

func Warning(msg string, v ...interface{}) {
	warning.Printf(msg, v...)
}

func Error(msg string, v ...interface{}) {
	failure.Printf(msg, v...)
}
