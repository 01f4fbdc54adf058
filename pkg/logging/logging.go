// Package logging is the leveled logger shared by the loaders, the page
// builder and the commands. Commands expose the level as -log-level.
package logging

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("level(%d)", int32(l))
	}
	return levelNames[l]
}

// ParseLevel accepts the names printed by String, in any case.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level '%s', want one of %s", s, strings.Join(levelNames[:], ", "))
}

var current = int32(LevelInfo)

var std = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// SetLevel sets the global level by name.
func SetLevel(name string) error {
	l, err := ParseLevel(name)
	if err != nil {
		return err
	}
	atomic.StoreInt32(&current, int32(l))
	return nil
}

func GetLevel() Level { return Level(atomic.LoadInt32(&current)) }

// SetOutput redirects log output.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// levelValue adapts the global level to flag.Value.
type levelValue struct{}

func (levelValue) String() string     { return GetLevel().String() }
func (levelValue) Set(s string) error { return SetLevel(s) }

// RegisterFlag adds -log-level to fs. The level changes as soon as the
// flag is parsed, so an unknown name fails flag parsing.
func RegisterFlag(fs *flag.FlagSet) {
	fs.Var(levelValue{}, "log-level", "debug, info, warn or error")
}

func logf(l Level, format string, args ...interface{}) {
	if GetLevel() > l {
		return
	}
	std.Printf("[%s] %s", strings.ToUpper(l.String()), fmt.Sprintf(format, args...))
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs at debug level how long the phase named label took.
//
//	defer logging.TimeTrack(time.Now(), "page build")
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
