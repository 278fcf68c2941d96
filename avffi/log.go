package avffi

/*
#include <libavutil/log.h>

extern void ffavSetLogCallback(void);
extern void ffavResetLogCallback(void);
*/
import "C"

import (
	"strings"
	"sync"

	"github.com/xaionaro-go/ffav/logger"
)

// LogLevel mirrors the AV_LOG_* levels.
type LogLevel int

const (
	LogLevelQuiet   = LogLevel(C.AV_LOG_QUIET)
	LogLevelPanic   = LogLevel(C.AV_LOG_PANIC)
	LogLevelFatal   = LogLevel(C.AV_LOG_FATAL)
	LogLevelError   = LogLevel(C.AV_LOG_ERROR)
	LogLevelWarning = LogLevel(C.AV_LOG_WARNING)
	LogLevelInfo    = LogLevel(C.AV_LOG_INFO)
	LogLevelVerbose = LogLevel(C.AV_LOG_VERBOSE)
	LogLevelDebug   = LogLevel(C.AV_LOG_DEBUG)
	LogLevelTrace   = LogLevel(C.AV_LOG_TRACE)
)

func SetLogLevel(level LogLevel) {
	C.av_log_set_level(C.int(level))
}

func GetLogLevel() LogLevel {
	return LogLevel(C.av_log_get_level())
}

// LogCallback receives one formatted FFmpeg log line, trailing newline
// included.
type LogCallback func(level LogLevel, msg string)

var (
	logCallbackLocker sync.Mutex
	logCallback       LogCallback
)

// SetLogCallback routes FFmpeg's log through cb; nil restores the default
// stderr logger. Lines above the level set by SetLogLevel are dropped
// before reaching cb.
func SetLogCallback(cb LogCallback) {
	logCallbackLocker.Lock()
	defer logCallbackLocker.Unlock()
	logCallback = cb
	if cb == nil {
		C.ffavResetLogCallback()
		return
	}
	C.ffavSetLogCallback()
}

//export ffavGoLogCallback
func ffavGoLogCallback(level C.int, msg *C.char) {
	logCallbackLocker.Lock()
	cb := logCallback
	logCallbackLocker.Unlock()
	if cb == nil {
		return
	}
	cb(LogLevel(level), C.GoString(msg))
}

// LogLevelFromLogger returns the FFmpeg level showing the same messages as
// the given logger level.
func LogLevelFromLogger(level logger.Level) LogLevel {
	switch level {
	case logger.LevelFatal:
		return LogLevelFatal
	case logger.LevelPanic:
		return LogLevelPanic
	case logger.LevelError:
		return LogLevelError
	case logger.LevelWarning:
		return LogLevelWarning
	case logger.LevelInfo:
		return LogLevelInfo
	case logger.LevelDebug:
		return LogLevelVerbose
	case logger.LevelTrace:
		return LogLevelTrace
	default:
		return LogLevelWarning
	}
}

func (level LogLevel) Logger() logger.Level {
	switch {
	case level <= LogLevelQuiet:
		return logger.LevelUndefined
	case level <= LogLevelPanic:
		return logger.LevelPanic
	case level <= LogLevelFatal:
		return logger.LevelFatal
	case level <= LogLevelError:
		return logger.LevelError
	case level <= LogLevelWarning:
		return logger.LevelWarning
	case level <= LogLevelInfo:
		return logger.LevelInfo
	case level <= LogLevelVerbose:
		return logger.LevelDebug
	default:
		return logger.LevelTrace
	}
}

func (level LogLevel) String() string {
	switch {
	case level <= LogLevelQuiet:
		return "quiet"
	case level <= LogLevelPanic:
		return "panic"
	case level <= LogLevelFatal:
		return "fatal"
	case level <= LogLevelError:
		return "error"
	case level <= LogLevelWarning:
		return "warning"
	case level <= LogLevelInfo:
		return "info"
	case level <= LogLevelVerbose:
		return "verbose"
	case level <= LogLevelDebug:
		return "debug"
	default:
		return "trace"
	}
}

// TrimLogLine strips the trailing newline FFmpeg puts on most lines.
func TrimLogLine(msg string) string {
	return strings.TrimRight(msg, "\r\n")
}
