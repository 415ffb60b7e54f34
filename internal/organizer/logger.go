package organizer

import "time"

// Logger receives pipeline progress messages. The console and file loggers
// in internal/logger satisfy it.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogStageStart(stage string)
	LogStageComplete(stage string, duration time.Duration)
}

type nopLogger struct{}

func (nopLogger) LogTrace(string)                        {}
func (nopLogger) LogDebug(string)                        {}
func (nopLogger) LogInfo(string)                         {}
func (nopLogger) LogWarn(string)                         {}
func (nopLogger) LogError(string)                        {}
func (nopLogger) LogStageStart(string)                   {}
func (nopLogger) LogStageComplete(string, time.Duration) {}

func orNop(log Logger) Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}
