package log

import "go.uber.org/zap"

// Log returns the current sugared logger.
func Log() *zap.SugaredLogger {
	return sugaredlogger
}

// Mode returns the current log mode: ModeSimple or ModeFull.
func Mode() string {
	return currentMode
}

// Init set the log options for debugging.
func Init(opt *Options) error {
	opt = opt.merge()
	sinkType, err := GetSinkType(opt.Sink)
	if err != nil {
		return err
	}
	switch sinkType {
	case SinkFile:
		return InitFileLog(opt.Mode, opt.Level, opt.Filename)
	case SinkMulti:
		return InitMultiLog(opt.Mode, opt.Level, opt.Filename)
	default:
		return InitConsoleLog(opt.Mode, opt.Level)
	}
}

// Debugf uses fmt.Sprintf to log a templated message.
func Debugf(format string, args ...any) {
	sugaredlogger.Debugf(format, args...)
}

// Infof uses fmt.Sprintf to log a templated message.
func Infof(format string, args ...any) {
	sugaredlogger.Infof(format, args...)
}

// Warnf uses fmt.Sprintf to log a templated message.
func Warnf(format string, args ...any) {
	sugaredlogger.Warnf(format, args...)
}

// Errorf uses fmt.Sprintf to log a templated message.
func Errorf(format string, args ...any) {
	sugaredlogger.Errorf(format, args...)
}

// Panicf uses fmt.Sprintf to log a templated message, then panics.
func Panicf(format string, args ...any) {
	sugaredlogger.Panicf(format, args...)
}

// Fatalf uses fmt.Sprintf to log a templated message, then calls os.Exit.
func Fatalf(format string, args ...any) {
	sugaredlogger.Fatalf(format, args...)
}

// Debugw logs a message with some additional context. The variadic key-value
// pairs are treated as they are in With.
func Debugw(msg string, keysAndValues ...any) {
	sugaredlogger.Debugw(msg, keysAndValues...)
}

// Infow logs a message with some additional context. The variadic key-value
// pairs are treated as they are in With.
func Infow(msg string, keysAndValues ...any) {
	sugaredlogger.Infow(msg, keysAndValues...)
}

// Warnw logs a message with some additional context. The variadic key-value
// pairs are treated as they are in With.
func Warnw(msg string, keysAndValues ...any) {
	sugaredlogger.Warnw(msg, keysAndValues...)
}

// Errorw logs a message with some additional context. The variadic key-value
// pairs are treated as they are in With.
func Errorw(msg string, keysAndValues ...any) {
	sugaredlogger.Errorw(msg, keysAndValues...)
}
