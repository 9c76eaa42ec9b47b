package logging

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	impl struct {
		name  string
		level AtomicLevel
		inUTC bool

		appenders []Appender
	}

	// LogEntry embeds a zapcore Entry and slice of Fields.
	LogEntry struct {
		zapcore.Entry
		fields []zapcore.Field
	}
)

func (imp *impl) NewLogEntry() *LogEntry {
	ret := &LogEntry{}
	ret.Time = time.Now()
	ret.LoggerName = imp.name
	ret.Caller = getCaller()

	return ret
}

func (imp *impl) AddAppender(appender Appender) {
	imp.appenders = append(imp.appenders, appender)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) GetLevel() Level {
	return imp.level.Get()
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = fmt.Sprintf("%s.%s", imp.name, subname)
	}

	return &impl{
		name:      newName,
		level:     NewAtomicLevelAt(imp.level.Get()),
		inUTC:     imp.inUTC,
		appenders: imp.appenders,
	}
}

func (imp *impl) Sync() error {
	var errs []error
	for _, appender := range imp.appenders {
		if err := appender.Sync(); err != nil {
			errs = append(errs, err)
		}
	}

	return multierr.Combine(errs...)
}

func (imp *impl) shouldLog(logLevel Level) bool {
	return logLevel >= imp.level.Get()
}

func (imp *impl) log(entry *LogEntry) {
	if imp.inUTC {
		entry.Time = entry.Time.UTC()
	}

	for _, appender := range imp.appenders {
		err := appender.Write(entry.Entry, entry.fields)
		if err != nil {
			fmt.Fprint(os.Stderr, err)
		}
	}
}

func (imp *impl) entry(logLevel Level, msg string) *LogEntry {
	logEntry := imp.NewLogEntry()
	logEntry.Level = logLevel.AsZap()
	logEntry.Message = msg
	return logEntry
}

// emit builds and writes an entry only when logLevel passes the current threshold, so message
// formatting is skipped for filtered levels.
func (imp *impl) emit(logLevel Level, build func() *LogEntry) {
	if imp.shouldLog(logLevel) {
		imp.log(build())
	}
}

func (imp *impl) print(logLevel Level, args ...interface{}) {
	imp.emit(logLevel, func() *LogEntry { return imp.entry(logLevel, fmt.Sprint(args...)) })
}

func (imp *impl) printf(logLevel Level, template string, args ...interface{}) {
	imp.emit(logLevel, func() *LogEntry { return imp.entry(logLevel, fmt.Sprintf(template, args...)) })
}

// printw pairs up keysAndValues as zap fields. A trailing key without a value is kept with an
// error in its place.
func (imp *impl) printw(logLevel Level, msg string, keysAndValues ...interface{}) {
	imp.emit(logLevel, func() *LogEntry {
		logEntry := imp.entry(logLevel, msg)
		logEntry.fields = make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
		for i := 0; i < len(keysAndValues); i += 2 {
			key := fmt.Sprint(keysAndValues[i])
			if i+1 == len(keysAndValues) {
				logEntry.fields = append(logEntry.fields, zap.Any(key, errors.New("unpaired log key")))
				break
			}
			logEntry.fields = append(logEntry.fields, zap.Any(key, keysAndValues[i+1]))
		}
		return logEntry
	})
}

func (imp *impl) Debug(args ...interface{}) { imp.print(DEBUG, args...) }

func (imp *impl) Debugf(template string, args ...interface{}) { imp.printf(DEBUG, template, args...) }

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.printw(DEBUG, msg, keysAndValues...)
}

func (imp *impl) Info(args ...interface{}) { imp.print(INFO, args...) }

func (imp *impl) Infof(template string, args ...interface{}) { imp.printf(INFO, template, args...) }

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.printw(INFO, msg, keysAndValues...)
}

func (imp *impl) Warn(args ...interface{}) { imp.print(WARN, args...) }

func (imp *impl) Warnf(template string, args ...interface{}) { imp.printf(WARN, template, args...) }

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.printw(WARN, msg, keysAndValues...)
}

func (imp *impl) Error(args ...interface{}) { imp.print(ERROR, args...) }

func (imp *impl) Errorf(template string, args ...interface{}) { imp.printf(ERROR, template, args...) }

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.printw(ERROR, msg, keysAndValues...)
}

// getCaller reports the code that called an exported Logger method, e.g. "skeleton/loader.go:60".
// skipToLogCaller must change whenever a frame is added between getCaller and that method.
func getCaller() zapcore.EntryCaller {
	var ok bool
	var entryCaller zapcore.EntryCaller
	const skipToLogCaller = 7
	entryCaller.PC, entryCaller.File, entryCaller.Line, ok = runtime.Caller(skipToLogCaller)
	if !ok {
		return entryCaller
	}
	entryCaller.Defined = true

	runtimeFunc := runtime.FuncForPC(entryCaller.PC)
	if runtimeFunc != nil {
		entryCaller.Function = runtimeFunc.Name()
	}

	return entryCaller
}
