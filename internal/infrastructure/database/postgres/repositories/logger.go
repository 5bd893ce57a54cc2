package repositories

import (
	"fmt"

	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/logging"
)

// Logger is the minimal logging contract required by repository
// implementations. It is satisfied by most structured-logging libraries.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// nopLogger discards everything. Used when no logger is supplied.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Adapt bridges the platform logger to the repository Logger contract.
func Adapt(l logging.Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return loggerAdapter{inner: l}
}

type loggerAdapter struct {
	inner logging.Logger
}

func (a loggerAdapter) Debug(msg string, kv ...interface{}) { a.inner.Debug(msg, toFields(kv)...) }
func (a loggerAdapter) Info(msg string, kv ...interface{})  { a.inner.Info(msg, toFields(kv)...) }
func (a loggerAdapter) Warn(msg string, kv ...interface{})  { a.inner.Warn(msg, toFields(kv)...) }
func (a loggerAdapter) Error(msg string, kv ...interface{}) { a.inner.Error(msg, toFields(kv)...) }

// toFields pairs up keysAndValues; a trailing odd value gets a generic key.
func toFields(kv []interface{}) []logging.Field {
	fields := make([]logging.Field, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprintf("field_%d", i/2)
		}
		if i+1 < len(kv) {
			fields = append(fields, logging.Any(key, kv[i+1]))
		} else {
			fields = append(fields, logging.Any("value", kv[i]))
		}
	}
	return fields
}

//Personal.AI order the ending
