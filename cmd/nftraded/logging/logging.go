// Package logging configures the daemon logger and exposes it to the ledger
// as a tendermint logger.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/tendermint/tendermint/libs/log"
)

// New returns a logrus logger writing text lines at given level.
func New(out io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger, nil
}

// TMLogger implements the tendermint logger on top of a logrus entry.
type TMLogger struct {
	entry *logrus.Entry
}

var _ log.Logger = TMLogger{}

// NewTMLogger returns a tendermint logger writing to given logrus logger.
func NewTMLogger(logger logrus.FieldLogger) TMLogger {
	return TMLogger{entry: logger.WithFields(logrus.Fields{})}
}

func (l TMLogger) Debug(msg string, keyvals ...interface{}) {
	l.entry.WithFields(fields(keyvals)).Debug(msg)
}

func (l TMLogger) Info(msg string, keyvals ...interface{}) {
	l.entry.WithFields(fields(keyvals)).Info(msg)
}

func (l TMLogger) Error(msg string, keyvals ...interface{}) {
	l.entry.WithFields(fields(keyvals)).Error(msg)
}

// With returns a logger that always adds given key value pairs.
func (l TMLogger) With(keyvals ...interface{}) log.Logger {
	return TMLogger{entry: l.entry.WithFields(fields(keyvals))}
}

// fields converts alternating keys and values. A key without a value is
// logged with a nil value.
func fields(keyvals []interface{}) logrus.Fields {
	f := make(logrus.Fields, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		var val interface{}
		if i+1 < len(keyvals) {
			val = keyvals[i+1]
		}
		if err, ok := val.(error); ok {
			val = err.Error()
		}
		f[key] = val
	}
	return f
}
