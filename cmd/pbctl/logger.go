package main

import (
	"github.com/pebbleos/bootcore/corelog"
	"github.com/sirupsen/logrus"
)

// logrusLogger adapts *logrus.Logger to corelog.Logger, the small
// interface every core package depends on.
type logrusLogger struct {
	l *logrus.Logger
}

func newLogrusLogger(debug bool) corelog.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return &logrusLogger{l: l}
}

func (a *logrusLogger) Debug(msg string, kv ...interface{}) {
	a.l.WithFields(fieldsFrom(kv)).Debug(msg)
}

func (a *logrusLogger) Info(msg string, kv ...interface{}) {
	a.l.WithFields(fieldsFrom(kv)).Info(msg)
}

func (a *logrusLogger) Error(msg string, kv ...interface{}) {
	a.l.WithFields(fieldsFrom(kv)).Error(msg)
}

// fieldsFrom turns a flat key,value,key,value... slice into logrus
// fields, matching the call convention bootloader.Logger established in
// the teacher package.
func fieldsFrom(kv []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields[key] = kv[i+1]
	}
	return fields
}
