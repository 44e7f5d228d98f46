package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

const defaultLevel = logrus.InfoLevel

// Logrus builds component loggers that share one level, output and run id
type Logrus struct {
	level  string
	output io.Writer
	runID  string
}

// NewLogrus creates a new logrus factory
func NewLogrus(level string, output io.Writer) *Logrus {
	return &Logrus{level: level, output: output}
}

// WithRunID tags every logger created afterwards with the maceration run id
func (l *Logrus) WithRunID(runID string) *Logrus {
	return &Logrus{level: l.level, output: l.output, runID: runID}
}

// Get returns a logrus entry for the given component
func (l *Logrus) Get(context string) *logrus.Entry {
	log := logrus.New()
	level, err := logrus.ParseLevel(l.level)
	if err != nil {
		level = defaultLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(l.output)

	fields := logrus.Fields{
		"Context": context,
	}
	if l.runID != "" {
		fields["Run"] = l.runID
	}
	return log.WithFields(fields)
}
