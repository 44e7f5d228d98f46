package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestCreateLogger(t *testing.T) {
	level := "info"
	log := NewLogrus(level, os.Stdout)

	assert.Equal(t, log.level, level)
}

func TestGetLogger(t *testing.T) {
	level := "info"
	log := NewLogrus(level, os.Stdout)
	logger := log.Get("Testing")
	assert.Equal(t, logger.Logger.Out, os.Stdout)
	assert.Equal(t, "Testing", logger.Data["Context"])
}

func TestGetLoggerWhenInvalidLevelThenInfo(t *testing.T) {
	logger := NewLogrus("loud", os.Stdout).Get("Testing")
	assert.Equal(t, logrus.InfoLevel, logger.Logger.GetLevel())
}

func TestGetLoggerWithRunID(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogrus("debug", &out).WithRunID("run-1").Get("Controller")
	logger.Debug("tick")
	assert.Equal(t, "run-1", logger.Data["Run"])
	assert.Contains(t, out.String(), "Run=run-1")
	assert.Contains(t, out.String(), "Context=Controller")
}
