package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{name: "debug level with text format", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info level with json format", level: "info", format: "json", expectLevel: logrus.InfoLevel},
		{name: "upper case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "invalid", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.Level())

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterWithOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithOutput("info", "json", &buf)

	logger.Info("classification served", F(FieldCategory, "Billing Issue"))

	assert.Contains(t, buf.String(), `"category":"Billing Issue"`)
	assert.Contains(t, buf.String(), `"msg":"classification served"`)
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		existing := logrus.New()
		existing.SetLevel(logrus.DebugLevel)

		adapter, ok := NewLogrusAdapterFromLogger(existing).(*LogrusAdapter)
		require.True(t, ok)
		assert.Equal(t, existing, adapter.logger)
	})

	t.Run("with nil logger creates new one", func(t *testing.T) {
		adapter, ok := NewLogrusAdapterFromLogger(nil).(*LogrusAdapter)
		require.True(t, ok)
		assert.NotNil(t, adapter.logger)
	})
}

func TestLogrusAdapter_LoggingMethods(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...Field)
		message string
		fields  []Field
	}{
		{
			name:    "Debug with fields",
			logFunc: func(l Logger, msg string, fields ...Field) { l.Debug(msg, fields...) },
			message: "debug message",
			fields:  []Field{{Key: "key1", Value: "value1"}},
		},
		{
			name:    "Info with fields",
			logFunc: func(l Logger, msg string, fields ...Field) { l.Info(msg, fields...) },
			message: "info message",
			fields:  []Field{{Key: "key2", Value: "value2"}},
		},
		{
			name:    "Warn with fields",
			logFunc: func(l Logger, msg string, fields ...Field) { l.Warn(msg, fields...) },
			message: "warn message",
			fields:  []Field{{Key: "key3", Value: "value3"}},
		},
		{
			name:    "Error with fields",
			logFunc: func(l Logger, msg string, fields ...Field) { l.Error(msg, fields...) },
			message: "error message",
			fields:  []Field{{Key: "key4", Value: "value4"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedLogger(logrus.DebugLevel)

			tt.logFunc(logger, tt.message, tt.fields...)

			output := buf.String()
			assert.Contains(t, output, tt.message)
			assert.Contains(t, output, tt.fields[0].Key)
		})
	}
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.InfoLevel)
	testErr := errors.New("quota exceeded")

	logger.
		WithField(FieldRequestID, "req-1").
		WithFields(F(FieldModel, "gemini-1.5-flash")).
		WithError(testErr).
		Error("model call failed")

	output := buf.String()
	assert.Contains(t, output, "model call failed")
	assert.Contains(t, output, "req-1")
	assert.Contains(t, output, "gemini-1.5-flash")
	assert.Contains(t, output, "quota exceeded")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.WarnLevel)

	logger.Info("hidden")
	logger.Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestConvertFields(t *testing.T) {
	logrusFields := convertFields([]Field{
		{Key: "key1", Value: "value1"},
		{Key: "key2", Value: 42},
		{Key: "key3", Value: true},
	})

	assert.Len(t, logrusFields, 3)
	assert.Equal(t, "value1", logrusFields["key1"])
	assert.Equal(t, 42, logrusFields["key2"])
	assert.Equal(t, true, logrusFields["key3"])
	assert.Len(t, convertFields(nil), 0)
}

func TestFieldConstants(t *testing.T) {
	assert.Equal(t, "request_id", FieldRequestID)
	assert.Equal(t, "category", FieldCategory)
	assert.Equal(t, "model", FieldModel)
	assert.Equal(t, "duration_ms", FieldDuration)
	assert.Equal(t, "input_file", FieldInputFile)
	assert.Equal(t, "output_file", FieldOutputFile)
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
