package logging

import "sync"

// MockLogger is a Logger that records entries for assertions in tests.
// Loggers derived through WithField/WithFields/WithError share the same record.
type MockLogger struct {
	record        *entryRecord
	pendingError  error
	pendingFields []Field
}

// LogEntry represents a single log entry captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

type entryRecord struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{record: &entryRecord{}}
}

func (m *MockLogger) add(level, msg string, fields []Field) {
	if m.record == nil {
		m.record = &entryRecord{}
	}
	all := make([]Field, 0, len(m.pendingFields)+len(fields))
	all = append(all, m.pendingFields...)
	all = append(all, fields...)

	m.record.mu.Lock()
	defer m.record.mu.Unlock()
	m.record.entries = append(m.record.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.pendingError,
	})
}

// Debug records a debug-level entry.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.add("DEBUG", msg, fields) }

// Info records an info-level entry.
func (m *MockLogger) Info(msg string, fields ...Field) { m.add("INFO", msg, fields) }

// Warn records a warning-level entry.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.add("WARN", msg, fields) }

// Error records an error-level entry.
func (m *MockLogger) Error(msg string, fields ...Field) { m.add("ERROR", msg, fields) }

// WithError returns a derived logger with an error attached.
func (m *MockLogger) WithError(err error) Logger {
	if m.record == nil {
		m.record = &entryRecord{}
	}
	return &MockLogger{
		record:        m.record,
		pendingError:  err,
		pendingFields: m.pendingFields,
	}
}

// WithField returns a derived logger with a single field attached.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a derived logger with multiple fields attached.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	if m.record == nil {
		m.record = &entryRecord{}
	}
	all := make([]Field, 0, len(m.pendingFields)+len(fields))
	all = append(all, m.pendingFields...)
	all = append(all, fields...)
	return &MockLogger{
		record:        m.record,
		pendingError:  m.pendingError,
		pendingFields: all,
	}
}

// GetEntries returns a copy of all captured log entries.
func (m *MockLogger) GetEntries() []LogEntry {
	if m.record == nil {
		return nil
	}
	m.record.mu.Lock()
	defer m.record.mu.Unlock()
	out := make([]LogEntry, len(m.record.entries))
	copy(out, m.record.entries)
	return out
}

// GetEntriesByLevel returns all log entries of a specific level.
func (m *MockLogger) GetEntriesByLevel(level string) []LogEntry {
	var entries []LogEntry
	for _, entry := range m.GetEntries() {
		if entry.Level == level {
			entries = append(entries, entry)
		}
	}
	return entries
}

// HasEntry checks if a log entry with the given level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.GetEntries() {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}

// Clear removes all captured log entries.
func (m *MockLogger) Clear() {
	if m.record == nil {
		return
	}
	m.record.mu.Lock()
	m.record.entries = nil
	m.record.mu.Unlock()
}
