package logging

import "testing"

func TestNewDefaultsAreValid(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Sync()
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected an error for an unsupported log format")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "not-a-level"}); err == nil {
		t.Fatal("expected an error for an unrecognized log level")
	}
}
