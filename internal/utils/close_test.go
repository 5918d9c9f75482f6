package utils

import (
	"errors"
	"testing"

	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

type fakeCloser struct {
	err    error
	closed int
}

func (f *fakeCloser) Close() error {
	f.closed++
	return f.err
}

func TestClose(t *testing.T) {
	c := &fakeCloser{err: errors.New("boom")}
	Close(c)
	if c.closed != 1 {
		t.Errorf("closed %d times, want 1", c.closed)
	}
}

func TestCloseLogged(t *testing.T) {
	log := logger.Nop()

	if ok := CloseLogged(&fakeCloser{}, "ok", log); !ok {
		t.Error("CloseLogged() = false for a clean close")
	}
	if ok := CloseLogged(&fakeCloser{err: errors.New("boom")}, "broken", log); ok {
		t.Error("CloseLogged() = true for a failing close")
	}
}
