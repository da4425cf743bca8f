package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer lets the spinner goroutine and the test share a buffer.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerStartStop(t *testing.T) {
	var buf syncBuffer
	spinner := NewSpinner(&buf, SpinnerOptions{
		Message:  "Зареждане",
		NoColor:  true,
		Interval: 10 * time.Millisecond,
	})

	spinner.Start()
	spinner.Start()
	time.Sleep(60 * time.Millisecond)
	spinner.UpdateMessage("Почти готово")
	time.Sleep(40 * time.Millisecond)
	spinner.Stop()
	spinner.Stop()

	out := buf.String()
	if !strings.Contains(out, "Зареждане") {
		t.Errorf("Expected spinner to show message, got: %q", out)
	}
	if !strings.Contains(out, "Почти готово") {
		t.Errorf("Expected updated message, got: %q", out)
	}
	if !strings.HasSuffix(out, "\r\033[K") {
		t.Errorf("Expected spinner to clear the line on stop, got: %q", out)
	}
}

func TestSpinnerSuccessAndError(t *testing.T) {
	var buf syncBuffer
	spinner := NewSpinner(&buf, SpinnerOptions{NoColor: true})
	spinner.Start()
	spinner.Success("Готово")
	if !strings.HasSuffix(buf.String(), "✓ Готово\n") {
		t.Errorf("Success output = %q", buf.String())
	}

	var errBuf syncBuffer
	spinner = NewSpinner(&errBuf, SpinnerOptions{NoColor: true})
	spinner.Error("Неуспешно")
	if !strings.Contains(errBuf.String(), "❌ Неуспешно") {
		t.Errorf("Error output = %q", errBuf.String())
	}
}

func TestWithSpinner(t *testing.T) {
	var buf syncBuffer
	ran := false
	WithSpinner(&buf, "x", false, true, func() { ran = true })
	if !ran {
		t.Fatal("fn did not run")
	}
	if buf.String() != "" {
		t.Errorf("disabled spinner wrote %q", buf.String())
	}

	WithSpinner(&buf, "x", true, true, func() {})
	if !strings.HasSuffix(buf.String(), "\r\033[K") {
		t.Errorf("enabled spinner did not clear the line: %q", buf.String())
	}
}
