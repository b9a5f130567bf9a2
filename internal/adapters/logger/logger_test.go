package logger_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"go.trai.ch/taskmill/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(fn func()) (string, error) {
	originalStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stderr = w

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	if err := w.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	output := <-done

	if err := r.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	os.Stderr = originalStderr

	return output, nil
}

func TestNew_WritesToStderr(t *testing.T) {
	output, err := captureStderr(func() {
		lg := logger.New()
		lg.Info("loaded 12 task rows")
	})
	if err != nil {
		t.Fatalf("Failed to capture stderr: %v", err)
	}

	if !strings.Contains(output, "loaded 12 task rows") {
		t.Errorf("Expected output to contain the message, got: %s", output)
	}
	if !strings.Contains(output, "INFO") {
		t.Errorf("Expected output to contain 'INFO', got: %s", output)
	}
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Warn("product \"Crate\" has no tasks")

	output := buf.String()
	if !strings.Contains(output, "WARN") {
		t.Errorf("Expected output to contain 'WARN', got: %s", output)
	}
	if !strings.Contains(output, "Crate") {
		t.Errorf("Expected output to contain the product, got: %s", output)
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Error(os.ErrPermission)

	output := buf.String()
	if !strings.Contains(output, "permission denied") {
		t.Errorf("Expected output to contain 'permission denied', got: %s", output)
	}
	if !strings.Contains(output, "ERROR") {
		t.Errorf("Expected output to contain 'ERROR', got: %s", output)
	}
}

func TestLogger_ErrorMetadata(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	inner := zerr.With(zerr.New("unknown worker"), "worker", "Mallory")
	lg.Error(zerr.With(zerr.Wrap(inner, "failed to select workers"), "plan", "taskmill.yaml"))

	output := buf.String()
	for _, want := range []string{"worker=Mallory", "plan=taskmill.yaml", "failed to select workers"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	lg := logger.NewWithWriter(&first)

	lg.SetOutput(&second)
	lg.Info("after switch")

	if first.Len() != 0 {
		t.Errorf("Expected first writer to stay empty, got: %s", first.String())
	}
	if !strings.Contains(second.String(), "after switch") {
		t.Errorf("Expected second writer to receive the record, got: %s", second.String())
	}
}
