package internal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestShowProgress(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		fn      func() error
		wantErr bool
	}{
		{
			name:    "successful function",
			message: "Testing",
			fn: func() error {
				return nil
			},
			wantErr: false,
		},
		{
			name:    "function with error",
			message: "Testing error",
			fn: func() error {
				return errors.New("test error")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShowProgress(ctx, tt.message, tt.fn)
			if (err != nil) != tt.wantErr {
				t.Errorf("ShowProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShowProgressSpinner(t *testing.T) {
	var buf bytes.Buffer
	err := showProgressSpinner(context.Background(), &buf, "Sending", func() error {
		time.Sleep(150 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatalf("showProgressSpinner() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Sending") {
		t.Errorf("spinner output should contain message, got %q", buf.String())
	}
}

func TestShowProgressSpinner_WaitsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	finished := false
	var buf bytes.Buffer
	err := showProgressSpinner(ctx, &buf, "Slow", func() error {
		time.Sleep(150 * time.Millisecond)
		finished = true
		return nil
	})
	if err != nil {
		t.Errorf("showProgressSpinner() error = %v", err)
	}
	if !finished {
		t.Error("spinner must wait for the in-flight call to complete")
	}
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf, "ok")
	PrintError(&buf, "bad")
	PrintInfo(&buf, "info")
	PrintWarning(&buf, "careful")

	want := "ok\nbad\ninfo\nWARNING: careful\n"
	if buf.String() != want {
		t.Errorf("print helpers wrote %q, want %q", buf.String(), want)
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
