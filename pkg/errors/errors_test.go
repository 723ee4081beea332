package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidFormat, "unknown format %q", "svg"),
			want: `INVALID_FORMAT: unknown format "svg"`,
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInvalidConfig, errors.New("line 3: bad key"), "load %s", "layout.toml"),
			want: "INVALID_CONFIG: load layout.toml: line 3: bad key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "read flow.mmd")

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false")
	}
	if errors.Unwrap(err) != fs.ErrNotExist {
		t.Errorf("Unwrap() = %v, want fs.ErrNotExist", errors.Unwrap(err))
	}
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeInvalidDocument, "null byte")

	tests := []struct {
		name     string
		err      error
		wantCode Code
		wantMsg  string
	}{
		{"coded", New(ErrCodeTooLarge, "source exceeds limit"), ErrCodeTooLarge, "source exceeds limit"},
		{"fmt wrapped", fmt.Errorf("documents[1]: %w", inner), ErrCodeInvalidDocument, "null byte"},
		{"outermost wins", Wrap(ErrCodeInvalidInput, inner, "batch"), ErrCodeInvalidInput, "batch"},
		{"plain", errors.New("disk full"), "", "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
			if tt.wantCode != "" && !Is(tt.err, tt.wantCode) {
				t.Errorf("Is(err, %q) = false", tt.wantCode)
			}
		})
	}
}

func TestIsRejects(t *testing.T) {
	if Is(nil, ErrCodeInvalidInput) {
		t.Error("Is(nil) = true")
	}
	if Is(errors.New("plain"), "") {
		t.Error("Is(plain, \"\") = true")
	}
	if Is(New(ErrCodeInvalidInput, "x"), ErrCodeInvalidFormat) {
		t.Error("Is matched a different code")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidInput, "x"), 400},
		{New(ErrCodeInvalidFormat, "x"), 400},
		{Wrap(ErrCodeInvalidConfig, errors.New("cause"), "x"), 400},
		{New(ErrCodeInvalidDocument, "x"), 400},
		{New(ErrCodeInvalidPath, "x"), 400},
		{New(ErrCodeTooLarge, "x"), 413},
		{New(ErrCodeFileNotFound, "x"), 404},
		{New(ErrCodeInternal, "x"), 500},
		{errors.New("plain"), 500},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
