package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidKind, "unknown chart kind: %s", "scatter")

	if err.Code != ErrCodeInvalidKind {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidKind)
	}
	if err.Message != "unknown chart kind: scatter" {
		t.Errorf("Message = %v", err.Message)
	}

	want := "INVALID_KIND: unknown chart kind: scatter"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetching chart image")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "matching code",
			err:  New(ErrCodeChartNotFound, "chart %q not stored", "abc"),
			code: ErrCodeChartNotFound,
			want: true,
		},
		{
			name: "non-matching code",
			err:  New(ErrCodeChartNotFound, "chart %q not stored", "abc"),
			code: ErrCodeRender,
			want: false,
		},
		{
			name: "code buried under a wrap",
			err:  Wrap(ErrCodeRender, New(ErrCodePipeline, "formatter failed"), "render"),
			code: ErrCodeRender,
			want: true,
		},
		{
			name: "plain error",
			err:  errors.New("plain error"),
			code: ErrCodeRender,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			code: ErrCodeRender,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{
			name: "coded error",
			err:  New(ErrCodeInvalidDefinition, "series has no values"),
			want: ErrCodeInvalidDefinition,
		},
		{
			name: "plain error",
			err:  errors.New("plain"),
			want: "",
		},
		{
			name: "nil",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "coded error strips the code prefix",
			err:  New(ErrCodeInvalidBackend, "unknown backend: plotter"),
			want: "unknown backend: plotter",
		},
		{
			name: "plain error passes through",
			err:  errors.New("plain error"),
			want: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRateLimitedError(t *testing.T) {
	t.Run("with retry after", func(t *testing.T) {
		err := &RateLimitedError{RetryAfter: 60}
		want := "rate limited: retry after 60 seconds"
		if err.Error() != want {
			t.Errorf("Error() = %v, want %v", err.Error(), want)
		}
	})

	t.Run("without retry after", func(t *testing.T) {
		err := &RateLimitedError{}
		if err.Error() != "rate limited" {
			t.Errorf("Error() = %v", err.Error())
		}
	})

	t.Run("code", func(t *testing.T) {
		err := &RateLimitedError{}
		if err.Code() != ErrCodeRateLimited {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeRateLimited)
		}
	})
}
