package parex

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	underlying := errors.New("boom")

	cases := []struct {
		name string
		err  error
	}{
		{"ConfigError", &ConfigError{Dir: "/nope", Err: underlying}},
		{"SpawnError", &SpawnError{Command: "ls", Err: underlying}},
		{"MultiplexError", &MultiplexError{Err: underlying}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, underlying) {
				t.Errorf("%v does not unwrap to its cause", tc.err)
			}
			if !strings.HasPrefix(tc.err.Error(), "parex ") {
				t.Errorf("message %q lacks parex prefix", tc.err.Error())
			}
		})
	}
}

func TestMultiError(t *testing.T) {
	merr := &MultiError{}

	if merr.Err() != nil {
		t.Error("empty MultiError should yield nil")
	}

	merr.Add(nil)
	if merr.Err() != nil {
		t.Error("Add(nil) should not accumulate")
	}

	merr.Add(io.EOF)
	if merr.Err() == nil {
		t.Fatal("expected error after Add")
	}
	if merr.Error() != io.EOF.Error() {
		t.Errorf("single-error message = %q, want %q", merr.Error(), io.EOF.Error())
	}

	merr.Add(io.ErrUnexpectedEOF)
	if merr.Error() != "2 errors occurred" {
		t.Errorf("message = %q, want %q", merr.Error(), "2 errors occurred")
	}
}
