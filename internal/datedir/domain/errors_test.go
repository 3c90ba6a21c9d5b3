package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"
)

func TestErrorIsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		kind     Kind
		sentinel error
	}{
		{KindFileSystem, ErrFileSystem},
		{KindInvalidPath, ErrInvalidPath},
		{KindPermissionDenied, ErrPermissionDenied},
		{KindConfiguration, ErrConfiguration},
		{KindUnknown, ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("outer: %w", New(tt.kind, "boom"))
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("expected errors.Is(%v, %v)", err, tt.sentinel)
			}
			if errors.Is(err, ErrFileSystem) && tt.kind != KindFileSystem {
				t.Fatalf("kind %s must not match ErrFileSystem", tt.kind)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := FileSystem("create folder", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
	if err.Error() != "file system error: create folder: disk on fire" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestFromIO(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not exist", &fs.PathError{Op: "stat", Path: "/x", Err: os.ErrNotExist}, KindInvalidPath},
		{"permission", &fs.PathError{Op: "open", Path: "/x", Err: os.ErrPermission}, KindPermissionDenied},
		{"other", errors.New("io"), KindFileSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromIO("op", tt.err).Kind; got != tt.want {
				t.Fatalf("FromIO kind = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKindOfAndParseKind(t *testing.T) {
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Fatalf("foreign errors should be unknown")
	}
	if KindOf(fmt.Errorf("x: %w", InvalidPath("missing"))) != KindInvalidPath {
		t.Fatalf("expected InvalidPath through wrapping")
	}
	for _, k := range []Kind{KindUnknown, KindFileSystem, KindInvalidPath, KindPermissionDenied, KindConfiguration} {
		if ParseKind(k.String()) != k {
			t.Fatalf("ParseKind(%q) did not round-trip", k.String())
		}
	}
	if ParseKind("Nonsense") != KindUnknown {
		t.Fatalf("unknown names map to KindUnknown")
	}
	if MessageOf(InvalidPath("folder does not exist")) != "folder does not exist" {
		t.Fatalf("unexpected message")
	}
}
