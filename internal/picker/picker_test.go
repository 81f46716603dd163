package picker

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ncruces/zenity"
)

func TestPatterns(t *testing.T) {
	got := Patterns([]string{".mp4", "MOV", " .avi ", ""})
	want := []string{"*.mp4", "*.mov", "*.avi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestHasExtension(t *testing.T) {
	exts := []string{".mp4", ".avi", ".mov"}
	tests := []struct {
		path string
		want bool
	}{
		{"lift.mp4", true},
		{"LIFT.MOV", true},
		{"/videos/a.avi", true},
		{"notes.txt", false},
		{"mp4", false},
	}
	for _, tt := range tests {
		if got := HasExtension(tt.path, exts); got != tt.want {
			t.Errorf("HasExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	if wrap(nil) != nil {
		t.Error("Expected nil for nil error")
	}
	if !errors.Is(wrap(zenity.ErrCanceled), ErrCanceled) {
		t.Error("Expected cancel mapped to ErrCanceled")
	}
	other := errors.New("no display")
	if err := wrap(other); !errors.Is(err, other) || errors.Is(err, ErrCanceled) {
		t.Errorf("Expected wrapped dialog error, got %v", err)
	}
}
