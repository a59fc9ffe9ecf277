package browse

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestRelevantEvent(t *testing.T) {
	s := newTestSession()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"new image", fsnotify.Event{Name: "/pics/a.jpg", Op: fsnotify.Create}, true},
		{"removed image", fsnotify.Event{Name: "/pics/a.jpg", Op: fsnotify.Remove}, true},
		{"moved image", fsnotify.Event{Name: "/pics/a.jpg", Op: fsnotify.Rename}, true},
		{"write only", fsnotify.Event{Name: "/pics/a.jpg", Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: "/pics/a.jpg", Op: fsnotify.Chmod}, false},
		{"hidden file", fsnotify.Event{Name: "/pics/.a.jpg", Op: fsnotify.Create}, false},
		{"non-image", fsnotify.Event{Name: "/pics/notes.txt", Op: fsnotify.Create}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.relevantEvent(tt.event); got != tt.want {
				t.Errorf("relevantEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestEventType(t *testing.T) {
	if got := eventType(fsnotify.Create); got != "create" {
		t.Errorf("eventType(Create) = %q", got)
	}
	if got := eventType(fsnotify.Op(0)); got != "unknown" {
		t.Errorf("eventType(0) = %q", got)
	}
}
