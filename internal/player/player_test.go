package player

import (
	"context"
	"testing"

	"chime/internal/model"
)

func TestEmbedURL(t *testing.T) {
	got := EmbedURL("dQw4w9WgXcQ")
	want := "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1&controls=1&rel=0"
	if got != want {
		t.Errorf("EmbedURL = %q, want %q", got, want)
	}
}

func TestThumbnailURL(t *testing.T) {
	got := ThumbnailURL("dQw4w9WgXcQ")
	want := "https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg"
	if got != want {
		t.Errorf("ThumbnailURL = %q, want %q", got, want)
	}
}

func TestPlayEmptyMediaID(t *testing.T) {
	p := NewExecPlayer("true")
	err := p.Play(context.Background(), "")
	if model.ErrorCode(err) != model.ErrPlayback {
		t.Fatalf("expected playback error, got %v", err)
	}
}

func TestPlayLifecycle(t *testing.T) {
	p := NewExecPlayer("true")
	if p.State() != StateIdle {
		t.Fatalf("expected idle, got %s", p.State())
	}
	if err := p.Play(context.Background(), "abc123"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if p.State() != StatePlaying {
		t.Errorf("expected playing, got %s", p.State())
	}
	p.Stop()
	if p.State() != StateEnded {
		t.Errorf("expected ended, got %s", p.State())
	}
}

func TestPlayMissingOpener(t *testing.T) {
	p := NewExecPlayer("/nonexistent/opener-command")
	err := p.Play(context.Background(), "abc123")
	if model.ErrorCode(err) != model.ErrPlayback {
		t.Fatalf("expected playback error, got %v", err)
	}
	if p.State() != StateError {
		t.Errorf("expected error state, got %s", p.State())
	}
}
