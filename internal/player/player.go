// Package player models the playback surface for resolved ringtone media.
package player

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"chime/internal/model"
)

// State is the playback lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StatePlaying State = "playing"
	StateEnded   State = "ended"
	StateError   State = "error"
)

// Player starts and stops playback for a resolved media id.
type Player interface {
	Play(ctx context.Context, mediaID string) error
	Stop()
	State() State
}

// EmbedURL returns the autoplaying embed URL for a media id.
func EmbedURL(mediaID string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1&controls=1&rel=0", mediaID)
}

// ThumbnailURL returns the medium-quality thumbnail URL for a media id.
func ThumbnailURL(mediaID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", mediaID)
}

// ExecPlayer opens the embed URL with an external opener command (the
// platform default browser opener unless overridden). The spawned process is
// not tracked: stopping playback is left to the user closing the page, so
// Stop only resets the lifecycle state.
type ExecPlayer struct {
	// Command overrides the platform opener.
	Command string

	mu    sync.Mutex
	state State
}

var _ Player = (*ExecPlayer)(nil)

// NewExecPlayer returns an ExecPlayer using the platform opener.
func NewExecPlayer(command string) *ExecPlayer {
	return &ExecPlayer{Command: command, state: StateIdle}
}

func (p *ExecPlayer) opener() string {
	if p.Command != "" {
		return p.Command
	}
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

func (p *ExecPlayer) Play(ctx context.Context, mediaID string) error {
	if mediaID == "" {
		return model.Errorf(model.ErrPlayback, "no media id to play")
	}

	p.setState(StateLoading)
	cmd := exec.CommandContext(ctx, p.opener(), EmbedURL(mediaID))
	if err := cmd.Start(); err != nil {
		p.setState(StateError)
		return model.Errorf(model.ErrPlayback, "start %s: %v", p.opener(), err)
	}
	go cmd.Wait()

	p.setState(StatePlaying)
	return nil
}

func (p *ExecPlayer) Stop() {
	p.setState(StateEnded)
}

func (p *ExecPlayer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *ExecPlayer) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}
