// Package player models the lifecycle of the audio and video elements
// behind a story: acquired when a story mounts, released unconditionally
// when it unmounts or the displayed story changes. The terminal client
// does not decode media; the handles track the state a real element
// would have (play/pause, position, duration metadata arriving late) so
// the viewer can keep playback in lockstep with its own state machine.
package player

import (
	"errors"
	"time"

	"github.com/unera-social/unera-tui/pkg/models"
)

// ErrPlaybackBlocked is returned by Play when the platform refuses to
// start playback without user interaction. Callers are expected to log
// and swallow it; it is never a user-facing error.
var ErrPlaybackBlocked = errors.New("playback blocked by autoplay policy")

// ErrReleased is returned by operations on a handle that has already
// been released.
var ErrReleased = errors.New("player already released")

// Policy decides whether playback may start. The zero value allows it.
type Policy func() error

// Audio is a background-music handle scoped to one story mount.
type Audio struct {
	song      models.Song
	offsetPct float64

	duration time.Duration // zero until metadata loads
	position time.Duration
	playing  bool
	released bool

	policy  Policy
	now     func() time.Time
	started time.Time
}

// NewAudio acquires an audio handle for the song. offsetPct is where
// playback should start as a percentage of the duration; the seek is
// deferred until metadata arrives via SetDuration.
func NewAudio(song models.Song, offsetPct float64, policy Policy) *Audio {
	if offsetPct < 0 {
		offsetPct = 0
	}
	if offsetPct > 100 {
		offsetPct = 100
	}
	return &Audio{
		song:      song,
		offsetPct: offsetPct,
		policy:    policy,
		now:       time.Now,
	}
}

// Song returns the track this handle plays.
func (a *Audio) Song() models.Song { return a.song }

// LoadMetadata resolves the track duration the way an element fires
// loadedmetadata: asynchronously, some time after acquisition. The
// caller feeds the result back through SetDuration.
func (a *Audio) LoadMetadata() (time.Duration, bool) {
	return a.song.ParseDuration()
}

// SetDuration records the loaded duration and applies the deferred
// start-offset seek exactly once.
func (a *Audio) SetDuration(d time.Duration) {
	if a.released || a.duration != 0 || d <= 0 {
		return
	}
	a.duration = d
	a.seek(time.Duration(float64(d) * a.offsetPct / 100))
}

// Play starts or resumes playback. Best-effort: a policy rejection is
// returned for the caller to log, and the handle stays paused.
func (a *Audio) Play() error {
	if a.released {
		return ErrReleased
	}
	if a.playing {
		return nil
	}
	if a.policy != nil {
		if err := a.policy(); err != nil {
			return err
		}
	}
	a.playing = true
	a.started = a.now()
	return nil
}

// Pause stops playback, keeping the current position.
func (a *Audio) Pause() {
	if a.released || !a.playing {
		return
	}
	a.position += a.now().Sub(a.started)
	a.playing = false
}

// SeekFraction moves the position to f of the known duration. A no-op
// until metadata has loaded.
func (a *Audio) SeekFraction(f float64) {
	if a.released || a.duration == 0 {
		return
	}
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	a.seek(time.Duration(float64(a.duration) * f))
}

func (a *Audio) seek(pos time.Duration) {
	a.position = pos
	if a.playing {
		a.started = a.now()
	}
}

// Position reports the current playback position.
func (a *Audio) Position() time.Duration {
	if a.playing {
		return a.position + a.now().Sub(a.started)
	}
	return a.position
}

// Duration reports the loaded duration, zero while metadata is pending.
func (a *Audio) Duration() time.Duration { return a.duration }

// Playing reports whether the handle is currently playing.
func (a *Audio) Playing() bool { return a.playing }

// Released reports whether the handle has been released.
func (a *Audio) Released() bool { return a.released }

// Release pauses and drops the handle. Safe to call more than once;
// every exit path of the owning component calls it.
func (a *Audio) Release() {
	if a.released {
		return
	}
	a.Pause()
	a.released = true
}

// Video is a story video-track handle. It carries no position of its
// own; the viewer's progress drives advancement, the handle only
// mirrors play state and muting.
type Video struct {
	mediaRef string
	playing  bool
	muted    bool
	released bool
	policy   Policy
}

// NewVideo acquires a video handle for a media reference.
func NewVideo(mediaRef string, policy Policy) *Video {
	return &Video{mediaRef: mediaRef, policy: policy}
}

// MediaRef returns the media reference this handle plays.
func (v *Video) MediaRef() string { return v.mediaRef }

// Play starts or resumes the video track, subject to the policy.
func (v *Video) Play() error {
	if v.released {
		return ErrReleased
	}
	if v.playing {
		return nil
	}
	if v.policy != nil {
		if err := v.policy(); err != nil {
			return err
		}
	}
	v.playing = true
	return nil
}

// Pause stops the video track.
func (v *Video) Pause() {
	if v.released {
		return
	}
	v.playing = false
}

// SetMuted mutes or unmutes the video's own audio track. The viewer
// mutes it whenever background music is attached.
func (v *Video) SetMuted(muted bool) {
	if v.released {
		return
	}
	v.muted = muted
}

// Muted reports whether the video's audio track is muted.
func (v *Video) Muted() bool { return v.muted }

// Playing reports whether the video track is playing.
func (v *Video) Playing() bool { return v.playing }

// Released reports whether the handle has been released.
func (v *Video) Released() bool { return v.released }

// Release pauses and drops the handle. Safe to call more than once.
func (v *Video) Release() {
	if v.released {
		return
	}
	v.playing = false
	v.released = true
}
