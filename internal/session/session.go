// Package session is the host-side state machine around the recolor
// pipeline: it holds the current upload and target color, re-runs the
// pipeline whenever either changes, and applies only the newest run's
// outcome to what is displayed.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/davesmith10/recolor/internal/color"
	"github.com/davesmith10/recolor/internal/pipeline"
)

// ErrSuperseded is returned by a run whose outcome was discarded because a
// newer run started before it finished.
var ErrSuperseded = errors.New("superseded by a newer run")

// View is what the host is showing. Exactly one view is active at a time.
type View int

const (
	Idle View = iota
	Processing
	Ready
)

func (v View) String() string {
	switch v {
	case Processing:
		return "processing"
	case Ready:
		return "ready"
	default:
		return "idle"
	}
}

// Snapshot is a consistent copy of the displayed state.
type Snapshot struct {
	View       View
	Result     *pipeline.Result // last successful result, nil if none
	Err        error            // shown alongside View, nil after a successful run
	Generation uint64           // id of the newest run started
}

// processFunc matches pipeline.Process.
type processFunc func(ctx context.Context, data []byte, target color.Color, opts pipeline.Options) (*pipeline.Result, error)

// Session is safe for concurrent use.
type Session struct {
	opts    pipeline.Options
	log     *slog.Logger
	process processFunc

	mu       sync.Mutex
	source   []byte
	name     string
	target   *color.Color
	gen      uint64
	inFlight bool
	result   *pipeline.Result
	err      error
}

// New returns an idle session with no image and no target color.
func New(opts pipeline.Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		opts:    opts,
		log:     log,
		process: pipeline.Process,
	}
}

// Snapshot returns the current displayed state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := Idle
	switch {
	case s.inFlight:
		view = Processing
	case s.result != nil:
		view = Ready
	}
	return Snapshot{
		View:       view,
		Result:     s.result,
		Err:        s.err,
		Generation: s.gen,
	}
}

// SetColor parses hex and makes it the target color. If an image is loaded the
// pipeline re-runs with the new color. An invalid color is reported without
// touching the current result or the loaded image.
func (s *Session) SetColor(ctx context.Context, hex string) error {
	c, err := color.ParseColor(hex)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.target = &c
	ready := s.source != nil
	s.mu.Unlock()

	s.log.Debug("target color set", "color", c.Hex())
	if !ready {
		return nil
	}
	return s.run(ctx)
}

// Upload replaces the loaded image with src and re-runs the pipeline if a
// target color is set. A source with an unsupported declared type, or one that
// cannot be read, is reported without replacing the loaded image or result.
func (s *Session) Upload(ctx context.Context, src pipeline.Source) error {
	data, err := pipeline.Load(src)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.source = data
	s.name = src.Name
	ready := s.target != nil
	s.mu.Unlock()

	s.log.Debug("image loaded", "name", src.Name, "bytes", len(data))
	if !ready {
		return nil
	}
	return s.run(ctx)
}

// run starts a new generation over the current image and color, then applies
// its outcome only if no newer generation started meanwhile.
func (s *Session) run(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	id := s.gen
	s.inFlight = true
	data, name, target := s.source, s.name, *s.target
	s.mu.Unlock()

	log := s.log.With("run", id, "name", name, "color", target.Hex())
	log.Debug("run started")

	result, err := s.process(ctx, data, target, s.opts)
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.gen {
		log.Debug("run superseded", "latest", s.gen)
		return ErrSuperseded
	}
	s.inFlight = false
	if err != nil {
		s.err = err
		log.Warn("run failed", "kind", pipeline.KindOf(err).String(), "err", err)
		return err
	}
	s.result = result
	s.err = nil
	log.Info("run finished", "width", result.Width, "height", result.Height, "bytes", len(result.Data))
	return nil
}

// fail records err as the displayed error. Runs in flight are unaffected.
func (s *Session) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.log.Warn("rejected input", "kind", pipeline.KindOf(err).String(), "err", err)
}
