package internal

import "context"

type Tracker struct {
	tracking bool

	currentEffect *Effect // for reactive dependency tracking

	// span context of the innermost traced run or trigger
	ctx context.Context
}

func NewTracker() *Tracker {
	return &Tracker{
		tracking: true,
		ctx:      context.Background(),
	}
}

func (t *Tracker) CurrentEffect() *Effect {
	return t.currentEffect
}

// RunWithEffect installs e as the active effect for the duration of fn.
// The previous effect is restored on every exit path, panics included.
func (t *Tracker) RunWithEffect(e *Effect, fn func()) {
	prevEffect := t.currentEffect
	prevTracking := t.tracking

	e.parent = prevEffect
	t.currentEffect = e
	t.tracking = true

	defer func() {
		t.currentEffect = prevEffect
		t.tracking = prevTracking
	}()

	fn()
}

func (t *Tracker) RunUntracked(fn func()) {
	prev := t.tracking
	t.tracking = false
	defer func() { t.tracking = prev }()

	fn()
}

// RunWithContext makes ctx the parent of spans started during fn.
func (t *Tracker) RunWithContext(ctx context.Context, fn func()) {
	prev := t.ctx
	t.ctx = ctx
	defer func() { t.ctx = prev }()

	fn()
}

func (t *Tracker) Context() context.Context {
	return t.ctx
}

func (t *Tracker) ShouldTrack() bool {
	return t.currentEffect != nil && t.currentEffect.active && t.tracking
}
