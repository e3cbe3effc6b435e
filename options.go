package debugdraw

import (
	"time"
)

type drawOptions struct {
	color    Color
	hasColor bool

	duration    time.Duration
	hasDuration bool

	priority int

	valueColor    Color
	hasValueColor bool

	size    float32
	hasSize bool
}

// Option tunes a single submission. Options a submission does not use are ignored.
type Option func(*drawOptions)

func WithColor(c Color) Option {
	return func(o *drawOptions) {
		o.color = c
		o.hasColor = true
	}
}

// WithDuration keeps the primitive alive for d after submission. Shapes default to
// zero (one frame); text defaults to the configured text duration. A negative
// duration on text selects that default explicitly.
func WithDuration(d time.Duration) Option {
	return func(o *drawOptions) {
		o.duration = d
		o.hasDuration = true
	}
}

// WithPriority orders text entries inside their group, lowest first.
func WithPriority(p int) Option {
	return func(o *drawOptions) { o.priority = p }
}

// WithValueColor colors the value part of a text line.
func WithValueColor(c Color) Option {
	return func(o *drawOptions) {
		o.valueColor = c
		o.hasValueColor = true
	}
}

// WithSize overrides the configured size of arrowheads, hit markers and points.
func WithSize(s float32) Option {
	return func(o *drawOptions) {
		o.size = s
		o.hasSize = true
	}
}

func collectOptions(opts []Option) drawOptions {
	var o drawOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o *drawOptions) colorOr(def Color) Color {
	if o.hasColor {
		return o.color
	}
	return def
}

func (o *drawOptions) sizeOr(def float32) float32 {
	if o.hasSize {
		return o.size
	}
	return def
}

// shapeDuration clamps to zero; shapes have no configured default.
func (o *drawOptions) shapeDuration() time.Duration {
	if !o.hasDuration || o.duration < 0 {
		return 0
	}
	return o.duration
}

func (o *drawOptions) textDuration(def time.Duration) time.Duration {
	if !o.hasDuration || o.duration < 0 {
		return def
	}
	return o.duration
}
