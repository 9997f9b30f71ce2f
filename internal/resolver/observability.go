package resolver

import "github.com/rs/zerolog"

// ResolveEvent records one resolution attempt.
type ResolveEvent struct {
	Query    string
	Phase    Phase
	Code     string
	Score    float64
	Resolved bool
}

// Observer receives resolution events for diagnostics.
type Observer interface {
	OnResolve(event ResolveEvent)
}

// LogObserver writes resolution events to a zerolog logger at debug level,
// misses at info.
type LogObserver struct {
	logger zerolog.Logger
}

func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger.With().Str("component", "resolver").Logger()}
}

func (o *LogObserver) OnResolve(event ResolveEvent) {
	ev := o.logger.Debug()
	if !event.Resolved {
		ev = o.logger.Info()
	}
	ev.Str("query", event.Query).
		Str("phase", string(event.Phase)).
		Str("code", event.Code).
		Float64("score", event.Score).
		Bool("resolved", event.Resolved).
		Msg("course resolution")
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnResolve(ResolveEvent) {}
