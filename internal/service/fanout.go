package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/courseadvisor/internal/dialogue"
	"github.com/alexanderramin/courseadvisor/internal/domain"
)

var _ dialogue.Sink = FanoutSink(nil)

// FanoutSink writes every snapshot to all of its sinks. A failing sink does
// not stop the others; their errors are joined.
type FanoutSink []dialogue.Sink

// NewFanoutSink drops nil sinks.
func NewFanoutSink(sinks ...dialogue.Sink) FanoutSink {
	out := make(FanoutSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (f FanoutSink) PersistCart(ctx context.Context, items []domain.ScheduledCourse) error {
	var errs []error
	for _, s := range f {
		if err := s.PersistCart(ctx, items); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f FanoutSink) PersistFilters(ctx context.Context, filters domain.FilterState) error {
	var errs []error
	for _, s := range f {
		if err := s.PersistFilters(ctx, filters); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
