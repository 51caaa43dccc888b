package services

import (
	"io"
	"log"
	"time"
)

type settings struct {
	logger *log.Logger
	now    func() time.Time
}

// Option configures a service.
type Option func(*settings)

// WithLogger sets the logger used for swallowed errors.
func WithLogger(logger *log.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger: log.New(io.Discard, "", 0),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
