package sim

import (
	"fmt"
	"math/rand"
)

// jobOverhead is the fixed teardown time added after every job.
const jobOverhead = 1

// ServiceRange is the inclusive range service durations are drawn from.
type ServiceRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// DefaultServiceRange is used when a configuration leaves the range unset.
var DefaultServiceRange = ServiceRange{Min: 1, Max: 3}

// Validate checks 0 <= Min <= Max.
func (r ServiceRange) Validate() error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("%w: service range [%d, %d] must satisfy 0 <= min <= max", ErrConfiguration, r.Min, r.Max)
	}
	return nil
}

// Server is a single worker cycling between Free and Busy.
// The zero busy state (busy == false) means Free with no job history.
type Server struct {
	busyUntil float64
	busy      bool
	service   ServiceRange
}

// NewServer creates a Free server drawing service times from r.
func NewServer(r ServiceRange) *Server {
	return &Server{service: r}
}

// IsFree reports whether the server can take a job at time now.
func (s *Server) IsFree(now float64) bool {
	return !s.busy || s.busyUntil <= now
}

// BusyUntil returns the completion time of the last job and whether one was ever started.
func (s *Server) BusyUntil() (float64, bool) {
	return s.busyUntil, s.busy
}

// Start begins a job at time now and returns when the server becomes ready again.
// The service duration is drawn uniformly from the server's range, inclusive.
// Panics if the server is still busy at now.
func (s *Server) Start(now float64, rng *rand.Rand) float64 {
	if !s.IsFree(now) {
		panic(fmt.Sprintf("Server.Start: server busy until %g, cannot start at %g", s.busyUntil, now))
	}
	duration := s.service.Min + rng.Intn(s.service.Max-s.service.Min+1)
	s.busyUntil = now + float64(duration) + jobOverhead
	s.busy = true
	return s.busyUntil
}

// Reset returns the server to Free with no job history.
func (s *Server) Reset() {
	s.busyUntil = 0
	s.busy = false
}
