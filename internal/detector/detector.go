// Package detector answers "is the scraper still running" for status
// queries. The launcher does not supervise the child after launch, so
// liveness is always re-derived from the pidfile or a probe command.
package detector

// Detector is a strategy that determines if the scraper is running.
// Implementations must be safe for concurrent use.
type Detector interface {
	// Alive returns true if the process is detected as running.
	Alive() (bool, error)
	// Describe returns a human-readable description of the method.
	Describe() string
}
