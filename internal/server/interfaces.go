package server

// Server owns the HTTP listener of the backend.
type Server interface {
	// RunServer serves until a termination signal arrives, then drains
	// in-flight requests.
	RunServer()

	// Shutdown stops accepting connections and waits for active requests.
	Shutdown()
}
