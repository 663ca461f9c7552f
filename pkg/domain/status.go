package domain

// SessionStatus defines the current mode of the shell lifecycle.
type SessionStatus string

const (
	StatusIdle      SessionStatus = "idle"      // Constructed, not yet running
	StatusAccepting SessionStatus = "accepting" // Read loop active, commands scheduled
	StatusDraining  SessionStatus = "draining"  // No new commands; in-flight tasks finishing
	StatusStopped   SessionStatus = "stopped"   // Read loop returned; terminal state
)
