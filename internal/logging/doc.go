// Package logging provides the logging interface used across the roller.
// It hides the backend so the state machine, the dashboard and the plain
// runner log the same way whether output goes to zerolog or a std logger.
package logging
