//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

// Package cli is the non-interactive front end: it performs a fixed number
// of rolls, shows a spinner while each one is in flight and prints the
// outcome. It also generates shell completion scripts.
package cli

import (
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerRefreshRate is how often the spinner redraws.
const SpinnerRefreshRate = 100 * time.Millisecond

// Spinner abstracts the terminal spinner so the runner can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() {
	rs.s.Start()
}

func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}
