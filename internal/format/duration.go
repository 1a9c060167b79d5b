// Package format turns roll state into the short strings shown by the
// dashboard and the plain runner.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a duration for display: microseconds below
// a millisecond, milliseconds below a second, the default form otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
