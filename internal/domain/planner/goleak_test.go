package planner

import (
	"testing"

	"go.uber.org/goleak"
)

// TestPackageLeaks verifies that no unexpected goroutines are running in the
// test binary when it runs.
func TestPackageLeaks(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}
