package di

import (
	"testing"

	"go.uber.org/goleak"
)

// TestPackageLeaks verifies that opening and closing a container leaves no
// goroutines running past test teardown.
func TestPackageLeaks(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}
