package testutility

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// CleanSnapshots ensures that snapshots are relevant and sorted for consistency
func CleanSnapshots(m *testing.M) {
	snaps.Clean(m, snaps.CleanOpts{Sort: true})
}
