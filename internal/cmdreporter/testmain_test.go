package cmdreporter_test

import (
	"testing"

	"github.com/apptriage/apptriage/internal/testutility"
)

func TestMain(m *testing.M) {
	m.Run()

	testutility.CleanSnapshots(m)
}
