package validate

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// TestMain keeps debug logging out of verbose test output.
func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}
