package flag

import (
	stdflag "flag"
	"testing"

	"github.com/stretchr/testify/require"
)

// The test binary itself is the guard here: if this package consumed the
// command line during init, the runner's own -test.* flags would abort
// the process before any test executed.
func TestSharedFlagsRegisteredButNotParsedAtInit(t *testing.T) {
	dev := stdflag.Lookup("dev")
	require.NotNil(t, dev)
	require.Equal(t, "true", dev.DefValue)

	service := stdflag.Lookup("service")
	require.NotNil(t, service)
	require.Equal(t, APIServer, service.DefValue)
}

func TestParseFlagsIsIdempotent(t *testing.T) {
	require.NotPanics(t, ParseFlags)
	require.NotPanics(t, ParseFlags)
	require.True(t, stdflag.Parsed())
}
