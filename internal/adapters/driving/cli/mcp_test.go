package cli

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)

	assert.NotNil(t, mcpServeCmd.Flags().Lookup("input-dir"))
}

func TestFindAvailablePort(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()
	taken := busy.Addr().(*net.TCPAddr).Port

	t.Run("skips a port in use", func(t *testing.T) {
		port, err := findAvailablePort(taken, taken+portSearchSpan)
		if err != nil {
			t.Skipf("no free port near %d: %v", taken, err)
		}
		assert.NotEqual(t, taken, port)
		assert.Greater(t, port, taken)
	})

	t.Run("empty range", func(t *testing.T) {
		_, err := findAvailablePort(taken, taken)
		assert.ErrorContains(t, err, "no available port")
	})
}
