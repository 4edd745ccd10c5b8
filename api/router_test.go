package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Building the router from the test config must succeed and serve the
// liveness probe; a bad middleware config fails here before any handler
// test runs.
func TestRouterServes(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doJSON(t, a, "HEAD", "/api/heartbeat", nil, "")
	require.Equal(t, 200, w.Code)
}
