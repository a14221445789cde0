package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DefaultHTTPClientHasNoTimeout(t *testing.T) {
	c, err := NewClient(Config{Endpoint: "http://localhost", ProjectID: "p"}, nil)
	require.NoError(t, err)
	assert.Zero(t, c.httpClient.Timeout)
}
