package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_UnmarshalText(t *testing.T) {
	var e Environment

	require.NoError(t, e.UnmarshalText([]byte(" PROD ")))
	assert.Equal(t, Prod, e)
	assert.Equal(t, "https://api.onlineszamla.nav.gov.hu/invoiceService/v3", e.BaseURL())

	require.NoError(t, e.UnmarshalText([]byte("test")))
	assert.Equal(t, Test, e)
	assert.Equal(t, "test", e.Name())
	assert.Equal(t, "https://api-test.onlineszamla.nav.gov.hu/invoiceService/v3", e.BaseURL())

	assert.Error(t, e.UnmarshalText([]byte("demo")))
}

func TestEnvironment_InvalidPanics(t *testing.T) {
	bad := Environment(42)
	assert.Panics(t, func() { _ = bad.BaseURL() })
	assert.Equal(t, "Environment(42)", bad.String())
}
