package bootstrap

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSON(t *testing.T) {
	prev := decimal.MarshalJSONWithoutQuotes
	t.Cleanup(func() { decimal.MarshalJSONWithoutQuotes = prev })

	ConfigureJSON()

	data, err := json.Marshal(map[string]decimal.Decimal{"price": decimal.RequireFromString("24.30")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":24.3}`, string(data))
}
