package bootstrap

import "github.com/shopspring/decimal"

// ConfigureJSON sets process-wide encoding options. Call it once at startup,
// before any response or event is marshalled: prices are written as JSON
// numbers, the way clients send them.
func ConfigureJSON() {
	decimal.MarshalJSONWithoutQuotes = true
}
