// Package id generates record identifiers of the form
// <prefix>_<unix millis>_<16 hex chars>.
package id

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	BookingPrefix = "booking"
	ReviewPrefix  = "review"
)

type Generator func() string

// New returns a fresh id for prefix. The random part comes from a v4 UUID, so
// ids minted in the same millisecond still differ.
func New(prefix string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	return prefix + "_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + random
}

// NewGenerator binds prefix and clock.
func NewGenerator(prefix string, clock func() time.Time) Generator {
	return func() string {
		return New(prefix, clock())
	}
}
