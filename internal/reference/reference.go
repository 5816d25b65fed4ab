// Package reference issues booking references: short uppercase
// alphanumeric tokens presented to passengers instead of row ids.
package reference

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const Prefix = "FF"

// Generator produces collision-resistant references without touching the
// store: microsecond timestamp in base36 plus a slice of random UUID hex.
// Uniqueness is still enforced by the bookings unique index; callers retry
// with a fresh token on a duplicate.
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) Generate() string {
	ts := strconv.FormatInt(time.Now().UnixMicro(), 36)
	entropy := strings.ReplaceAll(uuid.NewString(), "-", "")
	return Prefix + strings.ToUpper(ts+entropy[:6])
}
