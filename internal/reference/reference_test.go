package reference

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Format(t *testing.T) {
	gen := New()

	ref := gen.Generate()

	assert.Regexp(t, regexp.MustCompile(`^FF[A-Z0-9]+$`), ref)
	assert.GreaterOrEqual(t, len(ref), 12)
	assert.LessOrEqual(t, len(ref), 24)
}

func TestGenerator_Uniqueness(t *testing.T) {
	gen := New()

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		ref := gen.Generate()
		_, dup := seen[ref]
		assert.False(t, dup, "duplicate reference %s", ref)
		seen[ref] = struct{}{}
	}
}
