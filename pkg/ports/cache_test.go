package ports_test

import (
	"testing"

	"github.com/aretw0/eventgrid/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	input := []byte("<events/>")

	a := ports.Key(input, "add", "long")
	assert.Len(t, a, 64)
	assert.Equal(t, a, ports.Key(input, "add", "long"), "deterministic")
	assert.NotEqual(t, a, ports.Key(input, "subtract", "long"))
	assert.NotEqual(t, ports.Key(input, "ab", "c"), ports.Key(input, "a", "bc"))
	assert.NotEqual(t, a, ports.Digest(input), "keys and digests live in different domains")
}

func TestDigest(t *testing.T) {
	assert.Equal(t, ports.Digest([]byte("x")), ports.Digest([]byte("x")))
	assert.NotEqual(t, ports.Digest([]byte("x")), ports.Digest([]byte("y")))
}
