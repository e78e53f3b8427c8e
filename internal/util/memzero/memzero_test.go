package memzero

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	a := []byte("token")
	b := []byte{1, 2, 3}
	Zero(a, nil, b)
	assert.Equal(t, make([]byte, 5), a)
	assert.Equal(t, []byte{0, 0, 0}, b)
}
