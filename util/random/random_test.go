package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenHex(t *testing.T) {
	token := TokenHex(32)
	assert.Len(t, token, 64)
	assert.NotEqual(t, token, TokenHex(32))
}
