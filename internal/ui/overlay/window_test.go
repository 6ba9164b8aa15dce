package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpacityToAlpha(t *testing.T) {
	assert.Equal(t, uint8(0), OpacityToAlpha(-1))
	assert.Equal(t, uint8(127), OpacityToAlpha(0.5))
	assert.Equal(t, uint8(255), OpacityToAlpha(2))
}
