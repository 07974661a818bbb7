package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeValid(t *testing.T) {
	assert.True(t, TypeText.Valid())
	assert.True(t, TypeImage.Valid())
	assert.False(t, Type("video").Valid())
	assert.False(t, Type("").Valid())
}
