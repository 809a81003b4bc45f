package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	assert.True(t, Bool.Valid())
	assert.True(t, Decimal.Valid())
	assert.False(t, Column("not-a-type").Valid())
	assert.False(t, Column("").Valid())
}
