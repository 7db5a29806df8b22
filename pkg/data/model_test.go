package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarginPathFor(t *testing.T) {
	twoSided := Page{
		MarginLeftPath:  "chapters/ch-01/assets/margin-001-left.png",
		MarginRightPath: "chapters/ch-01/assets/margin-001-right.png",
	}
	assert.Equal(t, twoSided.MarginLeftPath, twoSided.MarginPathFor(SideLeft))
	assert.Equal(t, twoSided.MarginRightPath, twoSided.MarginPathFor(SideRight))

	legacy := Page{
		MarginPath: "chapters/ch-01/assets/margin-001-left.png",
		MarginSide: SideLeft,
	}
	assert.Equal(t, legacy.MarginPath, legacy.MarginPathFor(SideLeft))
	assert.Empty(t, legacy.MarginPathFor(SideRight))

	assert.Empty(t, (&Page{}).MarginPathFor(SideLeft))
}

func TestEffectiveColumn(t *testing.T) {
	assert.Equal(t, SideLeft, (&ContentBlock{Column: SideLeft}).EffectiveColumn())
	assert.Equal(t, SideRight, (&ContentBlock{Column: SideRight}).EffectiveColumn())
	assert.Equal(t, SideRight, (&ContentBlock{}).EffectiveColumn())
}
