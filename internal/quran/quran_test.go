package quran

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountAndNames(t *testing.T) {
	assert.Equal(t, 114, Count())
	assert.Equal(t, "Al-Fatihah", Name(1))
	assert.Equal(t, "An-Nas", Name(114))
	assert.Equal(t, "", Name(0))
	assert.Equal(t, "", Name(115))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 12, PageCount())
}

func TestPageBounds(t *testing.T) {
	lo, hi := PageBounds(0)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 10, hi)

	// Last page holds only four surahs.
	lo, hi = PageBounds(11)
	assert.Equal(t, 111, lo)
	assert.Equal(t, 114, hi)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 0, ClampPage(-5))
	assert.Equal(t, 11, ClampPage(99))
	assert.Equal(t, 7, ClampPage(7))
}
