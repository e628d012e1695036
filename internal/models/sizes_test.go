package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeIndex(t *testing.T) {
	assert.Equal(t, 0, SizeIndex("XXS"))
	assert.Equal(t, 3, SizeIndex("M"))
	assert.Equal(t, 3, SizeIndex(" m "))
	assert.Equal(t, 8, SizeIndex("2XL"))
	assert.Equal(t, 999, SizeIndex("38"))
	assert.Equal(t, 999, SizeIndex("One Size"))
}

func TestSortSizes(t *testing.T) {
	sizes := []string{"XL", "S", "38", "M", "40", "XXS"}
	SortSizes(sizes)

	// Known labels small to large, unknown labels stable at the end.
	assert.Equal(t, []string{"XXS", "S", "M", "XL", "38", "40"}, sizes)
}
