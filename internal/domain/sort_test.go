package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareRefnames(t *testing.T) {
	t.Run("Should compare digit runs numerically", func(t *testing.T) {
		assert.Equal(t, -1, CompareRefnames("testing-2024-03-v9", "testing-2024-03-v10"))
		assert.Equal(t, 1, CompareRefnames("testing-2024-03-v10", "testing-2024-03-v9"))
		assert.Equal(t, 0, CompareRefnames("testing-2024-03-v2", "testing-2024-03-v2"))
	})
	t.Run("Should order shorter prefix first", func(t *testing.T) {
		assert.Equal(t, -1, CompareRefnames("testing-2024-03-v1", "testing-2024-03-v1-hotfix"))
	})
}

func TestSortTagsDesc(t *testing.T) {
	names := []string{
		"testing-2024-03-v1",
		"testing-2024-03-v10",
		"testing-2024-03-v9",
		"testing-2024-03-v2",
	}
	SortTagsDesc(names)
	assert.Equal(t, []string{
		"testing-2024-03-v10",
		"testing-2024-03-v9",
		"testing-2024-03-v2",
		"testing-2024-03-v1",
	}, names)
}
