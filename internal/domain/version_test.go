package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVersion(t *testing.T) {
	t.Run("Should create calendar version from tag parts", func(t *testing.T) {
		version := NewVersion(2024, 3, 5)
		assert.Equal(t, "2024.3.5", version.String())
	})
}

func TestVersion_Compare(t *testing.T) {
	t.Run("Should compare sequences numerically", func(t *testing.T) {
		v9 := NewVersion(2024, 3, 9)
		v10 := NewVersion(2024, 3, 10)
		assert.Equal(t, -1, v9.Compare(v10))
		assert.Equal(t, 1, v10.Compare(v9))
		assert.Equal(t, 0, v9.Compare(NewVersion(2024, 3, 9)))
	})
	t.Run("Should order by month before sequence", func(t *testing.T) {
		march := NewVersion(2024, 3, 40)
		april := NewVersion(2024, 4, 1)
		assert.Equal(t, -1, march.Compare(april))
	})
}
