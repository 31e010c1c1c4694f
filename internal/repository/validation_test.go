package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTagName(t *testing.T) {
	t.Run("Should accept deployment tags", func(t *testing.T) {
		assert.NoError(t, ValidateTagName("production-2024-03-v5"))
		assert.NoError(t, ValidateTagName("release/v1.2.3"))
	})
	t.Run("Should reject invalid names", func(t *testing.T) {
		for _, name := range []string{"", "-d", "a..b", "tag.lock", "tag/", "tag name", strings.Repeat("a", 256)} {
			assert.Error(t, ValidateTagName(name), name)
		}
	})
}
