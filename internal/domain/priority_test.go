package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, "1", NormalizePriority("urgent"))
	assert.Equal(t, "1", NormalizePriority("1"))
	assert.Equal(t, "2", NormalizePriority("high"))
	assert.Equal(t, "2", NormalizePriority("High"))
	assert.Equal(t, "3", NormalizePriority("medium"))
	assert.Equal(t, "low", NormalizePriority("low"), "low has no numeric counterpart")
	assert.Equal(t, "", NormalizePriority(""))
}

func TestSamePriority_CrossVocabulary(t *testing.T) {
	assert.True(t, SamePriority("high", "2"))
	assert.True(t, SamePriority("2", "high"))
	assert.True(t, SamePriority("medium", "3"))
	assert.False(t, SamePriority("high", "3"))
	assert.False(t, SamePriority("low", "3"))
}

func TestUrgencyScore(t *testing.T) {
	assert.Equal(t, 0, UrgencyScore("1"))
	assert.Equal(t, 0, UrgencyScore("urgent"))
	assert.Equal(t, 10, UrgencyScore("high"))
	assert.Equal(t, 10, UrgencyScore("2"))
	assert.Equal(t, 20, UrgencyScore("medium"))
	assert.Equal(t, 100, UrgencyScore("low"))
	assert.Equal(t, 100, UrgencyScore(""))
}
