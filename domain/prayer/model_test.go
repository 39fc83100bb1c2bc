package prayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusActive, StatusResolved))
	assert.True(t, CanTransition(StatusActive, StatusArchived))
	assert.True(t, CanTransition(StatusResolved, StatusArchived))

	assert.False(t, CanTransition(StatusResolved, StatusActive))
	assert.False(t, CanTransition(StatusArchived, StatusActive))
	assert.False(t, CanTransition(StatusArchived, StatusResolved))
	assert.False(t, CanTransition(StatusActive, StatusActive))
}

func TestCategoryRoundTrip(t *testing.T) {
	joined := JoinCategories([]string{"Health & Healing", "Grief & Loss"})
	assert.Equal(t, "Health & Healing, Grief & Loss", joined)
	assert.Equal(t, []string{"Health & Healing", "Grief & Loss"}, SplitCategories(joined))

	assert.Nil(t, SplitCategories(""))
	assert.Nil(t, SplitCategories("  "))
	assert.Equal(t, []string{"Other"}, SplitCategories(" Other , "))
}

func TestHasCategory(t *testing.T) {
	p := Prayer{Categories: "Health & Healing, Mental Health"}
	assert.True(t, p.HasCategory("Mental Health"))
	assert.False(t, p.HasCategory("Health"))
	assert.False(t, Prayer{}.HasCategory("Other"))
}
