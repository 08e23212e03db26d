package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestionStatus_IsValid(t *testing.T) {
	for _, status := range AllStatuses() {
		assert.True(t, status.IsValid(), "expected %s to be valid", status)
	}

	assert.False(t, SuggestionStatus("").IsValid())
	assert.False(t, SuggestionStatus("ARCHIVED").IsValid())
	assert.False(t, SuggestionStatus("new").IsValid(), "statuses are case-sensitive")
}

func TestAllStatuses_CoversLifecycle(t *testing.T) {
	statuses := AllStatuses()

	assert.Len(t, statuses, 5)
	assert.Equal(t, StatusNew, statuses[0], "NEW is the entry state")
}
