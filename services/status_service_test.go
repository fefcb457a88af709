package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatusName(t *testing.T) {
	assert.Equal(t, "checked", NormalizeStatusName("  Checked "))
	assert.Equal(t, "not recommended", NormalizeStatusName("NOT RECOMMENDED"))

	// Legacy aliases resolve to the canonical spelling.
	assert.Equal(t, "checked", NormalizeStatusName("check"))
	assert.Equal(t, "recommended", NormalizeStatusName("recommend"))

	assert.Equal(t, "archived", NormalizeStatusName("archived"))
}

func TestIsAllowedStatusName(t *testing.T) {
	for _, name := range AllowedStatusNames {
		assert.True(t, IsAllowedStatusName(name), name)
	}

	// The wire vocabulary is exact: aliases and case variants are not
	// accepted as transition targets.
	assert.False(t, IsAllowedStatusName("check"))
	assert.False(t, IsAllowedStatusName("Checked"))
	assert.False(t, IsAllowedStatusName("archived"))
	assert.False(t, IsAllowedStatusName(""))

	// Surrounding whitespace alone is tolerated.
	assert.True(t, IsAllowedStatusName(" resubmit required "))
}

func TestAllowedStatusNamesCoverEveryWorkflowStage(t *testing.T) {
	expected := []string{
		"pending", "checked", "recommended", "not recommended",
		"approved", "rejected", "resubmit required", "resubmit pending",
	}
	assert.Equal(t, expected, AllowedStatusNames)
}
