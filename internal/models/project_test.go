package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		from   ProjectStatus
		want   ProjectStatus
		wantOK bool
	}{
		{StatusDraft, StatusBudgeting, true},
		{StatusBudgeting, StatusPlanning, true},
		{StatusPlanning, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, "", false},
		{StatusOnHold, "", false},
		{"archived", "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			got, ok := NextStatus(tt.from)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectStatusValid(t *testing.T) {
	for _, s := range Lifecycle {
		assert.True(t, s.Valid(), s)
	}
	assert.True(t, StatusOnHold.Valid())
	assert.False(t, ProjectStatus("").Valid())
	assert.False(t, ProjectStatus("Draft").Valid())
	assert.True(t, StatusCompleted.Terminal())
	assert.False(t, StatusOnHold.Terminal())
}
