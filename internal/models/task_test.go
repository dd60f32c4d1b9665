package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		StatusCreated, StatusInProgress, StatusBlocked,
		StatusPostponed, StatusCancelled, StatusDone,
	} {
		assert.True(t, ValidStatus(status), status)
	}

	for _, status := range []string{"", "Archived", "created", "DONE", "in_progress"} {
		assert.False(t, ValidStatus(status), status)
	}
}
