package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntry_Pending(t *testing.T) {
	assert.True(t, Entry{ID: "1"}.Pending())
	assert.False(t, Entry{ID: "1", CreatedAt: time.Now()}.Pending())
}
