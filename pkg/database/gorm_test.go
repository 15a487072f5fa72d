package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGormDBFromDSN_EmptyDSN(t *testing.T) {
	db, err := NewGormDBFromDSN("", false)
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "DB_CONNECTION_STRING")
}
