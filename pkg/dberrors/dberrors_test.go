package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("create college: %w", &pq.Error{Code: "23505", Constraint: "colleges_pkey"})
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
	assert.Equal(t, "colleges_pkey", Constraint(err))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pq.Error{Code: "23503", Constraint: "students_program_code_fkey"}
	assert.True(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(err))
}

func TestPlainErrors(t *testing.T) {
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.Empty(t, Constraint(errors.New("boom")))
}
