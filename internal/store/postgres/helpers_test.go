package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrCode(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: pgCodeUniqueViolation}
	assert.Equal(t, pgCodeUniqueViolation, pgErrCode(pgErr))
	assert.Equal(t, pgCodeUniqueViolation, pgErrCode(fmt.Errorf("wrapped: %w", pgErr)))
	assert.Empty(t, pgErrCode(errors.New("plain error")))
	assert.Empty(t, pgErrCode(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "42P04"}))
	assert.False(t, isUniqueViolation(errors.New("nope")))
}

func TestNilIfEmpty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, nilIfEmpty(""))
	got := nilIfEmpty("x")
	assert.NotNil(t, got)
	assert.Equal(t, "x", *got)

	assert.Equal(t, "", derefStr(nil))
	assert.Equal(t, "x", derefStr(got))
}
