package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSequence_PrimesOnceThenIncrements(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectSetNX("complaints:seq", int64(4), 0).SetVal(true)
	mock.ExpectIncr("complaints:seq").SetVal(5)
	mock.ExpectIncr("complaints:seq").SetVal(6)

	seq := NewRedisSequence(client, "complaints:seq", 4)
	first, err := seq.Next(context.Background())
	require.NoError(t, err)
	second, err := seq.Next(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "CMPT-005", first)
	assert.Equal(t, "CMPT-006", second)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSequence_KeepsExistingCounter(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectSetNX("complaints:seq", int64(4), 0).SetVal(false)
	mock.ExpectIncr("complaints:seq").SetVal(41)

	id, err := NewRedisSequence(client, "complaints:seq", 4).Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CMPT-041", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSequence_PrimeFailureRetries(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectSetNX("complaints:seq", int64(4), 0).SetErr(errors.New("connection refused"))
	mock.ExpectSetNX("complaints:seq", int64(4), 0).SetVal(true)
	mock.ExpectIncr("complaints:seq").SetVal(5)

	seq := NewRedisSequence(client, "complaints:seq", 4)
	_, err := seq.Next(context.Background())
	require.Error(t, err)

	id, err := seq.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CMPT-005", id)
	require.NoError(t, mock.ExpectationsWereMet())
}
