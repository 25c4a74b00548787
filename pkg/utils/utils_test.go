package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("vazio", func(t *testing.T) {
		date, err := ParseDate("")
		require.NoError(t, err)
		assert.Nil(t, date)
	})

	t.Run("formato ISO", func(t *testing.T) {
		date, err := ParseDate("2025-03-10")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), *date)
	})

	t.Run("formato inválido", func(t *testing.T) {
		_, err := ParseDate("10/03/2025")
		assert.Error(t, err)
	})
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 12.35, RoundWithTwoDecimalPlace(12.346))
	assert.Equal(t, 99.34, RoundWithTwoDecimalPlace(99.3355))
}

func TestGenerateID(t *testing.T) {
	first, err := GenerateID()
	require.NoError(t, err)
	second, err := GenerateID()
	require.NoError(t, err)

	assert.Len(t, first, 12)
	assert.NotEqual(t, first, second)
}
