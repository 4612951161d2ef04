package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickergate/tickergate/internal/model"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", model.NormalizeEmail("Alice@Example.com"))
	assert.Equal(t, "alice@example.com", model.NormalizeEmail("  alice@example.com  "))
	assert.Equal(t, "", model.NormalizeEmail("   "))
}

func TestUnixMilliWireFormat(t *testing.T) {
	ts := model.NewUnixMilli(time.Date(2024, 1, 1, 12, 0, 0, 500_000_000, time.UTC))

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, "1704110400500", string(data))

	var decoded model.UnixMilli
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, ts.Equal(decoded.Time))
}

func TestUnixMilliRejectsMalformedValue(t *testing.T) {
	var decoded model.UnixMilli
	err := json.Unmarshal([]byte(`"not-a-number"`), &decoded)
	assert.ErrorIs(t, err, model.ErrMalformedRecord)
}

func TestSessionWireFormat(t *testing.T) {
	session := model.Session{
		Email:         "alice@example.com",
		EstablishedAt: model.NewUnixMilli(time.UnixMilli(1704110400500)),
	}

	data, err := json.Marshal(session)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"alice@example.com","ts":1704110400500}`, string(data))
}
