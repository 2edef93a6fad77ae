package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	traced := SetTraceID(ctx)
	id := GetTraceID(traced)
	assert.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)

	assert.Empty(t, GetTraceID(ctx), "parent context must be unchanged")
}

func TestGetTraceID_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestNewTraceID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewTraceID()
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}
