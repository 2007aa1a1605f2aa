package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisabledWithoutDSN(t *testing.T) {
	m, err := Init("", "test")

	assert := assert.New(t)
	assert.Nil(err)
	assert.False(m.Enabled())
	// all no-ops
	m.RecordDecode(context.Background(), time.Millisecond, 1, 0)
	m.RecordError(errors.New("boom"), "/decode")
	m.Flush()
}

func TestBadDSN(t *testing.T) {
	_, err := Init("not a dsn", "test")

	assert := assert.New(t)
	assert.NotNil(err)
}
