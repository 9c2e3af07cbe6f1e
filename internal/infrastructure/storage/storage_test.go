package storage

import (
	"context"
	"testing"

	"github.com/sngm3741/restaurant-recs/api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	stores, err := Open(context.Background(), config.Config{StoreDriver: config.StoreMemory}, nil)
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, stores.Driver)
	assert.NotNil(t, stores.Submissions)
	assert.NotNil(t, stores.Restaurants)
	assert.NoError(t, stores.Ping(context.Background()))
	assert.NoError(t, stores.Close(context.Background()))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{StoreDriver: "redis"}, nil)
	assert.Error(t, err)
}
