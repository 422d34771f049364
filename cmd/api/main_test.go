package main

import (
	"context"
	"testing"

	"catalog-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRepositories_Memory(t *testing.T) {
	repos, err := openRepositories(context.Background(), &config.Config{StorageBackend: config.BackendMemory})
	require.NoError(t, err)
	assert.NotNil(t, repos.products)
	assert.NotNil(t, repos.users)
	assert.Nil(t, repos.pool)
}

func TestOpenRepositories_Unknown(t *testing.T) {
	_, err := openRepositories(context.Background(), &config.Config{StorageBackend: "redis"})
	assert.ErrorContains(t, err, "unknown storage backend")
}
