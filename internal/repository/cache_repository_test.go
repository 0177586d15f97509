package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
)

func TestCacheRepositoryNilClientDegrades(t *testing.T) {
	repo := NewCacheRepository(nil, nil, nil)

	var dest string
	err := repo.Get(context.Background(), "key", &dest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))

	// Writes and deletes are silent no-ops without Redis.
	assert.NoError(t, repo.Set(context.Background(), "key", "value", time.Minute))
	assert.NoError(t, repo.Delete(context.Background(), "key"))
}
