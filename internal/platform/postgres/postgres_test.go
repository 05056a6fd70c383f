package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect_RejectsEmptyDSN(t *testing.T) {
	db, cleanup, err := Connect(context.Background(), "   ")
	require.Error(t, err)
	require.Nil(t, db)
	require.Nil(t, cleanup)
}
