package queries_test

import (
	"testing"

	"hauling/internal/core/application/usecases/queries"
	"hauling/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOwnerScheduleQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOwnerScheduleQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetOwnerScheduleQuery_EmptyOwner(t *testing.T) {
	_, err := queries.NewGetOwnerScheduleQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetOwnerScheduleQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOwnerScheduleQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOwnerScheduleQueryIsNotConstructed)
}
