package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
)

func setupRepo(t *testing.T) (repository.StateStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewStateRepository(mock, "cli", mock.Close), mock
}

func TestStateRepository_Get_Found(t *testing.T) {
	repo, mock := setupRepo(t)
	defer repo.Close()

	mock.ExpectQuery("SELECT value FROM client_state").
		WithArgs("cli", domain.KeyAccessToken).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("tok"))

	v, ok, err := repo.Get(context.Background(), domain.KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_Get_Missing(t *testing.T) {
	repo, mock := setupRepo(t)
	defer repo.Close()

	mock.ExpectQuery("SELECT value FROM client_state").
		WithArgs("cli", domain.KeyUser).
		WillReturnError(pgx.ErrNoRows)

	_, ok, err := repo.Get(context.Background(), domain.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_Get_Error(t *testing.T) {
	repo, mock := setupRepo(t)
	defer repo.Close()

	mock.ExpectQuery("SELECT value FROM client_state").
		WithArgs("cli", domain.KeyUser).
		WillReturnError(errors.New("connection reset"))

	_, _, err := repo.Get(context.Background(), domain.KeyUser)
	assert.Error(t, err)
}

func TestStateRepository_Set_Upserts(t *testing.T) {
	repo, mock := setupRepo(t)
	defer repo.Close()

	mock.ExpectExec("INSERT INTO client_state").
		WithArgs("cli", domain.KeyAccessToken, "tok").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Set(context.Background(), domain.KeyAccessToken, "tok"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_Delete(t *testing.T) {
	repo, mock := setupRepo(t)
	defer repo.Close()

	mock.ExpectExec("DELETE FROM client_state").
		WithArgs("cli", domain.SessionKeys).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	require.NoError(t, repo.Delete(context.Background(), domain.SessionKeys...))
	require.NoError(t, repo.Delete(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
