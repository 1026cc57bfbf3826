package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/userdesk/internal/database"
	"github.com/jask/userdesk/internal/database/repository"
	"github.com/jask/userdesk/internal/users"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestUserRepoCRUD(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepo(openDB(t))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	created, err := repo.Create(ctx, users.Payload{Username: "alice", Email: "a@example.com", Password: "secret1", Phone: "555"})
	require.NoError(t, err)
	require.NotZero(t, created.UserID)
	require.Equal(t, "alice", created.Username)
	require.Empty(t, created.Password, "passwords are never read back")

	updated, err := repo.Update(ctx, created.UserID, users.Payload{Username: "alice2", Email: "a2@example.com"})
	require.NoError(t, err)
	require.Equal(t, "alice2", updated.Username)
	require.Empty(t, updated.Phone, "update replaces every field")

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.UserID))
	_, err = repo.Get(ctx, created.UserID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepoUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	repo := repository.NewUserRepo(db)

	u, err := repo.Create(ctx, users.Payload{Username: "bob", Email: "b@example.com", Password: "first-pass"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, u.UserID, users.Payload{Username: "bob", Email: "b@example.com"})
	require.NoError(t, err)

	var stored string
	require.NoError(t, db.QueryRow(`SELECT password FROM users WHERE user_id = ?`, u.UserID).Scan(&stored))
	require.Equal(t, "first-pass", stored)

	_, err = repo.Update(ctx, u.UserID, users.Payload{Username: "bob", Email: "b@example.com", Password: "changed"})
	require.NoError(t, err)
	require.NoError(t, db.QueryRow(`SELECT password FROM users WHERE user_id = ?`, u.UserID).Scan(&stored))
	require.Equal(t, "changed", stored)
}

func TestUserRepoDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepo(openDB(t))

	_, err := repo.Create(ctx, users.Payload{Username: "carol", Email: "c@example.com"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, users.Payload{Username: "carol", Email: "other@example.com"})
	require.ErrorIs(t, err, repository.ErrDuplicateUsername)

	other, err := repo.Create(ctx, users.Payload{Username: "dave", Email: "d@example.com"})
	require.NoError(t, err)
	_, err = repo.Update(ctx, other.UserID, users.Payload{Username: "carol", Email: "d@example.com"})
	require.ErrorIs(t, err, repository.ErrDuplicateUsername)
}

func TestUserRepoMissingRows(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepo(openDB(t))

	_, err := repo.Update(ctx, 404, users.Payload{Username: "x", Email: "x@example.com"})
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, 404), repository.ErrNotFound)
}

func TestSeedDemoUsersIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	require.NoError(t, database.SeedDemoUsers(ctx, db, 30))
	require.NoError(t, database.SeedDemoUsers(ctx, db, 30))

	n, err := repository.NewUserRepo(db).Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 36, n)
}

func TestSeedDemoUsersRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	_, err := db.Exec(`CREATE TRIGGER block_frank BEFORE INSERT ON users
		WHEN NEW.username = 'frank' BEGIN SELECT RAISE(ABORT, 'blocked'); END`)
	require.NoError(t, err)

	err = database.SeedDemoUsers(ctx, db, 0)
	require.ErrorContains(t, err, "seed frank")

	n, err := repository.NewUserRepo(db).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n, "a failed seed leaves no partial rows")
}

func TestWithTxCommitsAndRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := repository.NewUserRepo(tx).Create(ctx, users.Payload{Username: "kept", Email: "k@example.com"})
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = database.WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := repository.NewUserRepo(tx).Create(ctx, users.Payload{Username: "dropped", Email: "d@example.com"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := repository.NewUserRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "kept", list[0].Username)
}

func TestMigrateTwice(t *testing.T) {
	db := openDB(t)
	require.NoError(t, database.Migrate(db))
}
