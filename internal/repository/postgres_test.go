package repository

import (
	"apiforge/internal/db"
	"apiforge/internal/models"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newTestPool поднимает чистый Postgres в контейнере и применяет схему.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("интеграционный тест с Postgres пропущен в -short")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "forge",
				"POSTGRES_PASSWORD": "forge",
				"POSTGRES_DB":       "forge",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	}

	container, err := testcontainers.GenericContainer(ctx, req)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://forge:forge@%s:%s/forge?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool))
	// Повторный прогон схемы не должен падать.
	require.NoError(t, db.Migrate(ctx, pool))
	return pool
}

func TestPostgresRepositories(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	projects := NewProjectRepository(pool)
	endpoints := NewEndpointRepository(pool)
	resets := NewPasswordResetRepository(pool)

	owner := &models.User{Name: "Owner", Email: "owner@example.com", PasswordHash: "hash-1"}
	require.NoError(t, users.CreateUser(ctx, owner))
	stranger := &models.User{Name: "Stranger", Email: "stranger@example.com", PasswordHash: "hash-2"}
	require.NoError(t, users.CreateUser(ctx, stranger))

	t.Run("users", func(t *testing.T) {
		assert.NotEqual(t, uuid.Nil, owner.ID)

		err := users.CreateUser(ctx, &models.User{Name: "Dup", Email: "owner@example.com", PasswordHash: "x"})
		assert.ErrorIs(t, err, ErrDuplicate)

		taken, err := users.IsEmailTaken(ctx, "owner@example.com")
		require.NoError(t, err)
		assert.True(t, taken)

		got, err := users.GetUserByID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", got.Email)

		_, err = users.GetUserByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("projects and endpoints", func(t *testing.T) {
		for _, name := range []string{"beta", "Alpha", "alpha"} {
			require.NoError(t, projects.Create(ctx, &models.Project{Name: name, UserID: owner.ID}))
		}
		require.NoError(t, projects.Create(ctx, &models.Project{Name: "foreign", UserID: stranger.ID}))

		list, err := projects.ListByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Alpha", list[0].Name)
		assert.Equal(t, "alpha", list[1].Name)
		assert.Equal(t, "beta", list[2].Name)

		p := list[0]
		_, err = projects.GetOwned(ctx, p.ID, stranger.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		empty, err := projects.GetOwnedWithEndpoints(ctx, p.ID, owner.ID)
		require.NoError(t, err)
		assert.NotNil(t, empty.Endpoints)
		assert.Empty(t, empty.Endpoints)

		for _, path := range []string{"/users", "/Orders", "/items"} {
			require.NoError(t, endpoints.Create(ctx, &models.Endpoint{Method: "GET", Path: path, JSONBody: "[]", ProjectID: p.ID}))
		}

		full, err := projects.GetOwnedWithEndpoints(ctx, p.ID, owner.ID)
		require.NoError(t, err)
		require.Len(t, full.Endpoints, 3)
		assert.Equal(t, "/Orders", full.Endpoints[0].Path)
		assert.Equal(t, "/items", full.Endpoints[1].Path)
		assert.Equal(t, "/users", full.Endpoints[2].Path)

		_, err = projects.GetOwnedWithEndpoints(ctx, p.ID, stranger.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("password reset tokens", func(t *testing.T) {
		expires := time.Now().Add(time.Hour)
		require.NoError(t, resets.Replace(ctx, owner.ID, "first", expires))
		require.NoError(t, resets.Replace(ctx, owner.ID, "second", expires))

		_, err := resets.GetByHash(ctx, "first")
		assert.ErrorIs(t, err, ErrNotFound)

		tok, err := resets.GetByHash(ctx, "second")
		require.NoError(t, err)
		assert.Equal(t, owner.ID, tok.UserID)

		require.NoError(t, resets.Consume(ctx, tok, "new-hash"))
		assert.ErrorIs(t, resets.Consume(ctx, tok, "newer-hash"), ErrNotFound)

		u, err := users.GetUserByID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", u.PasswordHash)
	})
}
