package database_test

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/scythe504/imposter-backend/internal"
	"github.com/scythe504/imposter-backend/internal/database"
	"github.com/scythe504/imposter-backend/internal/words"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var store *database.Postgres

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("imposter"),
		postgres.WithUsername("imposter"),
		postgres.WithPassword("imposter"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		panic(err)
	}

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}
	store, err = database.NewPostgres(ctx, connString)
	if err != nil {
		panic(err)
	}

	code := m.Run()

	store.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	ctx := context.Background()

	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx), "schema creation is idempotent")

	t.Run("LoadWords_Empty", func(t *testing.T) {
		entries, err := store.LoadWords(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("SeedWords", func(t *testing.T) {
		n, err := store.SeedWords(ctx, []internal.WordEntry{
			{Word: "Cat", Category: "Animals"},
			{Word: "Pizza", Category: "Food"},
			{Word: " ", Category: "Food"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("SeedWords_SkipsExisting", func(t *testing.T) {
		n, err := store.SeedWords(ctx, []internal.WordEntry{
			{Word: "Cat", Category: "Animals"},
			{Word: "Dog", Category: "Animals"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("LoadWords", func(t *testing.T) {
		entries, err := store.LoadWords(ctx)
		require.NoError(t, err)
		assert.Equal(t, []internal.WordEntry{
			{Word: "Cat", Category: "Animals"},
			{Word: "Dog", Category: "Animals"},
			{Word: "Pizza", Category: "Food"},
		}, entries)
	})

	t.Run("BankFromDatabase", func(t *testing.T) {
		bank, err := words.Load(ctx, store)
		require.NoError(t, err)
		assert.Equal(t, 3, bank.Len())
		assert.Equal(t, []string{"Animals", "Food"}, bank.Categories())
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.LoadWords(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
