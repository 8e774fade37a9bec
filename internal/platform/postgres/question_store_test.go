package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mathquiz/mathquiz/internal/domain"
	"github.com/mathquiz/mathquiz/internal/platform/postgres"
	"github.com/mathquiz/mathquiz/internal/store"
	"github.com/mathquiz/mathquiz/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresQuestionStoreLifecycle(t *testing.T) {
	db := testdb.OpenPostgres(t)
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresQuestionStore(tx, nil)

		right, err := domain.NewQuestion(domain.Problem{Expression: "12 + 7", Answer: 19}, base)
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, right))

		wrong, err := domain.NewQuestion(domain.Problem{Expression: "9 x 9", Answer: 81}, base)
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, wrong))

		open, err := s.GetRandomOpen(ctx)
		require.NoError(t, err)
		assert.True(t, open.IsOpen())

		correct, err := s.RecordAnswer(ctx, right.ID, 19, base.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, correct)

		correct, err = s.RecordAnswer(ctx, wrong.ID, 80, base.Add(2*time.Minute))
		require.NoError(t, err)
		assert.False(t, correct)

		_, err = s.RecordAnswer(ctx, wrong.ID, 81, base.Add(3*time.Minute))
		assert.ErrorIs(t, err, store.ErrAlreadyAnswered)

		mistakes, err := s.ListMistakes(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, mistakes)
		assert.Equal(t, wrong.ID, mistakes[0].ID)

		stat, err := s.CountAnswered(ctx, base, base.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, domain.Statistic{Correct: 1, Total: 1}, stat)

		stat, err = s.CountAnswered(ctx, base.Add(time.Hour), base)
		require.NoError(t, err)
		assert.Equal(t, domain.Statistic{}, stat)

		records, err := s.ListAnsweredBetween(ctx, base, base.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.True(t, records[0].Correct)
	})
}
