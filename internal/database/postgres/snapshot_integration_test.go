package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

func testSnapshot(revision int64) domain.Snapshot {
	return domain.Snapshot{
		Version:  domain.SnapshotSchemaVersion,
		Revision: revision,
		UserData: domain.ProgressionState{
			Level: 12, CurrentXP: 750, XPToNextLevel: 1000, TotalXP: 12000,
			Stats: map[string]int64{domain.StatPower: 600, domain.StatSkillPoints: 3},
		},
		Ledger: domain.RewardLedger{
			Daily: []domain.RewardInstance{
				{Kind: domain.RewardKindDaily, ID: 1, Title: "Read 5 Chapters", Progress: 3, Total: 5, RewardXP: 100},
			},
			Calendar: []domain.RewardInstance{
				{Kind: domain.RewardKindCalendarDay, ID: 1, Progress: 1, Total: 1, RewardXP: 40, Claimed: true},
			},
			Cycle: domain.LedgerCycle{Day: "2026-10-18", Week: "2026-W42"},
		},
		Titles:    []domain.Title{{ID: 1, Name: "E-Rank Hunter", Unlocked: true, Equipped: true}},
		UpdatedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotRepository_Integration(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewSnapshotRepository(pool)
	ctx := context.Background()

	t.Run("missing user loads nil", func(t *testing.T) {
		got, err := repo.Load(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("round trip", func(t *testing.T) {
		want := testSnapshot(1)
		require.NoError(t, repo.Save(ctx, "alice", want))

		got, err := repo.Load(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.UserData, got.UserData)
		assert.Equal(t, want.Ledger, got.Ledger)
		assert.Equal(t, want.Titles, got.Titles)
		assert.Equal(t, int64(1), got.Revision)
		assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("stale revision conflicts", func(t *testing.T) {
		err := repo.Save(ctx, "alice", testSnapshot(1))
		assert.ErrorIs(t, err, domain.ErrSnapshotConflict)

		err = repo.Save(ctx, "alice", testSnapshot(3))
		assert.ErrorIs(t, err, domain.ErrSnapshotConflict)

		require.NoError(t, repo.Save(ctx, "alice", testSnapshot(2)))
	})

	t.Run("concurrent writers at the same revision", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "bob", testSnapshot(1)))

		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Save(ctx, "bob", testSnapshot(2))
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			if err == nil {
				wins++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrSnapshotConflict)
		}
		assert.Equal(t, 1, wins)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := pool.Exec(ctx, `INSERT INTO hunter_snapshots (user_id, revision, document) VALUES ('broken', 1, '{"userData":{"level":0}}')`)
		require.NoError(t, err)

		_, err = repo.Load(ctx, "broken")
		assert.ErrorIs(t, err, domain.ErrMalformedSnapshot)
	})

	t.Run("list users", func(t *testing.T) {
		ids, err := repo.ListUserIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob", "broken"}, ids)
	})
}
