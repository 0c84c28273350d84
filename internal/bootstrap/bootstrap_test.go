package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HunterSystem_Go/internal/config"
	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/event"
	"github.com/osse101/HunterSystem_Go/internal/hunter"
	"github.com/osse101/HunterSystem_Go/internal/sse"
)

func TestLoadSeed_MissingFileFallsBack(t *testing.T) {
	cfg := &config.Config{SeedPath: filepath.Join(t.TempDir(), "missing.json")}

	seed, err := LoadSeed(cfg)
	require.NoError(t, err)
	assert.Equal(t, hunter.DefaultSeed(), seed)
}

func TestLoadSeed_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"titles":[{"id":1,"equipped":true},{"id":2,"equipped":true}]}`), 0o600))

	_, err := LoadSeed(&config.Config{SeedPath: path})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestInitializeStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := InitializeStore(ctx, &config.Config{StorageDriver: config.StorageDriverMemory})
		require.NoError(t, err)
		assert.NoError(t, store.Health.Ping(ctx))
		assert.NoError(t, store.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{
			StorageDriver: config.StorageDriverSQLite,
			SQLitePath:    filepath.Join(t.TempDir(), "data", "hunter.db"),
		}
		store, err := InitializeStore(ctx, cfg)
		require.NoError(t, err)
		defer store.Close()

		assert.NoError(t, store.Health.Ping(ctx))
		ids, err := store.Snapshots.ListUserIDs(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < LogFileRetentionLimit+2; i++ {
		name := filepath.Join(dir, fmt.Sprintf("session_2026-10-%02d_00-00-00.log", i+1))
		require.NoError(t, os.WriteFile(name, nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600))

	cleanupLogs(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, LogFileRetentionCount)
	assert.Equal(t, "session_2026-10-12_00-00-00.log", logs[len(logs)-1])
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestReportDeadLetters(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		assert.Nil(t, reportDeadLetters(filepath.Join(t.TempDir(), "none.jsonl")))
	})

	t.Run("counts by type", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deadletter.jsonl")
		w, err := event.NewDeadLetterWriter(path)
		require.NoError(t, err)
		for _, typ := range []event.Type{event.HunterLevelUp, event.HunterLevelUp, event.HunterLedgerReset} {
			require.NoError(t, w.Write(event.Event{ID: "e", Version: "1.0", Type: typ}, 3, fmt.Errorf("bus down")))
		}
		require.NoError(t, w.Close())

		counts := reportDeadLetters(path)
		assert.Equal(t, map[event.Type]int{event.HunterLevelUp: 2, event.HunterLedgerReset: 1}, counts)
	})
}

func TestInitializeEventSystem_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{DeadLetterPath: filepath.Join(dir, "nested", "dl.jsonl")}

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NoError(t, publisher.Shutdown(context.Background()))

	_, err = os.Stat(filepath.Join(dir, "nested"))
	assert.NoError(t, err)
}

func TestOpenSessionLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	now := time.Date(2026, 10, 18, 20, 30, 0, 0, time.UTC)

	f, err := openSessionLog(dir, now)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, filepath.Join(dir, "session_2026-10-18_20-30-00.log"), f.Name())
}

func TestRunShutdown_RunsEveryStepAndJoinsErrors(t *testing.T) {
	var order []string
	step := func(name string, err error) shutdownStep {
		return shutdownStep{name, func(context.Context) error {
			order = append(order, name)
			return err
		}}
	}
	boom := fmt.Errorf("boom")

	err := runShutdown(context.Background(), []shutdownStep{
		step("sse", nil),
		step("http", boom),
		step("store", nil),
	})

	assert.Equal(t, []string{"sse", "http", "store"}, order)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "http: boom")
}

func TestGracefulShutdown_ClosesStreamsAndStore(t *testing.T) {
	hub := sse.NewHub()
	client := hub.Register(nil, "")
	closed := false
	store := &Store{Close: func() error { closed = true; return nil }}

	require.NoError(t, GracefulShutdown(context.Background(), ShutdownComponents{SSEHub: hub, Store: store}))

	_, open := <-client.EventChannel
	assert.False(t, open)
	assert.True(t, closed)
}

func TestRegisterEventHandlers_BridgesToHub(t *testing.T) {
	bus := event.NewMemoryBus()
	hub := sse.NewHub()
	defer hub.Stop()
	client := hub.Register(nil, "u1")

	RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, SSEHub: hub})

	evt := event.NewLevelUpEvent("u1", domain.AddXPResult{OldLevel: 1, NewLevel: 2, LevelsGained: 1}, "quest")
	require.NoError(t, bus.Publish(context.Background(), evt))

	select {
	case got := <-client.EventChannel:
		assert.Equal(t, sse.EventTypeLevelUp, got.Type)
	case <-time.After(time.Second):
		t.Fatal("level up never reached the hub")
	}
}
