package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(StoreConfig{Path: filepath.Join(t.TempDir(), "atlas.db")})
	require.NoError(t, err, "NewStore")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEnsureUser_CreatesDefaultEmployee(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.EnsureUser(ctx, "sara@d10.sa")

	require.NoError(t, err, "EnsureUser")
	assert.NotEmpty(t, user.ID, "ID should be assigned")
	assert.Equal(t, "sara", user.Name, "name defaults to the email local part")
	assert.Equal(t, "employee", user.Role)
	assert.Equal(t, "general", user.Department)
}

func TestEnsureUser_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.EnsureUser(ctx, "sara@d10.sa")
	require.NoError(t, err)

	second, err := store.EnsureUser(ctx, "sara@d10.sa")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same user on repeat calls")
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindUserByEmail(context.Background(), "nobody@d10.sa")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertKPI_ReplacesSameMonth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.EnsureUser(ctx, "sara@d10.sa")
	require.NoError(t, err)

	_, err = store.UpsertKPI(ctx, &KPIRecord{
		UserID: user.ID, Department: "sales", Month: "2026-08",
		Target: 10, Actual: 5, Drift: 0.5,
	})
	require.NoError(t, err)

	_, err = store.UpsertKPI(ctx, &KPIRecord{
		UserID: user.ID, Department: "sales", Month: "2026-08",
		Target: 10, Actual: 8, Drift: 0.2,
	})
	require.NoError(t, err)

	latest, err := store.LatestKPI(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, latest.Actual, "second upsert should replace the row")
	assert.Equal(t, 0.2, latest.Drift)
}

func TestLatestKPI_OrdersByMonth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.EnsureUser(ctx, "sara@d10.sa")
	require.NoError(t, err)

	for _, month := range []string{"2026-06", "2026-08", "2026-07"} {
		_, err = store.UpsertKPI(ctx, &KPIRecord{
			UserID: user.ID, Department: "sales", Month: month,
			Target: 10, Actual: 9, Drift: 0.1,
		})
		require.NoError(t, err)
	}

	latest, err := store.LatestKPI(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-08", latest.Month, "latest month wins")
}

func TestLatestKPI_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.EnsureUser(ctx, "sara@d10.sa")
	require.NoError(t, err)

	_, err = store.LatestKPI(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLastMessageTime(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.EnsureUser(ctx, "sara@d10.sa")
	require.NoError(t, err)

	last, err := store.LastMessageTime(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, last, "no messages yet")

	earlier := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	later := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordMessage(ctx, &MessageRecord{
		UserID: user.ID, Channel: "slack", Text: "first", SentAt: earlier,
	}))
	require.NoError(t, store.RecordMessage(ctx, &MessageRecord{
		UserID: user.ID, Channel: "slack", Text: "second", SentAt: later,
	}))

	last, err = store.LastMessageTime(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Equal(later), "most recent send time wins")
}

func TestFindActivePrompt_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindActivePrompt(context.Background(), "coach", "system")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertPrompt_AndFind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.UpsertPrompt(ctx, &PromptRecord{
		AgentType: "coach",
		Name:      "system",
		Template:  "custom system prompt",
		Variables: map[string]string{"name": "employee name"},
		Active:    true,
	})
	require.NoError(t, err)

	body, err := store.FindActivePrompt(ctx, "coach", "system")
	require.NoError(t, err)
	assert.Equal(t, "custom system prompt", body)
}

func TestFindActivePrompt_IgnoresInactive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.UpsertPrompt(ctx, &PromptRecord{
		AgentType: "coach",
		Name:      "system",
		Template:  "disabled prompt",
		Active:    false,
	})
	require.NoError(t, err)

	_, err = store.FindActivePrompt(ctx, "coach", "system")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedPrompt_NeverOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.UpsertPrompt(ctx, &PromptRecord{
		AgentType: "coach",
		Name:      "system",
		Template:  "operator override",
		Active:    true,
	})
	require.NoError(t, err)

	err = store.SeedPrompt(ctx, "coach", "system", "builtin default", nil)
	require.NoError(t, err)

	body, err := store.FindActivePrompt(ctx, "coach", "system")
	require.NoError(t, err)
	assert.Equal(t, "operator override", body, "seeding must not clobber overrides")
}

func TestListPrompts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedPrompt(ctx, "coach", "system", "a", nil))
	require.NoError(t, store.SeedPrompt(ctx, "coach", "user_template", "b", map[string]string{"name": "x"}))
	require.NoError(t, store.SeedPrompt(ctx, "orchestrator", "system", "c", nil))

	records, err := store.ListPrompts(ctx, "coach")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "system", records[0].Name, "sorted by prompt name")
	assert.Equal(t, "user_template", records[1].Name)
	assert.Equal(t, map[string]string{"name": "x"}, records[1].Variables)
}
