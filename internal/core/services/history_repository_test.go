package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/ramadan-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
	"github.com/comitanigiacomo/ramadan-tracker/internal/core/services"
)

const currentYear = 1447

type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockKVStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKVStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func statusArray(statuses ...string) string {
	days := make([]string, domain.DaysInMonth)
	for i := range days {
		days[i] = "pending"
	}
	copy(days, statuses)
	data, _ := json.Marshal(days)
	return string(data)
}

func seeded(t *testing.T, entries map[string]string) *repository.InMemoryKVStore {
	t.Helper()
	store := repository.NewInMemoryKVStore()
	for k, v := range entries {
		require.NoError(t, store.Set(context.Background(), k, v))
	}
	return store
}

func TestHistoryRepository_Load_EmptyOrMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
	}{
		{"Absent", nil},
		{"Empty string", ptr("")},
		{"Not JSON", ptr("{oops")},
		{"JSON array", ptr(statusArray())},
		{"JSON number", ptr("42")},
		{"JSON null", ptr("null")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := map[string]string{}
			if tt.raw != nil {
				entries[services.HistoryKey] = *tt.raw
			}

			repo := services.NewHistoryRepository(seeded(t, entries), currentYear, nil)
			history := repo.Load(context.Background())

			assert.NotNil(t, history)
			assert.Empty(t, history)
		})
	}
}

func TestHistoryRepository_Load_ReadFailure(t *testing.T) {
	kv := new(MockKVStore)
	kv.On("Get", mock.Anything, services.HistoryKey).Return("", errors.New("disk on fire"))
	kv.On("Get", mock.Anything, services.LegacyHistoryKey).Return("", domain.ErrKeyNotFound)

	history := services.NewHistoryRepository(kv, currentYear, nil).Load(context.Background())
	assert.Empty(t, history)
	kv.AssertExpectations(t)
}

func TestHistoryRepository_Load_ValidatesEachYear(t *testing.T) {
	valid := statusArray("completed", "qaza", "completed")

	raw := `{
		"1445": ` + valid + `,
		"1446": ["completed"],
		"1444": ` + strings.Replace(statusArray("completed"), `"pending"`, `"skipped"`, 1) + `,
		"1443": ` + strings.Replace(statusArray(), `"pending"`, `null`, 1) + `,
		"1442": ` + strings.Replace(statusArray(), `"pending"`, `3`, 1) + `,
		"1441": {"day": 1},
		"1440": null,
		"latest": ` + valid + `,
		"01439": ` + valid + `
	}`

	repo := services.NewHistoryRepository(seeded(t, map[string]string{services.HistoryKey: raw}), currentYear, nil)
	history := repo.Load(context.Background())

	require.Contains(t, history, 1445)
	assert.Equal(t, domain.StatusCompleted, history[1445][0])
	assert.Equal(t, domain.StatusQaza, history[1445][1])
	assert.Equal(t, domain.StatusCompleted, history[1445][2])
	assert.Equal(t, domain.StatusPending, history[1445][3])

	for _, year := range []int{1446, 1444, 1443, 1442, 1441, 1440} {
		require.Contains(t, history, year, "invalid years are repaired, not dropped")
		assert.Equal(t, *domain.NewYearRecord(), *history[year], "year %d must be reset as a whole", year)
	}

	assert.NotContains(t, history, 1439, "non-canonical keys stay out of the history")
	assert.Len(t, history, 7)
}

func TestHistoryRepository_NonCanonicalKeysSurviveSave(t *testing.T) {
	ctx := context.Background()
	raw := `{"1446":` + statusArray("completed") + `,"01446":` + statusArray("qaza") + `,"latest":["bogus"]}`
	kv := seeded(t, map[string]string{services.HistoryKey: raw})
	repo := services.NewHistoryRepository(kv, currentYear, nil)

	history := repo.Load(ctx)
	require.Len(t, history, 1)
	history[1446][1] = domain.StatusCompleted
	require.NoError(t, repo.Save(ctx, history))

	saved, err := kv.Get(ctx, services.HistoryKey)
	require.NoError(t, err)

	var entries map[string][]string
	require.NoError(t, json.Unmarshal([]byte(saved), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"completed", "completed", "pending"}, entries["1446"][:3])
	assert.Equal(t, "qaza", entries["01446"][0], "entry is written back unchanged")
	assert.Len(t, entries["latest"], domain.DaysInMonth, "malformed entry is written back repaired")
	assert.Equal(t, "pending", entries["latest"][0])

	reloaded := services.NewHistoryRepository(kv, currentYear, nil).Load(ctx)
	assert.Equal(t, history, reloaded)
}

func TestHistoryRepository_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewInMemoryKVStore()
	repo := services.NewHistoryRepository(kv, currentYear, nil)

	history := domain.NewHistory()
	history[1446] = domain.NewYearRecord()
	history[1446][0] = domain.StatusCompleted
	history[1446][29] = domain.StatusQaza
	history[1447] = domain.NewYearRecord()

	require.NoError(t, repo.Save(ctx, history))

	raw, err := kv.Get(ctx, services.HistoryKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"1446":["completed","pending"`)

	loaded := repo.Load(ctx)
	assert.Equal(t, history, loaded)
}

func TestHistoryRepository_SaveFailure(t *testing.T) {
	kv := new(MockKVStore)
	kv.On("Set", mock.Anything, services.HistoryKey, mock.Anything).Return(errors.New("quota exceeded"))

	err := services.NewHistoryRepository(kv, currentYear, nil).Save(context.Background(), domain.NewHistory())
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestHistoryRepository_LegacyMigration(t *testing.T) {
	ctx := context.Background()

	t.Run("Adopts legacy record and removes the legacy key", func(t *testing.T) {
		legacy := statusArray("completed", "completed", "qaza")
		kv := seeded(t, map[string]string{services.LegacyHistoryKey: legacy})

		history := services.NewHistoryRepository(kv, currentYear, nil).Load(ctx)

		require.Contains(t, history, currentYear)
		want := domain.NewYearRecord()
		want[0], want[1], want[2] = domain.StatusCompleted, domain.StatusCompleted, domain.StatusQaza
		assert.Equal(t, want, history[currentYear])

		_, err := kv.Get(ctx, services.LegacyHistoryKey)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)

		raw, err := kv.Get(ctx, services.HistoryKey)
		require.NoError(t, err, "adoption must be persisted")
		assert.Contains(t, raw, `"1447"`)
	})

	t.Run("Existing current year wins and legacy is still removed", func(t *testing.T) {
		current := `{"1447":` + statusArray("qaza") + `}`
		kv := seeded(t, map[string]string{
			services.HistoryKey:       current,
			services.LegacyHistoryKey: statusArray("completed"),
		})

		history := services.NewHistoryRepository(kv, currentYear, nil).Load(ctx)
		assert.Equal(t, domain.StatusQaza, history[currentYear][0])

		_, err := kv.Get(ctx, services.LegacyHistoryKey)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Wrong length legacy is not adopted but removed", func(t *testing.T) {
		kv := seeded(t, map[string]string{services.LegacyHistoryKey: `["completed","completed"]`})

		history := services.NewHistoryRepository(kv, currentYear, nil).Load(ctx)
		assert.NotContains(t, history, currentYear)

		_, err := kv.Get(ctx, services.LegacyHistoryKey)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Legacy with unknown statuses is adopted as all pending", func(t *testing.T) {
		kv := seeded(t, map[string]string{
			services.LegacyHistoryKey: strings.Replace(statusArray("completed"), `"completed"`, `"done"`, 1),
		})

		history := services.NewHistoryRepository(kv, currentYear, nil).Load(ctx)
		require.Contains(t, history, currentYear)
		assert.Equal(t, domain.NewYearRecord(), history[currentYear])
	})

	t.Run("Non-array legacy is removed", func(t *testing.T) {
		kv := seeded(t, map[string]string{services.LegacyHistoryKey: `{"a":1}`})

		history := services.NewHistoryRepository(kv, currentYear, nil).Load(ctx)
		assert.Empty(t, history)

		_, err := kv.Get(ctx, services.LegacyHistoryKey)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Corrupt legacy aborts and stays in place", func(t *testing.T) {
		kv := seeded(t, map[string]string{services.LegacyHistoryKey: `["completed",`})

		history := services.NewHistoryRepository(kv, currentYear, nil).Load(ctx)
		assert.Empty(t, history)

		raw, err := kv.Get(ctx, services.LegacyHistoryKey)
		require.NoError(t, err)
		assert.Equal(t, `["completed",`, raw)
	})

	t.Run("Migration runs after a malformed current blob", func(t *testing.T) {
		kv := seeded(t, map[string]string{
			services.HistoryKey:       "not json",
			services.LegacyHistoryKey: statusArray("completed"),
		})

		history := services.NewHistoryRepository(kv, currentYear, nil).Load(ctx)
		require.Contains(t, history, currentYear)
		assert.Equal(t, domain.StatusCompleted, history[currentYear][0])
	})

	t.Run("Failed persist keeps the legacy key", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Get", mock.Anything, services.HistoryKey).Return("", domain.ErrKeyNotFound)
		kv.On("Get", mock.Anything, services.LegacyHistoryKey).Return(statusArray("completed"), nil)
		kv.On("Set", mock.Anything, services.HistoryKey, mock.Anything).Return(errors.New("read-only"))

		history := services.NewHistoryRepository(kv, currentYear, nil).Load(ctx)
		assert.Contains(t, history, currentYear)
		kv.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func ptr(s string) *string {
	return &s
}
