package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	"hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guest struct {
	ID     string  `db:"id"`
	Name   string  `db:"name"`
	Nights int     `db:"nights"`
	Note   *string `db:"note"`
	model.Metadata
}

func byID(id string) dto.FilterGroup {
	return dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: id, Operator: dto.FilterOperatorEq}}}
}

func newGuests() *repository.MemoryRepository[guest] {
	return repository.NewMemoryRepository("guest", "id", mocks.NewOtel(),
		guest{ID: "g-1", Name: "Alice", Nights: 3},
		guest{ID: "g-2", Name: "Bob", Nights: 1},
		guest{ID: "g-3", Name: "Carol", Nights: 2},
	)
}

func TestMemoryRepository_InsertGet(t *testing.T) {
	ctx := context.Background()
	repo := newGuests()

	require.NoError(t, repo.Insert(ctx, guest{ID: "g-4", Name: "Dan"}))
	assert.Error(t, repo.Insert(ctx, guest{ID: "g-4", Name: "Duplicate"}))

	got, err := repo.Get(ctx, byID("g-4"))
	require.NoError(t, err)
	assert.Equal(t, "Dan", got.Name)

	missing, err := repo.Get(ctx, byID("nope"))
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestMemoryRepository_GetAll(t *testing.T) {
	ctx := context.Background()
	repo := newGuests()

	all, err := repo.GetAll(ctx, dto.QueryParams{SortBy: "nights", SortDir: dto.SortDirAsc}, dto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"g-2", "g-3", "g-1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	page, err := repo.GetAll(ctx, dto.QueryParams{Page: 2, Limit: 2, SortBy: "name", SortDir: dto.SortDirDesc}, dto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "g-1", page[0].ID)

	beyond, err := repo.GetAll(ctx, dto.QueryParams{Page: 5, Limit: 2}, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Empty(t, beyond)

	filtered, err := repo.GetAll(ctx, dto.QueryParams{}, dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "nights", Value: 2, Operator: dto.FilterOperatorGreaterEq}},
	})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	count, err := repo.Count(ctx, dto.FilterGroup{Filters: []any{dto.Filter{Field: "name", Value: "o", Operator: dto.FilterOperatorLike}}})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemoryRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := newGuests()
	note := "vip"
	now := time.Now()

	require.NoError(t, repo.Update(ctx, map[string]any{
		"nights":      int64(5),
		"note":        &note,
		"modified_at": now,
		"modified_by": "admin",
	}, byID("g-2")))

	got, err := repo.Get(ctx, byID("g-2"))
	require.NoError(t, err)
	assert.Equal(t, 5, got.Nights)
	require.NotNil(t, got.Note)
	assert.Equal(t, "vip", *got.Note)
	assert.Equal(t, "admin", got.ModifiedBy)
	assert.True(t, got.ModifiedAt.Equal(now))

	assert.Error(t, repo.Update(ctx, map[string]any{"unknown": 1}, byID("g-2")))
	assert.Error(t, repo.Update(ctx, map[string]any{"nights": 1}, dto.FilterGroup{}))

	require.NoError(t, repo.Delete(ctx, byID("g-2")))

	exist, err := repo.Exist(ctx, byID("g-2"))
	require.NoError(t, err)
	assert.False(t, exist)

	_, err = repo.Exist(ctx, dto.FilterGroup{})
	assert.Error(t, err)
	assert.Error(t, repo.Delete(ctx, dto.FilterGroup{}))
}

func TestMemoryTransactor(t *testing.T) {
	transactor := repository.NewTransactor(nil)
	ctx := context.Background()

	err := transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		return transactor.WithinTransaction(ctx, func(context.Context) error { return nil })
	})
	require.NoError(t, err)

	counter := 0

	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_ = transactor.WithinTransaction(ctx, func(context.Context) error {
				current := counter
				time.Sleep(time.Microsecond)
				counter = current + 1

				return nil
			})
		}()
	}

	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestRepository_GetForUpdateRequiresTransaction(t *testing.T) {
	repo := repository.NewRepository[guest]("guest", "guests", "id", nil, mocks.NewOtel())

	_, err := repo.GetForUpdate(context.Background(), byID("g-1"))
	assert.Error(t, err)

	where, args := repo.BuildWhereClause(context.Background(), byID("g-1"))
	assert.Contains(t, where, "id = :id")
	assert.Equal(t, "g-1", args["id"])
}
