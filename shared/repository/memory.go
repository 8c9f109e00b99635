package repository

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"hotel/infras/otel"
	"hotel/shared/constant"
	"hotel/shared/dto"
)

// MemoryRepository keeps records in process and evaluates filters against their `db` tags.
// The column list arguments are accepted for interface parity and ignored.
type MemoryRepository[T any] struct {
	mu            sync.RWMutex
	records       []T
	otel          otel.Otel
	entitas       string
	primaryColumn string
}

func NewMemoryRepository[T any](entitasName, primaryColumn string, otl otel.Otel, seed ...T) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		records:       slices.Clone(seed),
		otel:          otl,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
	}
}

func (repo *MemoryRepository[T]) scope(ctx context.Context, method string) otel.Scope {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.memory.%s", constant.OtelRepositoryScopeName, repo.entitas, method))

	return scope
}

func (repo *MemoryRepository[T]) Insert(ctx context.Context, model T) error {
	defer repo.scope(ctx, "Insert").End()

	id, _ := dto.FieldValue(model, repo.primaryColumn)

	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, record := range repo.records {
		if current, _ := dto.FieldValue(record, repo.primaryColumn); id != nil && dto.Equal(current, id) {
			return fmt.Errorf("failed to insert data (%s): duplicate %s %v", repo.entitas, repo.primaryColumn, id)
		}
	}

	repo.records = append(repo.records, model)

	return nil
}

func (repo *MemoryRepository[T]) Get(ctx context.Context, filter dto.FilterGroup, _ ...string) (T, error) {
	defer repo.scope(ctx, "Get").End()

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, record := range repo.records {
		if filter.Match(record) {
			return record, nil
		}
	}

	var zero T

	return zero, nil
}

// GetForUpdate is Get. Isolation comes from the memory transactor.
func (repo *MemoryRepository[T]) GetForUpdate(ctx context.Context, filter dto.FilterGroup) (T, error) {
	return repo.Get(ctx, filter)
}

func (repo *MemoryRepository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, _ ...string) ([]T, error) {
	defer repo.scope(ctx, "GetAll").End()

	repo.mu.RLock()

	models := []T{}

	for _, record := range repo.records {
		if filter.Match(record) {
			models = append(models, record)
		}
	}

	repo.mu.RUnlock()

	if params.SortBy != "" {
		desc := strings.EqualFold(params.SortDir, dto.SortDirDesc)

		slices.SortStableFunc(models, func(left, right T) int {
			lv, _ := dto.FieldValue(left, params.SortBy)
			rv, _ := dto.FieldValue(right, params.SortBy)

			cmp, _ := dto.Compare(lv, rv)
			if desc {
				return -cmp
			}

			return cmp
		})
	}

	return paginate(models, params.Page, params.Limit), nil
}

func paginate[T any](models []T, page, limit int) []T {
	if limit <= 0 {
		return models
	}

	offset := 0
	if page > 0 {
		offset = (page - 1) * limit
	}

	if offset >= len(models) {
		return []T{}
	}

	return models[offset:min(offset+limit, len(models))]
}

func (repo *MemoryRepository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	defer repo.scope(ctx, "Exist").End()

	if len(filter.Filters) == 0 {
		return false, errRequiredFilter
	}

	count, err := repo.Count(ctx, filter)

	return count > 0, err
}

func (repo *MemoryRepository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	defer repo.scope(ctx, "Count").End()

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	count := 0

	for _, record := range repo.records {
		if filter.Match(record) {
			count++
		}
	}

	return count, nil
}

func (repo *MemoryRepository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	defer repo.scope(ctx, "Update").End()

	if len(filter.Filters) == 0 {
		return errRequiredFilter
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	for idx := range repo.records {
		if !filter.Match(repo.records[idx]) {
			continue
		}

		updated := repo.records[idx]

		for column, value := range mod {
			if err := setField(&updated, column, value); err != nil {
				return fmt.Errorf("failed to update data (%s): %w", repo.entitas, err)
			}
		}

		repo.records[idx] = updated
	}

	return nil
}

func (repo *MemoryRepository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	defer repo.scope(ctx, "Delete").End()

	if len(filter.Filters) == 0 {
		return errRequiredFilter
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.records = slices.DeleteFunc(repo.records, func(record T) bool {
		return filter.Match(record)
	})

	return nil
}

// setField assigns value to the field tagged `db:"column"`, dereferencing pointers
// and converting between compatible kinds.
func setField(target any, column string, value any) error {
	field, ok := fieldByColumn(reflect.ValueOf(target).Elem(), column)
	if !ok {
		return fmt.Errorf("unknown column %s", column)
	}

	if value == nil {
		field.SetZero()

		return nil
	}

	val := reflect.ValueOf(value)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			field.SetZero()

			return nil
		}

		val = val.Elem()
	}

	if field.Kind() == reflect.Pointer {
		ptr := reflect.New(field.Type().Elem())
		if !val.Type().ConvertibleTo(ptr.Elem().Type()) {
			return fmt.Errorf("cannot assign %s to column %s", val.Type(), column)
		}

		ptr.Elem().Set(val.Convert(ptr.Elem().Type()))
		field.Set(ptr)

		return nil
	}

	if !val.Type().ConvertibleTo(field.Type()) {
		return fmt.Errorf("cannot assign %s to column %s", val.Type(), column)
	}

	field.Set(val.Convert(field.Type()))

	return nil
}

func fieldByColumn(val reflect.Value, column string) (reflect.Value, bool) {
	typ := val.Type()

	for idx := range typ.NumField() {
		field := typ.Field(idx)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if found, ok := fieldByColumn(val.Field(idx), column); ok {
				return found, true
			}

			continue
		}

		if field.Tag.Get("db") == column {
			return val.Field(idx), true
		}
	}

	return reflect.Value{}, false
}
