package dto_test

import (
	"testing"
	"time"

	"hotel/shared/dto"
	"hotel/shared/model"

	"github.com/stretchr/testify/assert"
)

type matchRecord struct {
	ID       string    `db:"id"`
	Name     string    `db:"name"`
	Price    float64   `db:"price"`
	Capacity int       `db:"capacity"`
	Day      time.Time `db:"day"`
	Note     *string   `db:"note"`
	Ignored  string
	model.Metadata
}

func TestFilter_Match(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	note := "late arrival"
	record := matchRecord{
		ID:       "r-1",
		Name:     "Deluxe Suite",
		Price:    249.5,
		Capacity: 2,
		Day:      day,
		Note:     &note,
		Metadata: model.Metadata{CreatedBy: "admin"},
	}

	tests := []struct {
		name   string
		filter dto.Filter
		want   bool
	}{
		{"eq string", dto.Filter{Field: "id", Value: "r-1", Operator: dto.FilterOperatorEq}, true},
		{"eq mismatch", dto.Filter{Field: "id", Value: "r-2", Operator: dto.FilterOperatorEq}, false},
		{"eq numeric kinds", dto.Filter{Field: "capacity", Value: 2.0, Operator: dto.FilterOperatorEq}, true},
		{"not eq", dto.Filter{Field: "id", Value: "r-2", Operator: dto.FilterOperatorNotEq}, true},
		{"like is case insensitive", dto.Filter{Field: "name", Value: "suite", Operator: dto.FilterOperatorLike}, true},
		{"like miss", dto.Filter{Field: "name", Value: "single", Operator: dto.FilterOperatorLike}, false},
		{"in", dto.Filter{Field: "id", Value: []string{"r-0", "r-1"}, Operator: dto.FilterOperatorIn}, true},
		{"in miss", dto.Filter{Field: "id", Value: []string{"r-0"}, Operator: dto.FilterOperatorIn}, false},
		{"in non slice", dto.Filter{Field: "id", Value: "r-1", Operator: dto.FilterOperatorIn}, false},
		{"less eq", dto.Filter{Field: "price", Value: 249.5, Operator: dto.FilterOperatorLessEq}, true},
		{"less", dto.Filter{Field: "price", Value: 249.5, Operator: dto.FilterOperatorLess}, false},
		{"greater eq time", dto.Filter{Field: "day", Value: day, Operator: dto.FilterOperatorGreaterEq}, true},
		{"greater time", dto.Filter{Field: "day", Value: day.AddDate(0, 0, -1), Operator: dto.FilterOperatorGreater}, true},
		{"pointer deref", dto.Filter{Field: "note", Value: "late arrival", Operator: dto.FilterOperatorEq}, true},
		{"is not null", dto.Filter{Field: "note", Operator: dto.FilterIsNotNull}, true},
		{"embedded field", dto.Filter{Field: "created_by", Value: "admin", Operator: dto.FilterOperatorEq}, true},
		{"unknown column", dto.Filter{Field: "missing", Value: "x", Operator: dto.FilterOperatorEq}, false},
		{"plain query unsupported", dto.Filter{Field: "id", Value: "id = 'r-1'", Operator: dto.FilterPlainQuery}, false},
		{"type mismatch", dto.Filter{Field: "price", Value: "249.5", Operator: dto.FilterOperatorLess}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(record))
		})
	}

	t.Run("is null on nil pointer", func(t *testing.T) {
		filter := dto.Filter{Field: "note", Operator: dto.FilterIsNull}
		assert.True(t, filter.Match(matchRecord{}))
	})

	t.Run("pointer record", func(t *testing.T) {
		filter := dto.Filter{Field: "id", Value: "r-1", Operator: dto.FilterOperatorEq}
		assert.True(t, filter.Match(&record))
	})
}

func TestFilterGroup_Match(t *testing.T) {
	record := matchRecord{ID: "r-1", Name: "Standard Room", Capacity: 1}

	idMatch := dto.Filter{Field: "id", Value: "r-1", Operator: dto.FilterOperatorEq}
	idMiss := dto.Filter{Field: "id", Value: "r-9", Operator: dto.FilterOperatorEq}
	nameMatch := dto.Filter{Field: "name", Value: "standard", Operator: dto.FilterOperatorLike}

	tests := []struct {
		name  string
		group dto.FilterGroup
		want  bool
	}{
		{"empty group", dto.FilterGroup{}, true},
		{"and all match", dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: []any{idMatch, nameMatch}}, true},
		{"and one miss", dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: []any{idMatch, idMiss}}, false},
		{"or one match", dto.FilterGroup{Operator: dto.FilterGroupOperatorOr, Filters: []any{idMiss, nameMatch}}, true},
		{"or none match", dto.FilterGroup{Operator: dto.FilterGroupOperatorOr, Filters: []any{idMiss}}, false},
		{
			"nested group",
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					idMatch,
					dto.FilterGroup{Operator: dto.FilterGroupOperatorOr, Filters: []any{idMiss, nameMatch}},
				},
			},
			true,
		},
		{"unknown entries ignored", dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: []any{"noise", idMatch}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.group.Match(record))
		})
	}
}

func TestCompare(t *testing.T) {
	cmp, ok := dto.Compare("a", "b")
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)

	cmp, ok = dto.Compare(int64(3), 2)
	assert.True(t, ok)
	assert.Equal(t, 1, cmp)

	_, ok = dto.Compare(nil, 1)
	assert.False(t, ok)

	assert.True(t, dto.Equal(true, true))
}
