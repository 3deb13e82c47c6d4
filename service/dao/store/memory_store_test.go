package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bidflow/service/dao"
	"github.com/viant/bidflow/service/dao/criteria"
)

type record struct {
	ID     string
	Status string
}

func recordKey(r *record) string { return r.ID }

func newStore() *MemoryStore[string, record] {
	return NewMemoryStore[string, record](recordKey, WithMatcher[string, record](func(r *record, parameters []*dao.Parameter) bool {
		return criteria.FilterByStatus(r.Status, parameters)
	}))
}

func ids(records []*record) []string {
	var ret []string
	for _, r := range records {
		ret = append(ret, r.ID)
	}
	return ret
}

func TestMemoryStore_Order(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Save(ctx, &record{ID: id, Status: "pending"}))
	}
	require.NoError(t, s.Save(ctx, &record{ID: "a", Status: "approved"}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(list))
	assert.Equal(t, "approved", list[1].Status)

	require.NoError(t, s.Delete(ctx, "a"))
	list, _ = s.List(ctx)
	assert.Equal(t, []string{"c", "b"}, ids(list))
	assert.Equal(t, 2, s.Len())
}

func TestMemoryStore_Load(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	assert.ErrorIs(t, s.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, s.Save(ctx, &record{}), dao.ErrInvalidID)
}

func TestMemoryStore_ListFiltered(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	_ = s.Save(ctx, &record{ID: "1", Status: "pending"})
	_ = s.Save(ctx, &record{ID: "2", Status: "approved"})
	_ = s.Save(ctx, &record{ID: "3", Status: "pending"})

	list, err := s.List(ctx, dao.NewParameter(criteria.StatusParameter, "pending"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(list))
}

func TestMemoryStore_ReplaceAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	_ = s.Save(ctx, &record{ID: "old"})
	require.NoError(t, s.Replace(ctx, []*record{{ID: "x"}, {ID: "y"}}))
	list, _ := s.List(ctx)
	assert.Equal(t, []string{"x", "y"}, ids(list))

	require.NoError(t, s.Update(ctx, "y", func(r *record) { r.Status = "rejected" }))
	loaded, err := s.Load(ctx, "y")
	require.NoError(t, err)
	assert.Equal(t, "rejected", loaded.Status)
	assert.ErrorIs(t, s.Update(ctx, "missing", func(*record) {}), dao.ErrNotFound)
}
