package compat

import (
	"context"
	"errors"
	"testing"

	common "github.com/Xushengqwer/go-common/models/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/build_service/models/entities"
	"github.com/Xushengqwer/build_service/models/enums"
	"github.com/Xushengqwer/build_service/myErrors"
)

// fakeGetter 内存版 ComponentGetter，按ID过滤，模拟仓库层“查多少返回多少”的语义。
type fakeGetter struct {
	store map[uint64]*entities.Component
	err   error
}

func (f *fakeGetter) GetComponentsByIDs(_ context.Context, ids []uint64) ([]*entities.Component, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entities.Component
	for _, id := range ids {
		if c, ok := f.store[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestComponent(id uint64, role enums.ComponentRole) *entities.Component {
	c := mkComponent(role)
	c.BaseModel = common.BaseModel{ID: id}
	return c
}

func TestResolver_ResolveOrFail(t *testing.T) {
	cpu := newTestComponent(1, enums.RoleCPU)
	mobo := newTestComponent(2, enums.RoleMotherboard)
	resolver := NewResolver(&fakeGetter{store: map[uint64]*entities.Component{1: cpu, 2: mobo}})

	ordered, resolved, err := resolver.ResolveOrFail(context.Background(), []string{"1", "2"})
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Same(t, cpu, ordered[0])
	assert.Same(t, mobo, ordered[1])
	assert.Same(t, cpu, resolved[enums.RoleCPU])
	assert.Same(t, mobo, resolved[enums.RoleMotherboard])
}

func TestResolver_ResolveOrFail_MissingAborts(t *testing.T) {
	resolver := NewResolver(&fakeGetter{store: map[uint64]*entities.Component{
		1: newTestComponent(1, enums.RoleCPU),
	}})

	_, _, err := resolver.ResolveOrFail(context.Background(), []string{"1", "99"})
	require.Error(t, err)

	var notFound *myErrors.ComponentNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint64(99), notFound.ID, "错误必须指明缺失的配件ID")
}

func TestResolver_ResolveOrFail_DuplicateRefsPreserved(t *testing.T) {
	ram := newTestComponent(3, enums.RoleRAM)
	resolver := NewResolver(&fakeGetter{store: map[uint64]*entities.Component{3: ram}})

	// 两条内存引用同一配件，顺序切片保留两份，角色表只留一个代表
	ordered, resolved, err := resolver.ResolveOrFail(context.Background(), []string{"3", "3"})
	require.NoError(t, err)
	assert.Len(t, ordered, 2)
	assert.Len(t, resolved, 1)
}

func TestResolver_ResolveBestEffort_SkipsMissing(t *testing.T) {
	cpu := newTestComponent(1, enums.RoleCPU)
	resolver := NewResolver(&fakeGetter{store: map[uint64]*entities.Component{1: cpu}})

	resolved, err := resolver.ResolveBestEffort(context.Background(), []string{"1", "99"})
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
	assert.Same(t, cpu, resolved[enums.RoleCPU])
	assert.Nil(t, resolved[enums.RoleMotherboard], "缺失的引用对应角色视为未提供")
}

func TestResolver_MalformedIDAbortsBothModes(t *testing.T) {
	resolver := NewResolver(&fakeGetter{store: map[uint64]*entities.Component{}})

	var invalid *myErrors.InvalidComponentIDError

	_, _, err := resolver.ResolveOrFail(context.Background(), []string{"not-a-number"})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "not-a-number", invalid.Raw)

	_, err = resolver.ResolveBestEffort(context.Background(), []string{"abc"})
	require.ErrorAs(t, err, &invalid)
}

func TestResolver_GetterErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	resolver := NewResolver(&fakeGetter{err: boom})

	_, _, err := resolver.ResolveOrFail(context.Background(), []string{"1"})
	assert.ErrorIs(t, err, boom)
}

func TestResolver_EmptyRefs(t *testing.T) {
	resolver := NewResolver(&fakeGetter{store: map[uint64]*entities.Component{}})

	ordered, resolved, err := resolver.ResolveOrFail(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ordered)
	assert.Empty(t, resolved)
}
