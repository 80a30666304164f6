package compat

import (
	"context"
	"strconv"

	"github.com/Xushengqwer/build_service/models/entities"
	"github.com/Xushengqwer/build_service/myErrors"
)

// ComponentGetter 抽象配件的批量读取能力。
// - 设计意图: 解析器不关心数据来自 MySQL 还是缓存，测试时可用内存实现替换
type ComponentGetter interface {
	// GetComponentsByIDs 按ID批量获取配件，不存在的ID直接不出现在结果里（不报错）。
	GetComponentsByIDs(ctx context.Context, ids []uint64) ([]*entities.Component, error)
}

// Resolver 将外部传入的配件引用（字符串ID列表）解析为规则引擎的输入。
type Resolver struct {
	getter ComponentGetter
}

// NewResolver 是 Resolver 的构造函数。
func NewResolver(getter ComponentGetter) *Resolver {
	return &Resolver{getter: getter}
}

// ResolveOrFail 严格解析，用于创建/更新装机单。
//   - 任一引用格式非法返回 myErrors.InvalidComponentIDError
//   - 任一引用不存在返回 myErrors.ComponentNotFoundError（指明首个缺失的ID）
//   - 返回值:
//   - ordered: 保持入参顺序且保留重复引用的配件切片，用于计价与落库
//   - resolved: 按角色索引的集合，同角色后者覆盖前者，用于规则判定
func (r *Resolver) ResolveOrFail(ctx context.Context, refs []string) ([]*entities.Component, ResolvedComponents, error) {
	ids, err := parseRefs(refs)
	if err != nil {
		return nil, nil, err
	}

	byID, err := r.fetch(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	ordered := make([]*entities.Component, 0, len(ids))
	resolved := make(ResolvedComponents)
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, nil, &myErrors.ComponentNotFoundError{ID: id}
		}
		ordered = append(ordered, c)
		resolved[c.Role] = c
	}
	return ordered, resolved, nil
}

// ResolveBestEffort 宽松解析，用于独立的兼容性校验接口。
//   - 不存在的引用静默跳过，对应角色视为未提供
//   - 格式非法的引用仍然中止（宽松只豁免“查无此件”，不豁免脏数据）
func (r *Resolver) ResolveBestEffort(ctx context.Context, refs []string) (ResolvedComponents, error) {
	ids, err := parseRefs(refs)
	if err != nil {
		return nil, err
	}

	byID, err := r.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make(ResolvedComponents)
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			resolved[c.Role] = c
		}
	}
	return resolved, nil
}

func parseRefs(refs []string) ([]uint64, error) {
	ids := make([]uint64, 0, len(refs))
	for _, ref := range refs {
		id, err := strconv.ParseUint(ref, 10, 64)
		if err != nil {
			return nil, &myErrors.InvalidComponentIDError{Raw: ref}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *Resolver) fetch(ctx context.Context, ids []uint64) (map[uint64]*entities.Component, error) {
	if len(ids) == 0 {
		return map[uint64]*entities.Component{}, nil
	}

	// 去重后再查库，重复引用共享同一实体指针
	unique := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	components, err := r.getter.GetComponentsByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*entities.Component, len(components))
	for _, c := range components {
		byID[c.ID] = c
	}
	return byID, nil
}
