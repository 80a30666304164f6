package myErrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCacheMiss 表示在缓存层未找到对应的键值
var ErrCacheMiss = errors.New("cache: key not found (miss)")

// ErrAlreadyLiked 表示用户已对该装机单点过赞
// - 由服务层将数据库唯一键冲突翻译为该错误，控制器据此返回 400
var ErrAlreadyLiked = errors.New("already liked")

// ErrComponentInUse 表示配件仍被至少一份装机单引用，禁止删除
var ErrComponentInUse = errors.New("component is referenced by existing builds")

// ComponentNotFoundError 表示严格解析时某个配件引用不存在。
// - 使用场景: 创建/更新装机单时必须全量命中，任何缺失即中止并指明缺失的ID
type ComponentNotFoundError struct {
	ID uint64
}

func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %d not found", e.ID)
}

// InvalidComponentIDError 表示配件引用格式非法（无法解析为数字ID）。
// - 严格与宽松两种解析模式都不容忍格式错误，一律中止
type InvalidComponentIDError struct {
	Raw string
}

func (e *InvalidComponentIDError) Error() string {
	return fmt.Sprintf("invalid component id: %q", e.Raw)
}

// IncompatibleBuildError 表示装机单未通过兼容性检测，创建被拒绝。
// - 携带全部违规描述，控制器将其整体返回给客户端（不是只报第一条）
type IncompatibleBuildError struct {
	Issues []string
}

func (e *IncompatibleBuildError) Error() string {
	return fmt.Sprintf("build has %d compatibility issue(s): %s", len(e.Issues), strings.Join(e.Issues, "; "))
}
