package myErrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentNotFoundError_AsTarget(t *testing.T) {
	var wrapped error = fmt.Errorf("解析失败: %w", &ComponentNotFoundError{ID: 42})

	var target *ComponentNotFoundError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, uint64(42), target.ID)
	assert.Equal(t, "component 42 not found", target.Error())
}

func TestInvalidComponentIDError_AsTarget(t *testing.T) {
	var wrapped error = fmt.Errorf("解析失败: %w", &InvalidComponentIDError{Raw: "abc"})

	var target *InvalidComponentIDError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "abc", target.Raw)
	assert.Equal(t, `invalid component id: "abc"`, target.Error())
}

func TestSentinelErrors(t *testing.T) {
	assert.True(t, errors.Is(fmt.Errorf("like: %w", ErrAlreadyLiked), ErrAlreadyLiked))
	assert.True(t, errors.Is(fmt.Errorf("delete: %w", ErrComponentInUse), ErrComponentInUse))
}
