package engine

import (
	"errors"
	"fmt"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

// ErrSourceUnavailable 来源查询失败（网络、限流、解析、未配置）
var ErrSourceUnavailable = errors.New("source unavailable")

// SourceError 单个来源的失败原因
type SourceError struct {
	Source model.Source
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, ErrSourceUnavailable, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Is 所有 SourceError 都视为 ErrSourceUnavailable
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}
