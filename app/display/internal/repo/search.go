package repo

import (
	"context"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/insight"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/radar"
)

// SearchRepo 搜索引擎接口
type SearchRepo interface {
	// Search 执行一次搜索，成为当前结果
	Search(ctx context.Context, query string) (*model.Result, error)
	// Current 当前结果，没有则为 nil
	Current() *model.Result
	// Sources 已启用的来源
	Sources() []model.Source
	// Chat 针对当前结果的评论回答问题
	Chat(ctx context.Context, question string, history []insight.ChatTurn) (string, error)
	// Report 根据当前结果的洞察生成报告
	Report(ctx context.Context) (*radar.Report, error)
}
