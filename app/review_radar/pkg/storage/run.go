package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

// Run search_runs 表的一行
type Run struct {
	ID           string
	Generation   int64
	Query        string
	Mode         string
	Total        int
	SourceStatus []byte
	InsightError string
	Error        string
	DurationMS   int64
	StartedAt    time.Time
}

// NewRun 从搜索结果构造一行记录。来源状态按对象名分组，单对象模式只有一组。
func NewRun(res *model.Result) (*Run, error) {
	if res == nil {
		return nil, fmt.Errorf("nil result")
	}

	status := map[string]map[model.Source]model.SourceMeta{}
	if res.Mode == model.ModeComparative {
		for _, s := range res.PerSubject {
			status[s.Name] = s.SourceMeta
		}
	} else {
		status[res.Query] = res.SourceMeta
	}
	data, err := json.Marshal(status)
	if err != nil {
		return nil, fmt.Errorf("failed to encode source status: %w", err)
	}

	return &Run{
		ID:           res.ID,
		Generation:   int64(res.Generation),
		Query:        sanitize(res.Query),
		Mode:         string(res.Mode),
		Total:        res.Statistics.Total,
		SourceStatus: data,
		InsightError: sanitize(res.InsightError),
		Error:        sanitize(res.Error),
		DurationMS:   res.Duration.Milliseconds(),
		StartedAt:    res.StartedAt,
	}, nil
}

// sanitize 移除无效的 UTF-8 字符和 NULL 字节，PostgreSQL 文本字段不支持
func sanitize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.ReplaceAll(s, "\x00", "")
}
