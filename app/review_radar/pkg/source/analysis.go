package source

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NestedSentiment 嵌套形式的情感数据 {sentiment, polarity, subjectivity}
type NestedSentiment struct {
	Sentiment    string   `json:"sentiment"`
	Polarity     *float64 `json:"polarity,omitempty"`
	Subjectivity *float64 `json:"subjectivity,omitempty"`
}

// SentimentField 兼容两种写法：字符串标签或嵌套对象
type SentimentField struct {
	Label  string
	Nested *NestedSentiment
}

// UnmarshalJSON 实现 json.Unmarshaler
func (f *SentimentField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = SentimentField{}
		return nil
	}
	switch data[0] {
	case '"':
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*f = SentimentField{Label: label}
		return nil
	case '{':
		var nested NestedSentiment
		if err := json.Unmarshal(data, &nested); err != nil {
			return err
		}
		*f = SentimentField{Nested: &nested}
		return nil
	}
	return fmt.Errorf("unsupported sentiment value: %s", data)
}

// MarshalJSON 实现 json.Marshaler
func (f SentimentField) MarshalJSON() ([]byte, error) {
	if f.Nested != nil {
		return json.Marshal(f.Nested)
	}
	if f.Label == "" {
		return []byte("null"), nil
	}
	return json.Marshal(f.Label)
}

// Analysis 原生记录上的情感字段
type Analysis struct {
	Sentiment    SentimentField `json:"sentiment"`
	Polarity     *float64       `json:"polarity,omitempty"`
	Subjectivity *float64       `json:"subjectivity,omitempty"`
}

// Scored 记录是否已带情感数据
func (a *Analysis) Scored() bool {
	return a.Sentiment.Nested != nil || a.Sentiment.Label != ""
}

// SetNested 写入分析结果（嵌套形式）
func (a *Analysis) SetNested(label string, polarity, subjectivity float64) {
	a.Sentiment = SentimentField{Nested: &NestedSentiment{
		Sentiment:    label,
		Polarity:     &polarity,
		Subjectivity: &subjectivity,
	}}
}
