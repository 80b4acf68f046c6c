package compare

import (
	"strings"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

// Keywords 维度到关键词的固定映射，按子串匹配，不区分大小写
var Keywords = map[model.Attribute][]string{
	model.AttrQuality:             {"quality", "craftsmanship", "construction", "materials", "built", "made"},
	model.AttrComfort:             {"comfort", "comfortable", "cushion", "soft", "cozy", "feel"},
	model.AttrDurability:          {"durability", "durable", "last", "wear", "tough", "sturdy", "longevity"},
	model.AttrStyle:               {"style", "look", "design", "aesthetic", "fashion", "appearance"},
	model.AttrPrice:               {"price", "cost", "expensive", "cheap", "affordable", "value"},
	model.AttrValueForMoney:       {"value", "worth", "price", "investment", "money"},
	model.AttrBreakInPeriod:       {"break", "stiff", "painful", "soften", "wear in", "comfort"},
	model.AttrOverallSatisfaction: {"overall", "recommend", "love", "happy", "satisfied", "disappointed", "best", "worst"},
}

// Mentions 文本是否提到该维度
func Mentions(attr model.Attribute, text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range Keywords[attr] {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// MatchStatements 保留提到该维度的语句，保持原顺序
func MatchStatements(attr model.Attribute, statements []string) []string {
	var out []string
	for _, s := range statements {
		if Mentions(attr, s) {
			out = append(out, s)
		}
	}
	return out
}
