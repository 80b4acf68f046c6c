// Package compare 将两个对象的优缺点与评论按固定维度归类，给出逐维度的胜负与要点。
package compare

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/stats"
)

// maxPoints 每侧要点上限
const maxPoints = 3

// Subject 参与对比的一个对象
type Subject struct {
	Name       string
	Reviews    []model.Review
	Strengths  []string
	Weaknesses []string
}

// Compare 按维度顺序生成对比结果。verdicts 为洞察服务给出的胜负，可以为 nil。
// 除 overall_satisfaction 外，两个对象都没有可归类证据的维度不会出现在结果中。
func Compare(a, b Subject, verdicts map[model.Attribute]model.HeadToHead) []model.AttributeComparison {
	var out []model.AttributeComparison
	for _, attr := range model.Taxonomy {
		ba, bb := Breakdown(attr, a.Reviews), Breakdown(attr, b.Reviews)
		if attr != model.AttrOverallSatisfaction && !hasEvidence(attr, a, ba) && !hasEvidence(attr, b, bb) {
			continue
		}

		winner, reasoning, derived := decide(attr, a, b, ba, bb, verdicts)
		// 推导出的胜负没有任何提及时，理由只说明证据不足
		origin := model.OriginReasoning
		if derived && ba.Mentions == 0 && bb.Mentions == 0 {
			origin = model.OriginFiller
		}
		out = append(out, model.AttributeComparison{
			Attribute: attr,
			Winner:    winner,
			Reasoning: reasoning,
			Breakdown: map[string]model.SentimentBreakdown{a.Name: ba, b.Name: bb},
			Points: map[string]model.SubjectPoints{
				a.Name: points(attr, a, winner == a.Name, reasoning, origin, b.Name),
				b.Name: points(attr, b, winner == b.Name, reasoning, origin, a.Name),
			},
			Derived: derived,
		})
	}
	return out
}

// Breakdown 统计提到该维度的评论的正负分布，overall_satisfaction 统计全部评论
func Breakdown(attr model.Attribute, reviews []model.Review) model.SentimentBreakdown {
	var b model.SentimentBreakdown
	for _, r := range reviews {
		if attr != model.AttrOverallSatisfaction && !Mentions(attr, r.Title+" "+r.Text) {
			continue
		}
		b.Mentions++
		switch r.Sentiment {
		case model.Positive:
			b.PositiveCount++
		case model.Negative:
			b.NegativeCount++
		}
	}
	if b.Mentions > 0 {
		b.PositivePct = stats.Round1(float64(b.PositiveCount) / float64(b.Mentions) * 100)
		b.NegativePct = stats.Round1(float64(b.NegativeCount) / float64(b.Mentions) * 100)
	}
	return b
}

func hasEvidence(attr model.Attribute, s Subject, b model.SentimentBreakdown) bool {
	return b.Mentions > 0 ||
		len(MatchStatements(attr, s.Strengths)) > 0 ||
		len(MatchStatements(attr, s.Weaknesses)) > 0
}

// decide 优先采用上游胜负，无法对应到任一对象时由评论分布推导
func decide(attr model.Attribute, a, b Subject, ba, bb model.SentimentBreakdown, verdicts map[model.Attribute]model.HeadToHead) (winner, reasoning string, derived bool) {
	if v, ok := verdicts[attr]; ok {
		if w, ok := ResolveWinner(v.Winner, a.Name, b.Name); ok {
			reasoning = strings.TrimSpace(v.Reasoning)
			if reasoning == "" {
				reasoning = fmt.Sprintf("%s is preferred for %s.", w, attr.Label())
			}
			return w, reasoning, false
		}
	}

	winner, loser, bw, bl := a.Name, b.Name, ba, bb
	switch {
	case bb.PositivePct > ba.PositivePct:
		winner, loser, bw, bl = b.Name, a.Name, bb, ba
	case bb.PositivePct == ba.PositivePct && bb.Mentions > ba.Mentions:
		winner, loser, bw, bl = b.Name, a.Name, bb, ba
	}

	if bw.Mentions == 0 && bl.Mentions == 0 {
		reasoning = fmt.Sprintf("Not enough reviews mention %s to separate %s and %s.", attr.Label(), a.Name, b.Name)
	} else {
		reasoning = fmt.Sprintf("%s has a higher share of positive mentions for %s (%.1f%% vs %.1f%%). %s trails with %d negative mentions out of %d.",
			winner, attr.Label(), bw.PositivePct, bl.PositivePct, loser, bl.NegativeCount, bl.Mentions)
	}
	return winner, reasoning, true
}

// ResolveWinner 将上游给出的胜者字符串对应到对象名：
// 完全相同、A/B 标记、全名包含、首词包含，依次尝试，均不区分大小写
func ResolveWinner(raw, a, b string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(raw))
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if w == "" {
		return "", false
	}

	switch w {
	case la:
		return a, true
	case lb:
		return b, true
	case "a", "product a", "subject a":
		return a, true
	case "b", "product b", "subject b":
		return b, true
	}

	if w, ok := pick(strings.Contains(w, la), strings.Contains(w, lb), a, b); ok {
		return w, true
	}
	return pick(strings.Contains(w, firstWord(la)), strings.Contains(w, firstWord(lb)), a, b)
}

func pick(matchA, matchB bool, a, b string) (string, bool) {
	switch {
	case matchA && !matchB:
		return a, true
	case matchB && !matchA:
		return b, true
	}
	return "", false
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "\x00"
	}
	return fields[0]
}

// points 组装某对象在某维度下的正负要点，origin 为取自理由的要点来源
func points(attr model.Attribute, s Subject, isWinner bool, reasoning string, origin model.PointOrigin, other string) model.SubjectPoints {
	var p model.SubjectPoints

	if matched := MatchStatements(attr, s.Strengths); len(matched) > 0 {
		p.Positive = asPoints(matched, model.OriginMatched)
	} else if first := sentence(reasoning, 0); isWinner && first != "" {
		p.Positive = []model.Point{{Text: first, Origin: origin}}
	} else {
		p.Positive = []model.Point{{Text: "Competitive in " + attr.Label(), Origin: model.OriginFiller}}
	}

	if matched := MatchStatements(attr, s.Weaknesses); len(matched) > 0 {
		p.Negative = asPoints(matched, model.OriginMatched)
	} else if isWinner {
		p.Negative = []model.Point{{Text: "Minor concerns reported by some customers", Origin: model.OriginFiller}}
	} else if second := sentence(reasoning, 1); second != "" {
		p.Negative = []model.Point{{Text: second, Origin: origin}}
	} else {
		p.Negative = []model.Point{{Text: fmt.Sprintf("Less favorable %s compared to %s", attr.Label(), other), Origin: model.OriginFiller}}
	}
	return p
}

func asPoints(statements []string, origin model.PointOrigin) []model.Point {
	if len(statements) > maxPoints {
		statements = statements[:maxPoints]
	}
	out := make([]model.Point, len(statements))
	for i, s := range statements {
		out[i] = model.Point{Text: s, Origin: origin}
	}
	return out
}

// abbreviations 句点后不断句的缩写
var abbreviations = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true, "st": true,
	"co": true, "inc": true, "vs": true, "jr": true, "sr": true, "no": true,
}

// Sentences 按句末标点（其后为空白或文本结尾）切分，常见缩写不断句
func Sentences(text string) []string {
	var (
		out   []string
		start int
	)
	runes := []rune(text)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if r == '.' && abbreviations[strings.ToLower(lastWord(runes[start:i]))] {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

func lastWord(runes []rune) string {
	fields := strings.Fields(string(runes))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// sentence 取第 i 句，保证以句末标点结尾；不存在时返回 ""
func sentence(text string, i int) string {
	parts := Sentences(text)
	if i >= len(parts) {
		return ""
	}
	s := parts[i]
	if !strings.ContainsAny(s[len(s)-1:], ".!?") {
		s += "."
	}
	return s
}
