package sentiment

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

var negativeKeywords = []string{
	"disappointed", "frustrat", "terrible", "awful", "horrible", "worst",
	"broken", "defective", "poor", "bad", "never", "waste", "useless",
	"angry", "annoying", "annoyed", "upset", "unhappy", "unsatisfied",
	"misleading", "lied", "fake", "scam", "fraud", "avoid", "warning",
	"regret", "hate", "disappoint", "not recommend", "don't buy",
	"cheap", "poorly made", "fell apart", "uncomfortable", "painful",
}

var positiveKeywords = []string{
	"excellent", "amazing", "love", "perfect", "great", "awesome",
	"fantastic", "wonderful", "best", "recommend", "happy", "satisfied",
	"quality", "comfortable", "beautiful", "impressed", "exceeded",
	"worth", "favorite", "highly recommend", "outstanding", "superb",
	"pleased", "delighted", "brilliant", "sturdy", "durable", "stylish",
}

// lexicon 词级极性与主观性
var lexicon = map[string][2]float64{
	"good":          {0.7, 0.6},
	"great":         {0.8, 0.75},
	"excellent":     {1.0, 1.0},
	"amazing":       {0.6, 0.9},
	"awesome":       {1.0, 1.0},
	"perfect":       {1.0, 1.0},
	"love":          {0.5, 0.6},
	"loved":         {0.7, 0.8},
	"nice":          {0.6, 1.0},
	"fantastic":     {0.4, 0.9},
	"wonderful":     {1.0, 1.0},
	"best":          {1.0, 0.3},
	"happy":         {0.8, 1.0},
	"comfortable":   {0.4, 0.7},
	"beautiful":     {0.85, 1.0},
	"solid":         {0.3, 0.5},
	"sturdy":        {0.4, 0.5},
	"durable":       {0.4, 0.5},
	"recommend":     {0.4, 0.5},
	"worth":         {0.3, 0.3},
	"fine":          {0.4, 0.5},
	"bad":           {-0.7, 0.67},
	"poor":          {-0.4, 0.6},
	"terrible":      {-1.0, 1.0},
	"awful":         {-1.0, 1.0},
	"horrible":      {-1.0, 1.0},
	"worst":         {-1.0, 1.0},
	"hate":          {-0.8, 0.9},
	"broken":        {-0.4, 0.5},
	"defective":     {-0.5, 0.6},
	"useless":       {-0.5, 0.2},
	"cheap":         {-0.2, 0.7},
	"uncomfortable": {-0.5, 0.7},
	"painful":       {-0.7, 0.9},
	"disappointed":  {-0.75, 0.75},
	"disappointing": {-0.6, 0.7},
	"waste":         {-0.2, 0.1},
	"expensive":     {-0.5, 0.7},
	"stiff":         {-0.2, 0.4},
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "isn't": true, "wasn't": true,
	"don't": true, "doesn't": true, "didn't": true, "aren't": true,
}

// KeywordAnalyzer 基于关键词和小型词典的确定性分析器
type KeywordAnalyzer struct{}

// NewKeywordAnalyzer 创建关键词分析器
func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

// Analyze 实现 Analyzer
func (k *KeywordAnalyzer) Analyze(_ context.Context, text string, rating float64) Result {
	lower := strings.ToLower(text)
	neg := countKeywords(lower, negativeKeywords)
	pos := countKeywords(lower, positiveKeywords)
	polarity, subjectivity := lexiconScore(lower)

	var label model.Sentiment
	switch {
	case pos > neg+2:
		label = model.Positive
		polarity = math.Max(polarity, 0.3)
	case neg > pos+2:
		label = model.Negative
		polarity = math.Min(polarity, -0.3)
	case pos > neg:
		label = model.Positive
		polarity = math.Max(polarity, 0.2)
	case neg > pos:
		label = model.Negative
		polarity = math.Min(polarity, -0.2)
	case polarity > 0.05:
		label = model.Positive
	case polarity < -0.05:
		label = model.Negative
	case rating > 0 && rating <= 2:
		label = model.Negative
		polarity = -0.3
	case rating >= 4:
		label = model.Positive
		polarity = 0.3
	default:
		label = model.Neutral
	}

	return Result{
		Sentiment:    label,
		Polarity:     round2(polarity),
		Subjectivity: round2(subjectivity),
		Method:       MethodKeyword,
	}
}

func countKeywords(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// lexiconScore 对命中词典的词取平均，前一个词为否定词时极性取反并减半
func lexiconScore(text string) (polarity, subjectivity float64) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	var hits int
	for i, w := range words {
		entry, ok := lexicon[w]
		if !ok {
			continue
		}
		p := entry[0]
		if i > 0 && negations[words[i-1]] {
			p *= -0.5
		}
		polarity += p
		subjectivity += entry[1]
		hits++
	}
	if hits == 0 {
		return 0, 0
	}
	return polarity / float64(hits), subjectivity / float64(hits)
}
