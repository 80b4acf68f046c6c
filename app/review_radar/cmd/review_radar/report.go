package main

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/stats"
)

// writeText 输出终端文本报告
func writeText(w io.Writer, res *model.Result) {
	fmt.Fprintf(w, "Query: %s (%s)\n", res.Query, res.Mode)
	if res.Error != "" {
		fmt.Fprintln(w, res.Error)
	}

	if res.Mode == model.ModeComparative {
		for _, s := range res.PerSubject {
			fmt.Fprintf(w, "\n== %s ==\n", s.Name)
			writeStats(w, s.Statistics)
			writeSources(w, s.SourceMeta)
		}
		if res.Summary != nil {
			fmt.Fprintf(w, "\nPositive share difference: %+.1f points over %d reviews\n",
				res.Summary.SentimentDifference, res.Summary.TotalReviews)
		}
		writeComparison(w, res.Comparison)
	} else {
		writeStats(w, res.Statistics)
		writeSources(w, res.SourceMeta)
		if res.Insights != nil {
			fmt.Fprintf(w, "\nSummary: %s\n", res.Insights.ExecutiveSummary)
			for _, p := range res.Insights.PainPoints {
				fmt.Fprintf(w, "  - [%s] %s\n", p.Severity, p.Issue)
			}
		}
	}

	if res.InsightError != "" {
		fmt.Fprintf(w, "\nInsights unavailable: %s\n", res.InsightError)
	}
}

func writeStats(w io.Writer, s model.AggregateStatistics) {
	pct := stats.RoundedPercentages(s)
	fmt.Fprintf(w, "Reviews: %d (positive %.1f%%, neutral %.1f%%, negative %.1f%%)\n",
		s.Total, pct.Positive, pct.Neutral, pct.Negative)
	if s.AverageRating != nil {
		fmt.Fprintf(w, "Average rating: %.2f\n", *s.AverageRating)
	}
	fmt.Fprintf(w, "Average polarity: %.2f\n", s.AveragePolarity)
}

func writeSources(w io.Writer, meta map[model.Source]model.SourceMeta) {
	for _, src := range model.AllSources {
		m, ok := meta[src]
		if !ok {
			continue
		}
		detail := fmt.Sprintf("%d reviews", m.Count)
		if m.Status == model.StatusError {
			detail = m.Error
		}
		fmt.Fprintf(w, "  %-10s %-5s %s\n", src, m.Status, detail)
	}
}

func writeComparison(w io.Writer, comparison []model.AttributeComparison) {
	if len(comparison) == 0 {
		return
	}
	fmt.Fprintln(w, "\nHead to head:")
	for _, c := range comparison {
		fmt.Fprintf(w, "  %-20s %s\n", c.Attribute.Label(), c.Winner)
		fmt.Fprintf(w, "    %s\n", c.Reasoning)
	}
}

func writeReviews(w io.Writer, tag string, reviews []model.Review) {
	fmt.Fprintf(w, "\nReviews (%s): %d\n", tag, len(reviews))
	for _, r := range reviews {
		fmt.Fprintf(w, "  [%s] %s (%s): %s\n", r.Source, r.Author, r.Sentiment, r.Text)
	}
}

// htmlData 用于模板渲染的数据
type htmlData struct {
	*model.Result
	Percentages model.Percentages
	Sources     []model.Source
}

func (d htmlData) Join(s []string) string {
	return strings.Join(s, " vs ")
}

// AverageRating 没有评分时为空串
func (d htmlData) AverageRating() string {
	if d.Statistics.AverageRating == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *d.Statistics.AverageRating)
}

// writeHTML 渲染 HTML 报告
func writeHTML(path string, res *model.Result) error {
	t, err := template.New("report").Parse(htmlTpl)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return renderHTML(f, t, res)
}

func renderHTML(w io.Writer, t *template.Template, res *model.Result) error {
	return t.Execute(w, htmlData{
		Result:      res,
		Percentages: stats.RoundedPercentages(res.Statistics),
		Sources:     model.AllSources,
	})
}

const htmlTpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Review Radar | {{.Query}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: #f8fafc; color: #1e293b; margin: 0; padding: 24px; }
        .card { background: #fff; border-radius: 12px; padding: 20px; margin-bottom: 20px; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
        .positive { color: #16a34a; } .negative { color: #dc2626; } .neutral { color: #64748b; }
        table { border-collapse: collapse; width: 100%; }
        td, th { text-align: left; padding: 6px 8px; border-bottom: 1px solid #e2e8f0; }
        .muted { color: #64748b; font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>Review Radar: {{.Query}}</h1>
    {{if .Error}}<div class="card negative">{{.Error}}</div>{{end}}

    <div class="card">
        <h2>Overview</h2>
        <p>{{.Statistics.Total}} reviews:
            <span class="positive">{{printf "%.1f" .Percentages.Positive}}% positive</span>,
            <span class="neutral">{{printf "%.1f" .Percentages.Neutral}}% neutral</span>,
            <span class="negative">{{printf "%.1f" .Percentages.Negative}}% negative</span></p>
        {{with .AverageRating}}<p>Average rating: {{.}}</p>{{end}}
    </div>

    {{if .Insights}}
    <div class="card">
        <h2>Insights</h2>
        <p>{{.Insights.ExecutiveSummary}}</p>
        <h3>Strengths</h3>
        <ul>{{range .Insights.Strengths}}<li>{{.Strength}} <span class="muted">({{.Impact}})</span></li>{{end}}</ul>
        <h3>Pain points</h3>
        <ul>{{range .Insights.PainPoints}}<li>{{.Issue}} <span class="muted">{{.Severity}}</span></li>{{end}}</ul>
        <h3>Recommendations</h3>
        <ul>{{range .Insights.Recommendations}}<li>[{{.Priority}}] {{.Action}}</li>{{end}}</ul>
    </div>
    {{end}}

    {{if .Comparison}}
    <div class="card">
        <h2>{{.Join .Subjects}}</h2>
        <table>
            <tr><th>Attribute</th><th>Winner</th><th>Reasoning</th></tr>
            {{range .Comparison}}<tr><td>{{.Attribute.Label}}</td><td>{{.Winner}}</td><td>{{.Reasoning}}</td></tr>{{end}}
        </table>
    </div>
    {{end}}

    {{if .InsightError}}<div class="card muted">Insights unavailable: {{.InsightError}}</div>{{end}}

    <div class="card">
        <h2>Reviews</h2>
        {{range .Reviews}}
        <p><strong>{{.Author}}</strong> <span class="muted">{{.Source}}{{if .Timestamp}} · {{.Timestamp}}{{end}}</span>
            <span class="{{.Sentiment}}">{{.Sentiment}}</span><br>{{.Text}}</p>
        {{end}}
    </div>
</body>
</html>
`
