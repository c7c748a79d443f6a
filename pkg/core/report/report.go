// Package report renders a fan chart run as a Markdown document and as a standalone
// HTML page for download or display.
package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"dcf_fanchart/pkg/core/assumption"
	"dcf_fanchart/pkg/core/pipeline"
	"dcf_fanchart/pkg/core/utils"
	"dcf_fanchart/pkg/core/validate"
	"dcf_fanchart/pkg/core/valuation"
)

// DefaultTitle heads every report unless the caller sets one
const DefaultTitle = "DCF Fan Chart"

// Input is everything a report shows. Valuations and Field are optional.
type Input struct {
	Title      string
	Chart      *pipeline.FanChart
	Valuations []valuation.ValuationLineItem
	Field      *valuation.FootballField
}

// Markdown builds the report body: scenario summary, envelope band per period,
// DCF fair values when present, and the assumption set.
func Markdown(in Input) (string, error) {
	if in.Chart == nil {
		return "", fmt.Errorf("report: fan chart is required")
	}
	c := in.Chart
	title := in.Title
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Run `%s` generated %s.\n\n", c.ID, c.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Anchor value **%s** (last of %d historical points), projected over %d periods.\n\n",
		number(c.Anchor), len(c.Historical), c.Horizon)
	if n := len(c.Historical); n > 1 && c.Historical[0] > 0 && c.Anchor > 0 {
		fmt.Fprintf(&b, "Historical growth averaged %s per period.\n\n",
			valuation.FormatPercentage(validate.CalculateCAGR(c.Historical[0], c.Anchor, n-1)))
	}

	// --- Scenarios ---
	b.WriteString("## Scenarios\n\n")
	b.WriteString("| Scenario | Growth Rate | Final Value | Change vs Anchor |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, s := range c.Scenarios {
		final := s.Projected[len(s.Projected)-1]
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			cell(s.Name), valuation.FormatPercentage(s.GrowthRate), number(final), change(final, c.Anchor))
	}
	b.WriteString("\n")

	// --- Envelope ---
	b.WriteString("## Envelope\n\n")
	b.WriteString("| Period | Lower | Upper | Width |\n")
	b.WriteString("|---:|---:|---:|---:|\n")
	width := c.Envelope.Width()
	for i := range c.Envelope.Upper {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n",
			i, number(c.Envelope.Lower[i]), number(c.Envelope.Upper[i]), number(width[i]))
	}
	b.WriteString("\n")

	// --- DCF ---
	if len(in.Valuations) > 0 {
		b.WriteString("## Fair Value (DCF)\n\n")
		b.WriteString("| Scenario | Growth Rate | Fair Value / Share |")
		if in.Field != nil {
			b.WriteString(" vs Current |")
		}
		b.WriteString("\n|---|---:|---:|")
		if in.Field != nil {
			b.WriteString("---:|")
		}
		b.WriteString("\n")

		labels := map[string]string{}
		if in.Field != nil {
			for _, m := range in.Field.Markers {
				labels[m.Name] = m.Label
			}
		}
		for _, v := range in.Valuations {
			fmt.Fprintf(&b, "| %s | %s | %s |", cell(v.Scenario), valuation.FormatPercentage(v.GrowthRate), valuation.FormatPrice(v.SharePrice))
			if in.Field != nil {
				fmt.Fprintf(&b, " %s |", labels[v.Scenario])
			}
			b.WriteString("\n")
		}
		if in.Field != nil {
			fmt.Fprintf(&b, "\nCurrent price %s.\n", valuation.FormatPrice(in.Field.CurrentPrice))
		}
		b.WriteString("\n")
	}

	// --- Assumptions ---
	b.WriteString("## Assumptions\n\n")
	b.WriteString("| Assumption | Value | Drives Projection |\n")
	b.WriteString("|---|---:|:---:|\n")
	for _, k := range sortedKeys(c.Assumptions) {
		label := k
		if f, ok := assumption.LookupField(k); ok {
			label = f.Label
		}
		used := "no"
		if k == assumption.BaselineGrowthKey {
			used = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(label), valuation.FormatPercentage(c.Assumptions[k]), used)
	}

	return b.String(), nil
}

// HTML renders the Markdown report into a complete HTML document.
func HTML(in Input) (string, error) {
	md, err := Markdown(in)
	if err != nil {
		return "", err
	}
	body, err := utils.RenderHTML(md)
	if err != nil {
		return "", err
	}

	title := in.Title
	if title == "" {
		title = DefaultTitle
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

func number(v float64) string {
	if !validate.IsFinite(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func change(v, anchor float64) string {
	if anchor == 0 {
		return "n/a"
	}
	return valuation.FormatChange(validate.CalculateChange(v, anchor))
}

// cell escapes the characters that would break a GFM table row
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func sortedKeys(m map[string]float64) []string {
	return assumption.NewSet(m).Keys()
}
