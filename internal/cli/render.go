package cli

import (
	"fmt"
	"strings"

	"github.com/leaklens/leaklens/internal/model"
)

// barWidth is the width of a full category bar.
const barWidth = 30

// RenderReport renders the full analysis report for the terminal.
func RenderReport(result *model.AnalysisResult) string {
	var b strings.Builder

	meta := result.Metadata
	header := fmt.Sprintf("%s to %s · %d transactions · %s",
		meta.StartDate.Format("2006-01-02"),
		meta.EndDate.Format("2006-01-02"),
		meta.TransactionCount,
		meta.Currency,
	)
	b.WriteString(RenderBox("Spending Report", header))
	b.WriteString("\n\n")

	if len(result.Categories) > 0 {
		b.WriteString(FormatTitle("Where your money went"))
		b.WriteString("\n")
		b.WriteString(renderCategories(result.Categories))
		b.WriteString("\n")
	}

	if len(result.PriceChanges) > 0 {
		b.WriteString(FormatTitle("Price increases"))
		b.WriteString("\n")
		for _, pc := range result.PriceChanges {
			b.WriteString(renderPriceChange(pc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(result.Subscriptions) > 0 {
		b.WriteString(FormatTitle("Subscriptions"))
		b.WriteString("\n")
		for _, s := range result.Subscriptions {
			b.WriteString(fmt.Sprintf("  %-28s %8s/mo  %s\n",
				s.Merchant, s.MonthlyCost, SubtleStyle.Render(s.Reason)))
		}
		b.WriteString("\n")
	}

	if len(result.Leaks) > 0 {
		b.WriteString(FormatTitle("Spending leaks"))
		b.WriteString("\n")
		for _, l := range result.Leaks {
			b.WriteString(fmt.Sprintf("  %-26s %-24s %8s/mo\n", l.Kind, l.Merchant, l.MonthlyCost))
		}
		b.WriteString("\n")
	}

	if len(result.TopSpending) > 0 {
		b.WriteString(FormatTitle("Biggest purchases"))
		b.WriteString("\n")
		for _, t := range result.TopSpending {
			b.WriteString(fmt.Sprintf("  %s  %-28s %10s  %s\n",
				t.Date.Format("2006-01-02"), t.Merchant, t.Amount, SubtleStyle.Render(string(t.Category))))
		}
		b.WriteString("\n")
	}

	if c := result.Comparison; c != nil {
		b.WriteString(FormatTitle("Month over month"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s: %s → %s: %s (%+.1f%%)\n",
			c.PreviousMonth, c.PreviousTotal, c.CurrentMonth, c.CurrentTotal, c.TotalChangePercent))
		for _, spike := range c.Spikes {
			b.WriteString(FormatWarning(fmt.Sprintf("  %s up %s (%.0f%%)", spike.Category, spike.Change, spike.ChangePercent)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	savings := fmt.Sprintf("Monthly leak: %s    Projected yearly savings: %s",
		result.MonthlyLeak, result.AnnualSavings)
	b.WriteString(RenderBox("Bottom line", SuccessStyle.Render(savings)))
	b.WriteString("\n")

	if len(meta.Warnings) > 0 {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d entries skipped during analysis", len(meta.Warnings))))
		b.WriteString("\n")
	}

	return b.String()
}

func renderCategories(summaries []model.CategorySummary) string {
	var b strings.Builder
	for _, s := range summaries {
		filled := int(s.Percent / 100 * barWidth)
		if filled > barWidth {
			filled = barWidth
		}
		bar := BarStyle.Render(strings.Repeat("█", filled)) +
			SubtleStyle.Render(strings.Repeat("░", barWidth-filled))

		b.WriteString(fmt.Sprintf("  %-20s %s %10s  %5.1f%%\n", s.Category, bar, s.Total, s.Percent))

		if len(s.TopMerchants) > 0 {
			names := make([]string, 0, len(s.TopMerchants))
			for _, m := range s.TopMerchants {
				names = append(names, fmt.Sprintf("%s (%s)", m.Name, m.Total))
			}
			b.WriteString(SubtleStyle.Render("      " + strings.Join(names, ", ")))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderPriceChange(pc model.PriceChange) string {
	return fmt.Sprintf("  %-28s %s → %s (+%.1f%%)  %s/yr since %s",
		pc.Merchant,
		pc.OldPrice,
		BoldStyle.Render(pc.NewPrice.String()),
		pc.PercentChange,
		ErrorStyle.Render(pc.YearlyImpact.String()),
		pc.LatestDate.Format("2006-01-02"),
	)
}
