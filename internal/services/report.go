package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-transaction-generator/internal/models"
)

// Summarize computes descriptive statistics over a dataset.
// The input does not need to be sorted.
func Summarize(txns []models.Transaction) models.Summary {
	s := models.Summary{
		Count:        len(txns),
		TotalAmount:  decimal.Zero,
		MeanAmount:   decimal.Zero,
		MedianAmount: decimal.Zero,
	}
	if len(txns) == 0 {
		return s
	}

	s.FirstTimestamp, s.LastTimestamp = txns[0].Timestamp, txns[0].Timestamp
	amounts := make([]int64, 0, len(txns))
	for _, t := range txns {
		if t.Timestamp.Before(s.FirstTimestamp) {
			s.FirstTimestamp = t.Timestamp
		}
		if t.Timestamp.After(s.LastTimestamp) {
			s.LastTimestamp = t.Timestamp
		}
		s.TotalAmount = s.TotalAmount.Add(decimal.NewFromInt(t.Amount))
		amounts = append(amounts, t.Amount)
	}

	count := decimal.NewFromInt(int64(len(txns)))
	s.MeanAmount = s.TotalAmount.Div(count).Round(2)

	sort.Slice(amounts, func(i, j int) bool { return amounts[i] < amounts[j] })
	mid := len(amounts) / 2
	if len(amounts)%2 == 1 {
		s.MedianAmount = decimal.NewFromInt(amounts[mid])
	} else {
		s.MedianAmount = decimal.NewFromInt(amounts[mid-1]).
			Add(decimal.NewFromInt(amounts[mid])).
			Div(decimal.NewFromInt(2))
	}

	s.ByCity = countBy(txns, func(t models.Transaction) string { return t.City })
	s.ByType = countBy(txns, func(t models.Transaction) string { return string(t.TransactionType) })
	s.ByOperator = countBy(txns, func(t models.Transaction) string { return t.Operator })
	return s
}

// countBy returns value frequencies ordered by count desc, then value asc.
func countBy(txns []models.Transaction, key func(models.Transaction) string) []models.CategoryCount {
	counts := map[string]int{}
	for _, t := range txns {
		counts[key(t)]++
	}

	out := make([]models.CategoryCount, 0, len(counts))
	for value, c := range counts {
		out = append(out, models.CategoryCount{
			Value:   value,
			Count:   c,
			Percent: float64(c) / float64(len(txns)) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// HumanSummary renders a summary as a plain-text report.
func HumanSummary(s models.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Transactions: %s\n", humanize.Comma(int64(s.Count)))
	if s.Count == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "Period: %s -> %s\n",
		s.FirstTimestamp.Format(models.TimestampLayout), s.LastTimestamp.Format(models.TimestampLayout))

	fmt.Fprintf(&b, "\nAmounts:\n")
	fmt.Fprintf(&b, "  Total: %s FCFA\n", commaDecimal(s.TotalAmount))
	fmt.Fprintf(&b, "  Mean: %s FCFA\n", commaDecimal(s.MeanAmount))
	fmt.Fprintf(&b, "  Median: %s FCFA\n", commaDecimal(s.MedianAmount))

	writeCategories(&b, "By city", s.ByCity, 15)
	writeCategories(&b, "By type", s.ByType, 15)
	writeCategories(&b, "By operator", s.ByOperator, 20)
	return b.String()
}

func writeCategories(b *strings.Builder, title string, counts []models.CategoryCount, width int) {
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, c := range counts {
		fmt.Fprintf(b, "  %-*s : %5s (%5.1f%%)\n", width, c.Value, humanize.Comma(int64(c.Count)), c.Percent)
	}
}

func commaDecimal(d decimal.Decimal) string {
	return humanize.Comma(d.RoundBank(0).IntPart())
}
