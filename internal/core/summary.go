package core

import (
	"sort"
	"time"
)

// invalidDateBucket collects transactions whose business date does not
// parse. Its key sorts after every numeric YYYY-MM key.
const invalidDateBucket = "Invalid Date"

// MonthlySummary is the derived per-calendar-month rollup. It is never
// persisted; it is recomputed in full from the transaction list.
type MonthlySummary struct {
	Month         string `json:"month"`
	OnlineRevenue Money  `json:"onlineRevenue"`
	CashRevenue   Money  `json:"cashRevenue"`
	TotalRevenue  Money  `json:"totalRevenue"`
	Expenses      Money  `json:"expenses"`
	Profit        Money  `json:"profit"`
}

// Aggregate folds transactions into one summary per calendar month,
// ordered chronologically. Accumulation is per-field; totals and profit
// are recomputed from the accumulated fields afterwards so they cannot
// drift. Transactions with an unrecognized type contribute to no bucket.
func Aggregate(transactions []Transaction) []MonthlySummary {
	type bucket struct {
		label                  string
		online, cash, expenses int64
	}
	buckets := make(map[string]*bucket)

	for _, t := range transactions {
		key, label := monthKey(t.Date)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{label: label}
			buckets[key] = b
		}
		switch t.Type {
		case OnlineRevenue:
			b.online += t.Amount.Cents
		case CashRevenue:
			b.cash += t.Amount.Cents
		case Expense:
			b.expenses += t.Amount.Cents
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthlySummary, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		total := b.online + b.cash
		out = append(out, MonthlySummary{
			Month:         b.label,
			OnlineRevenue: Money{Cents: b.online},
			CashRevenue:   Money{Cents: b.cash},
			TotalRevenue:  Money{Cents: total},
			Expenses:      Money{Cents: b.expenses},
			Profit:        Money{Cents: total - b.expenses},
		})
	}
	return out
}

// monthKey resolves a business date to its zero-padded YYYY-MM bucket
// key, which is monotonic with calendar order, plus a display label.
func monthKey(date string) (key, label string) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return invalidDateBucket, invalidDateBucket
	}
	return d.Format("2006-01"), d.Format("Jan 2006")
}
