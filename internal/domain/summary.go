package domain

import "github.com/shopspring/decimal"

// Summary holds derived figures for a set of employees.
type Summary struct {
	Count       int
	TotalCost   decimal.Decimal
	AverageCost decimal.Decimal
}

// Summarize computes count, total and average cost. Negative costs count as zero.
func Summarize(employees []Employee) Summary {
	total := decimal.Zero
	for _, emp := range employees {
		if emp.Cost.IsNegative() {
			continue
		}
		total = total.Add(emp.Cost)
	}
	summary := Summary{
		Count:       len(employees),
		TotalCost:   total,
		AverageCost: decimal.Zero,
	}
	if summary.Count > 0 {
		summary.AverageCost = total.Div(decimal.NewFromInt(int64(summary.Count)))
	}
	return summary
}

// DisplayTotal returns the total rounded to cents.
func (s Summary) DisplayTotal() decimal.Decimal {
	return s.TotalCost.Round(2)
}

// DisplayAverage returns the average rounded to cents.
func (s Summary) DisplayAverage() decimal.Decimal {
	return s.AverageCost.Round(2)
}

// FilterByTeam returns the employees referencing teamID, or the unassigned pool when teamID is nil.
func FilterByTeam(employees []Employee, teamID *TeamID) []Employee {
	out := make([]Employee, 0, len(employees))
	for _, emp := range employees {
		if SameTeam(emp.TeamID, teamID) {
			out = append(out, emp)
		}
	}
	return out
}
