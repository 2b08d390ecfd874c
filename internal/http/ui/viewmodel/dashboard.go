package viewmodel

import (
	"time"

	"github.com/Esangam/Esangam-UI/internal/domain/model"
)

// MemberLoanRow is one row of the member's loan table with rates resolved.
type MemberLoanRow struct {
	ID          int64
	Amount      float64
	Status      model.LoanStatus
	BaseRate    float64
	OverdueRate float64
	FinalAmount float64
	Due         time.Time
}

// MemberStats are the summary cards above the member's loan table.
type MemberStats struct {
	TotalLoans   int
	ActiveLoans  int
	BaseRate     float64
	OverdueRate  float64
	TotalPayable float64
	NextDue      time.Time
	HasNextDue   bool
}

// defaultTerm is the term assumed for loans the backend reports without a due date.
const defaultTerm = 365 * 24 * time.Hour

// NewMemberLoanRows resolves per-loan rates against the society's current rates.
// Loans without a parsable due date show now plus one year.
func NewMemberLoanRows(d model.MemberDashboard, now time.Time) []MemberLoanRow {
	rows := make([]MemberLoanRow, 0, len(d.Loans))
	for _, l := range d.Loans {
		base := l.EffectiveRate(d.Interest.BaseRate)
		overdue := l.OverdueRate
		if overdue == 0 {
			overdue = d.Interest.OverdueRate
		}
		due, ok := l.Due()
		if !ok {
			due = now.Add(defaultTerm)
		}
		rows = append(rows, MemberLoanRow{
			ID:          l.ID,
			Amount:      l.Amount,
			Status:      l.Status,
			BaseRate:    base,
			OverdueRate: overdue,
			FinalAmount: l.FinalAmount(base),
			Due:         due,
		})
	}
	return rows
}

// NewMemberStats computes the summary cards.
func NewMemberStats(d model.MemberDashboard) MemberStats {
	s := MemberStats{
		TotalLoans:   len(d.Loans),
		BaseRate:     d.Interest.BaseRate,
		OverdueRate:  d.Interest.OverdueRate,
		TotalPayable: d.TotalPayable(),
	}
	for _, l := range d.Loans {
		if l.Status.Active() {
			s.ActiveLoans++
		}
	}
	s.NextDue, s.HasNextDue = d.NextDue()
	return s
}
