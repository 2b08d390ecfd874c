//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"math"
	"strings"
	"time"
)

// LoanStatus is the lifecycle state reported by the backend.
type LoanStatus string

const (
	LoanStatusRequested LoanStatus = "REQUESTED"
	LoanStatusApproved  LoanStatus = "APPROVED"
	LoanStatusRejected  LoanStatus = "REJECTED"
)

// Active reports whether the loan counts towards the amount a member owes.
func (s LoanStatus) Active() bool {
	return s == LoanStatusRequested || s == LoanStatusApproved
}

// Loan is a loan row as returned by /loan/my and inside the admin dashboard.
type Loan struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name,omitempty"`
	Amount       float64    `json:"amount"`
	Status       LoanStatus `json:"status"`
	BaseRate     float64    `json:"baseRate"`
	OverdueRate  float64    `json:"overdueRate"`
	ApprovalDate string     `json:"approvalDate,omitempty"`
	DueDate      string     `json:"dueDate,omitempty"`
}

// Normalize coerces loosely formatted fields into canonical form.
func (l *Loan) Normalize() {
	l.Status = LoanStatus(strings.ToUpper(strings.TrimSpace(string(l.Status))))
}

// Validate checks the loan payload received from the backend.
func (l Loan) Validate() error {
	if l.Amount < 0 || math.IsNaN(l.Amount) {
		return errors.New("loan amount must not be negative")
	}
	if l.Status == "" {
		return errors.New("loan status is required")
	}
	return nil
}

// Pending reports whether the loan still awaits an admin decision.
func (l Loan) Pending() bool { return l.Status == LoanStatusRequested }

// Due parses DueDate, accepting RFC 3339 timestamps and plain dates.
func (l Loan) Due() (time.Time, bool) {
	return parseBackendTime(l.DueDate)
}

// FinalAmount is principal plus one year of simple interest at rate percent.
func (l Loan) FinalAmount(rate float64) float64 {
	return l.Amount + l.Amount*rate/100
}

// EffectiveRate is the loan's own base rate, falling back to the society rate when unset.
func (l Loan) EffectiveRate(societyBase float64) float64 {
	if l.BaseRate != 0 {
		return l.BaseRate
	}
	return societyBase
}

// LoanRequest is the body of POST /loan/request.
type LoanRequest struct {
	Amount float64 `json:"amount"`
}

// Validate enforces a strictly positive amount.
func (r LoanRequest) Validate() error {
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || r.Amount <= 0 {
		return errors.New("loan amount must be greater than 0")
	}
	return nil
}

// LoanDecision is the body of POST /loan/approve and /loan/reject.
type LoanDecision struct {
	LoanID int64 `json:"loanId"`
}

// Validate requires a loan id.
func (d LoanDecision) Validate() error {
	if d.LoanID <= 0 {
		return errors.New("loan id is required")
	}
	return nil
}

var backendTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseBackendTime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range backendTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
