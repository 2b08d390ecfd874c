//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"fmt"
	"math"
	"time"
)

// AdminDashboard is the payload of GET /dashboard for society admins.
type AdminDashboard struct {
	SocietyName        string         `json:"societyName"`
	SocietyDescription string         `json:"societyDescription"`
	Members            []Member       `json:"members"`
	Loans              []Loan         `json:"loans"`
	Announcements      []Announcement `json:"announcements"`
	BaseRate           float64        `json:"baseRate"`
	OverdueRate        float64        `json:"overdueRate"`
}

// Normalize replaces nil slices and coerces nested loans.
func (d *AdminDashboard) Normalize() {
	if d.Members == nil {
		d.Members = []Member{}
	}
	if d.Loans == nil {
		d.Loans = []Loan{}
	}
	if d.Announcements == nil {
		d.Announcements = []Announcement{}
	}
	for i := range d.Loans {
		d.Loans[i].Normalize()
	}
}

// PendingLoans counts loans still awaiting approval.
func (d AdminDashboard) PendingLoans() int {
	n := 0
	for _, l := range d.Loans {
		if l.Pending() {
			n++
		}
	}
	return n
}

// Description falls back to a generic subtitle when the society has none.
func (d AdminDashboard) Description() string {
	if d.SocietyDescription != "" {
		return d.SocietyDescription
	}
	return "Sangam Admin Dashboard"
}

// ChartPoint is one bar pair in the member loan chart.
type ChartPoint struct {
	Name        string  `json:"name"`
	Principal   float64 `json:"principal"`
	FinalAmount float64 `json:"finalAmount"`
}

// MemberDashboard aggregates the three independent member reads.
// A slice whose fetch failed stays empty and Interest stays zero.
type MemberDashboard struct {
	Loans         []Loan
	Announcements []Announcement
	Interest      InterestRate
	// Failed names the slices that could not be loaded.
	Failed []string
}

// TotalPayable sums principal plus one year of simple interest over active loans.
func (d MemberDashboard) TotalPayable() float64 {
	total := 0.0
	for _, l := range d.Loans {
		if !l.Status.Active() {
			continue
		}
		total += l.FinalAmount(l.EffectiveRate(d.Interest.BaseRate))
	}
	return total
}

// NextDue returns the earliest parsable due date among active loans.
func (d MemberDashboard) NextDue() (time.Time, bool) {
	var (
		next  time.Time
		found bool
	)
	for _, l := range d.Loans {
		if !l.Status.Active() {
			continue
		}
		due, ok := l.Due()
		if !ok {
			continue
		}
		if !found || due.Before(next) {
			next, found = due, true
		}
	}
	return next, found
}

// Chart builds one point per loan in backend order.
func (d MemberDashboard) Chart() []ChartPoint {
	points := make([]ChartPoint, 0, len(d.Loans))
	for i, l := range d.Loans {
		name := fmt.Sprintf("L%d", l.ID)
		if l.ID == 0 {
			name = fmt.Sprintf("L%d", i+1)
		}
		final := l.FinalAmount(l.EffectiveRate(d.Interest.BaseRate))
		points = append(points, ChartPoint{
			Name:        name,
			Principal:   l.Amount,
			FinalAmount: math.Round(final*100) / 100,
		})
	}
	return points
}
