//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// InterestRate holds a society's current rates in percent.
type InterestRate struct {
	BaseRate    float64 `json:"baseRate"`
	OverdueRate float64 `json:"overdueRate"`
}

// Validate rejects negative or non-finite rates.
func (r InterestRate) Validate() error {
	for _, v := range []float64{r.BaseRate, r.OverdueRate} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("interest rates must be finite and not negative")
		}
	}
	return nil
}

// ParseInterestRate builds an update request from form input.
func ParseInterestRate(base, overdue string) (InterestRate, error) {
	b, err := strconv.ParseFloat(strings.TrimSpace(base), 64)
	if err != nil {
		return InterestRate{}, errors.New("base rate must be a number")
	}
	o, err := strconv.ParseFloat(strings.TrimSpace(overdue), 64)
	if err != nil {
		return InterestRate{}, errors.New("overdue rate must be a number")
	}
	rate := InterestRate{BaseRate: b, OverdueRate: o}
	if err := rate.Validate(); err != nil {
		return InterestRate{}, err
	}
	return rate, nil
}
