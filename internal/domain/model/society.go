//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

// Society is a Sangam tenant as listed by GET /society/all.
type Society struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks the society payload received from the backend.
func (s Society) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("society name is required")
	}
	return nil
}

// CreateSocietyRequest creates a society together with its first admin.
type CreateSocietyRequest struct {
	SocietyName string `json:"societyName"`
	Description string `json:"description"`
	AdminMobile string `json:"adminMobile"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Password    string `json:"password"`
}

// Validate requires society name, admin mobile, first name and password.
func (r CreateSocietyRequest) Validate() error {
	if blank(r.SocietyName) || blank(r.AdminMobile) || blank(r.FirstName) || blank(r.Password) {
		return errors.New("society name, admin mobile, first name and password are required")
	}
	return nil
}

// BootstrapAdminRequest creates the first platform admin.
type BootstrapAdminRequest struct {
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
}

// Validate requires both fields.
func (r BootstrapAdminRequest) Validate() error {
	if blank(r.MobileNumber) || blank(r.Password) {
		return errors.New("mobile number and password are required")
	}
	return nil
}

// BootstrapAdminResponse is the optional confirmation returned by the backend.
type BootstrapAdminResponse struct {
	Message string `json:"message"`
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
