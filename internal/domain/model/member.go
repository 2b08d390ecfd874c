//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "errors"

// Member is a society member row in the admin dashboard.
type Member struct {
	MobileNumber string `json:"mobileNumber"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FullName     string `json:"fullName"`
	Role         string `json:"role"`
}

// DisplayName prefers the backend full name and falls back to first + last.
func (m Member) DisplayName() string {
	if m.FullName != "" {
		return m.FullName
	}
	switch {
	case m.FirstName != "" && m.LastName != "":
		return m.FirstName + " " + m.LastName
	case m.FirstName != "":
		return m.FirstName
	default:
		return m.LastName
	}
}

// CreateMemberRequest is the body of POST /member/create.
type CreateMemberRequest struct {
	Mobile    string `json:"mobile"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Validate requires mobile, first name and password.
func (r CreateMemberRequest) Validate() error {
	if blank(r.Mobile) || blank(r.FirstName) || blank(r.Password) {
		return errors.New("mobile, first name and password are required")
	}
	return nil
}
