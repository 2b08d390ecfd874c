package viewmodel

// User represents the authenticated identity exposed to templates.
type User struct {
	Mobile      string
	Role        string
	SocietyName string
	// Label is "mobile (ROLE · society)" as shown in the header.
	Label string
}

// NavItem is one role-specific navigation link.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Kind    string
	Message string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
	Nav             []NavItem
	Flashes         []Flash
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
