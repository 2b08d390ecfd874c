package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
// These constants ensure consistency across UI handlers and template mapping.
const (
	PageHome      = "home"
	PageLogin     = "login"
	PageBootstrap = "bootstrap"
	PageLoading   = "loading"

	// Role dashboards.
	PagePlatformAdmin = "esadmin"
	PageSocietyAdmin  = "admin"
	PageMember        = "member"
)

// Template paths used for loading templates in tests and production.
const (
	// Template directory paths.
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Toast and flash kinds understood by the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

const (
	// BrowserCookieName is the signed cookie holding the browser id and flashes.
	BrowserCookieName = "esangam"
	// DefaultCSRFCookieName is the default name for the CSRF cookie.
	DefaultCSRFCookieName = "esangam_csrf"
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageHome:          "home-content",
	PageLogin:         "login-content",
	PageBootstrap:     "bootstrap-content",
	PageLoading:       "loading-content",
	PagePlatformAdmin: "esadmin-content",
	PageSocietyAdmin:  "admin-content",
	PageMember:        "member-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
// This is the single source of truth for page-to-template mapping.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "home-content"
}
