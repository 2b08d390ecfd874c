package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"strings"
	"time"

	"github.com/Esangam/Esangam-UI/internal/domain/model"
	"github.com/Esangam/Esangam-UI/internal/http/uiutil"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	// Now supplies the reference time for relative timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"friendlyTime": createFriendlyTimeFunc(),
		"backendDate":  backendDate,
		"date":         uiutil.FormatFriendlyDate,
		"ago":          func(t time.Time) string { return uiutil.FriendlyRelativeTime(t, now()) },
		"add":          func(a, b int) int { return a + b },
		"contains":     strings.Contains,
		"money":        uiutil.FormatAmount,
		"rate":         uiutil.FormatRate,
		"statusClass":  statusClass,
		"truncateText": uiutil.TruncateWithEllipsis,
		"hasString":    hasString,
		"dict":         dict,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - The HTML here is rendered by our own trusted templates (html/template),
		// and is embedded back into the same template set. User-provided values were already
		// auto-escaped during ExecuteTemplate above.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		// #nosec G203 - json.Marshal escapes <, > and & so the output is safe inside a script element.
		return template.JS(b), nil
	}
}

func createFriendlyTimeFunc() func(any) string {
	return func(ts any) string {
		var t0 time.Time
		switch v := ts.(type) {
		case time.Time:
			t0 = v
		case *time.Time:
			if v != nil {
				t0 = *v
			}
		default:
			return ""
		}
		return uiutil.FormatFriendlyDateTime(t0)
	}
}

// backendDate formats a loosely typed backend date string, echoing it unchanged when unparsable.
func backendDate(v string) string {
	l := model.Loan{DueDate: v}
	if t, ok := l.Due(); ok {
		return uiutil.FormatFriendlyDate(t)
	}
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func statusClass(status model.LoanStatus) string {
	switch status {
	case model.LoanStatusApproved:
		return "badge-success"
	case model.LoanStatusRejected:
		return "badge-danger"
	case model.LoanStatusRequested:
		return "badge-warning"
	default:
		return "badge-light"
	}
}

// dict builds a map from alternating key/value arguments for passing several values to a sub-template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict requires an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

func hasString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
