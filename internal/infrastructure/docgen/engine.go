package docgen

import (
	"bytes"
	"html/template"
	"maps"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/logistics-erp/hrm/internal/domain/document"
)

var moneyPrinter = message.NewPrinter(language.English)

// TemplateEngine binds document data to HTML templates using
// html/template with formatting helpers.
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates an engine with the standard helper set
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{}
	e.funcMap = template.FuncMap{
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"formatTime":     formatTime,
		"formatMoney":    formatMoney,
		"formatDecimal":  formatDecimal,

		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": cases.Title(language.English).String,
		"trim":  strings.TrimSpace,
		"join":  strings.Join,

		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },

		"default":  defaultValue,
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"now":      time.Now,
	}
	return e
}

// Render executes a template against the data
func (e *TemplateEngine) Render(tpl *document.Template, data interface{}) (string, error) {
	if tpl == nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "template is nil", nil)
	}
	return e.RenderString(tpl.ID.String(), tpl.Content, data)
}

// RenderString executes a template string against the data
func (e *TemplateEngine) RenderString(name, content string, data interface{}) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.String(), nil
}

// FuncMap returns a copy of the helper set
func (e *TemplateEngine) FuncMap() template.FuncMap {
	out := make(template.FuncMap, len(e.funcMap))
	maps.Copy(out, e.funcMap)
	return out
}

func formatDate(v interface{}) string {
	if t, ok := toTime(v); ok {
		return t.Format("2006-01-02")
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func formatDateTime(v interface{}) string {
	if t, ok := toTime(v); ok {
		return t.Format("2006-01-02 15:04")
	}
	return ""
}

func formatTime(v interface{}) string {
	if t, ok := toTime(v); ok {
		return t.Format("15:04")
	}
	return ""
}

// formatMoney renders 1234567.5 as "1,234,567.50"
func formatMoney(v interface{}) string {
	d, ok := toDecimal(v)
	if !ok {
		return ""
	}
	f, _ := d.Round(2).Float64()
	return moneyPrinter.Sprintf("%.2f", f)
}

func formatDecimal(v interface{}, places int32) string {
	d, ok := toDecimal(v)
	if !ok {
		return ""
	}
	return d.Round(places).StringFixed(places)
}

func defaultValue(fallback, v interface{}) interface{} {
	if v == nil {
		return fallback
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return fallback
	}
	return v
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	}
	return time.Time{}, false
}

func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch d := v.(type) {
	case decimal.Decimal:
		return d, true
	case *decimal.Decimal:
		if d == nil {
			return decimal.Zero, false
		}
		return *d, true
	case float64:
		return decimal.NewFromFloat(d), true
	case int:
		return decimal.NewFromInt(int64(d)), true
	case int64:
		return decimal.NewFromInt(d), true
	case string:
		parsed, err := decimal.NewFromString(d)
		return parsed, err == nil
	}
	return decimal.Zero, false
}
