package printing

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// DocType identifies a printable document kind
type DocType string

const (
	DocTypeTenancyAgreement DocType = "tenancy_agreement"
	DocTypePaymentReceipt   DocType = "payment_receipt"
	DocTypePaymentNotice    DocType = "payment_notice"
	DocTypeQuitNotice       DocType = "quit_notice"
)

// templateFiles maps document types to their embedded template files
var templateFiles = map[DocType]string{
	DocTypeTenancyAgreement: "tenancy_agreement.html",
	DocTypePaymentReceipt:   "payment_receipt.html",
	DocTypePaymentNotice:    "payment_notice.html",
	DocTypeQuitNotice:       "quit_notice.html",
}

// TemplateEngine renders the embedded document templates with business data.
type TemplateEngine struct {
	templates *template.Template
}

// NewTemplateEngine parses the embedded templates
func NewTemplateEngine() (*TemplateEngine, error) {
	funcMap := template.FuncMap{
		"formatMoney": formatMoney,
		"formatDate":  formatDate,
		"upper":       strings.ToUpper,
	}

	tmpl, err := template.New("documents").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to parse document templates", err)
	}

	return &TemplateEngine{templates: tmpl}, nil
}

// RenderDocument renders the template for a document type into HTML
func (e *TemplateEngine) RenderDocument(docType DocType, data interface{}) (string, error) {
	file, ok := templateFiles[docType]
	if !ok {
		return "", NewRenderError(ErrCodeUnknownTemplate, "unknown document type: "+string(docType), nil)
	}

	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, file, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "template execution failed", err)
	}
	return buf.String(), nil
}

// formatMoney renders a decimal amount with thousand separators and two
// decimal places, e.g. 50000 -> "50,000.00". Accepts both values and
// pointers so optional amounts can feed directly into templates.
func formatMoney(amount interface{}) string {
	var value decimal.Decimal
	switch v := amount.(type) {
	case decimal.Decimal:
		value = v
	case *decimal.Decimal:
		if v == nil {
			return ""
		}
		value = *v
	default:
		return ""
	}
	fixed := value.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	result := strings.Join(groups, ",") + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// formatDate renders a date in the long display format used across the app
func formatDate(t time.Time) string {
	return t.Format("02 January, 2006")
}
