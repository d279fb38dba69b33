// Package prompt holds the fixed complaint classification prompt.
package prompt

import "strings"

// Placeholder is the single substitution slot of the complaint template.
const Placeholder = "{complaint_text}"

// Categories are the labels the model is instructed to choose from, in prompt order.
// "Billing Issue" and "Billing/Payment Issue" overlap; both are kept as written.
var Categories = []string{
	"Billing Issue",
	"Technical Support",
	"Product Feedback",
	"Product Quality Issue",
	"Shipping/Delivery Problem",
	"Billing/Payment Issue",
	"Customer Service Experience",
	"Feature Request/Suggestion",
	"General Inquiry/Other",
}

const (
	preamble = `
You are an expert in analyzing customer complaints.
Your task is to classify the following telecom customer complaint into one of these categories:
`
	suffix = `
Category:
`
)

// Template is an immutable prompt with one substitution slot.
type Template struct {
	text string
}

// NewComplaintTemplate builds the complaint classification template.
func NewComplaintTemplate() *Template {
	var b strings.Builder
	b.WriteString(preamble)
	for _, category := range Categories {
		b.WriteString("- ")
		b.WriteString(category)
		b.WriteString("\n")
	}
	b.WriteString("\nComplaint:\n\"")
	b.WriteString(Placeholder)
	b.WriteString("\"\n")
	b.WriteString(suffix)
	return &Template{text: b.String()}
}

// Format returns the template with complaintText substituted verbatim.
// Text containing the placeholder itself is not expanded again.
func (t *Template) Format(complaintText string) string {
	return strings.Replace(t.text, Placeholder, complaintText, 1)
}

// String returns the raw template including the placeholder.
func (t *Template) String() string {
	return t.text
}
