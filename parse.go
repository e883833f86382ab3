package md2invoice

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-md2invoice/internal/dateutil"
	"github.com/alnah/go-md2invoice/internal/money"
)

// section is the parser state: which part of the document subsequent lines belong to.
type section int

const (
	sectionIdle section = iota
	sectionPayer
	sectionPayee
	sectionLineItems
	sectionExpenses
	sectionTotal
	sectionNotes
)

// sectionNames maps lowercased heading text to the section it opens.
var sectionNames = map[string]section{
	"payer":      sectionPayer,
	"recipient":  sectionPayer,
	"bill to":    sectionPayer,
	"payee":      sectionPayee,
	"invoicer":   sectionPayee,
	"from":       sectionPayee,
	"line items": sectionLineItems,
	"expenses":   sectionExpenses,
	"total":      sectionTotal,
	"totals":     sectionTotal,
	"notes":      sectionNotes,
	"payment":    sectionNotes,
}

// scalarField assigns the text after a fixed label to the invoice.
type scalarField struct {
	label string
	set   func(inv *Invoice, value string)
}

// scalarFields is checked in order; the first label a line starts with wins.
var scalarFields = []scalarField{
	{"Invoice ID:", func(inv *Invoice, v string) { inv.InvoiceID = v }},
	{"Invoice Number:", func(inv *Invoice, v string) { inv.InvoiceID = v }},
	{"Issue Date:", func(inv *Invoice, v string) { inv.IssueDate = v }},
	{"Date:", func(inv *Invoice, v string) { inv.IssueDate = v }},
	{"Recipient Name:", func(inv *Invoice, v string) { inv.Payer.Name = v }},
	{"Recipient Address:", func(inv *Invoice, v string) { inv.Payer.Address = v }},
	{"Recipient Telephone:", func(inv *Invoice, v string) { inv.Payer.Telephone = v }},
	{"Telephone Number:", func(inv *Invoice, v string) { inv.Payer.Telephone = v }},
	{"Invoicer Name:", func(inv *Invoice, v string) { inv.Payee.Name = v }},
	{"Invoicer Address:", func(inv *Invoice, v string) { inv.Payee.Address = v }},
	{"Invoicer Email:", func(inv *Invoice, v string) { inv.Payee.Email = v }},
	{"Invoicer Telephone:", func(inv *Invoice, v string) { inv.Payee.Telephone = v }},
	{"Total:", func(inv *Invoice, v string) { inv.DeclaredGrandTotal = declared(v) }},
	{"Expenses:", func(inv *Invoice, v string) { inv.DeclaredExpensesTotal = declared(v) }},
}

// partyFields maps lowercased list item keys inside a payer or payee section.
var partyFields = map[string]func(p *Party, value string){
	"name":      func(p *Party, v string) { p.Name = v },
	"address":   func(p *Party, v string) { p.Address = v },
	"telephone": func(p *Party, v string) { p.Telephone = v },
	"phone":     func(p *Party, v string) { p.Telephone = v },
	"tel":       func(p *Party, v string) { p.Telephone = v },
	"email":     func(p *Party, v string) { p.Email = v },
	"e-mail":    func(p *Party, v string) { p.Email = v },
}

// Inline entity markers.
const (
	lineItemMarker = "Line Item:"
	expenseMarker  = "Expense:"
)

var (
	headingPattern   = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*$`)
	separatorPattern = regexp.MustCompile(`^[\s|:\-]+$`)
)

// fieldsPerRow is the number of required cells for a line item or expense.
const fieldsPerRow = 4

// Parser turns invoice markdown into an Invoice.
// Both the flat "Label: value" dialect and the sectioned table dialect are accepted,
// line by line, in the same document.
type Parser struct {
	// Now supplies the issue date when the document has none.
	Now func() time.Time
}

// NewParser creates a Parser that defaults issue dates to the current date.
func NewParser() *Parser {
	return &Parser{Now: time.Now}
}

// Parse parses source with a default Parser.
func Parse(source string) (*Invoice, error) {
	return NewParser().Parse(source)
}

// Parse reads source in a single forward pass.
// Unknown labels and incomplete rows are dropped silently; the only failures are
// ErrEmptyDocument and ErrNoBillableContent.
func (p *Parser) Parse(source string) (*Invoice, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptyDocument
	}

	st := &parseState{inv: &Invoice{}}
	for _, line := range strings.Split(source, "\n") {
		st.parseLine(line)
	}

	inv := st.inv
	inv.Notes = joinNotes(st.notes)
	if !inv.HasBillableContent() {
		return nil, ErrNoBillableContent
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	if inv.IssueDate == "" {
		inv.IssueDate = dateutil.IssueDate(now())
	} else if resolved, err := dateutil.ResolveDate(inv.IssueDate, now()); err == nil {
		// A malformed "auto:" format keeps the written value.
		inv.IssueDate = resolved
	}

	return inv, nil
}

// parseState is the mutable state of one Parse call.
type parseState struct {
	inv        *Invoice
	section    section
	headerSeen bool // table header consumed; only meaningful in table sections
	inFence    bool // inside a fenced code block in the notes section
	notes      []string
}

func (st *parseState) parseLine(raw string) {
	raw = strings.TrimRight(raw, "\r")
	if st.section == sectionNotes && st.captureNote(raw) {
		return
	}

	line := strings.TrimSpace(raw)
	if line == "" || isComment(line) {
		return
	}

	if m := headingPattern.FindStringSubmatch(line); m != nil {
		st.enter(m[1])
		return
	}

	if strings.HasPrefix(line, "|") {
		st.parseTableRow(line)
		return
	}

	if key, value, ok := listItem(line); ok {
		st.parseListItem(key, value)
		return
	}

	plain := unbold(line)

	if rest, ok := strings.CutPrefix(plain, lineItemMarker); ok {
		st.addLineItem(strings.Split(rest, ","))
		return
	}
	if rest, ok := strings.CutPrefix(plain, expenseMarker); ok {
		st.addExpense(strings.Split(rest, ","))
		return
	}

	for _, f := range scalarFields {
		if rest, ok := strings.CutPrefix(plain, f.label); ok {
			f.set(st.inv, strings.TrimSpace(rest))
			return
		}
	}

	if st.section == sectionTotal {
		if d, ok := money.Parse(plain); ok {
			st.inv.DeclaredGrandTotal = decimal.NewNullDecimal(d)
		}
	}
}

// enter transitions to the section named by a heading. Unknown headings close the
// current section.
func (st *parseState) enter(heading string) {
	name := strings.ToLower(strings.TrimSpace(unbold(heading)))
	name = strings.TrimSpace(strings.TrimSuffix(name, ":"))

	st.section = sectionNames[name]
	st.headerSeen = false
	st.inFence = false
}

// captureNote keeps raw as a line of free-form notes. A heading outside a code
// fence ends the notes and is left for the caller.
func (st *parseState) captureNote(raw string) bool {
	line := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(line, "```"), strings.HasPrefix(line, "~~~"):
		st.inFence = !st.inFence
	case !st.inFence && headingPattern.MatchString(line):
		return false
	}
	st.notes = append(st.notes, raw)
	return true
}

func (st *parseState) parseTableRow(line string) {
	if st.section != sectionLineItems && st.section != sectionExpenses {
		return
	}
	if separatorPattern.MatchString(line) {
		return
	}
	if !st.headerSeen {
		st.headerSeen = true
		return
	}

	cells := splitRow(line)
	if st.section == sectionLineItems {
		st.addLineItem(cells)
	} else {
		st.addExpense(cells)
	}
}

func (st *parseState) parseListItem(key, value string) {
	var party *Party
	switch st.section {
	case sectionPayer:
		party = &st.inv.Payer
	case sectionPayee:
		party = &st.inv.Payee
	default:
		return
	}
	if set, ok := partyFields[strings.ToLower(key)]; ok {
		set(party, value)
	}
}

// addLineItem appends description, date, hours, amount when all four are present.
func (st *parseState) addLineItem(fields []string) {
	f, ok := requiredFields(fields)
	if !ok {
		return
	}
	st.inv.LineItems = append(st.inv.LineItems, LineItem{
		Description: f[0],
		Date:        f[1],
		Hours:       money.ParseOrZero(f[2]),
		Amount:      money.ParseOrZero(f[3]),
	})
}

// addExpense appends date, name, description, amount when all four are present.
func (st *parseState) addExpense(fields []string) {
	f, ok := requiredFields(fields)
	if !ok {
		return
	}
	st.inv.Expenses = append(st.inv.Expenses, Expense{
		Date:        f[0],
		Name:        f[1],
		Description: f[2],
		Amount:      money.ParseOrZero(f[3]),
	})
}

// requiredFields trims the first four fields and reports whether none is blank.
func requiredFields(fields []string) ([fieldsPerRow]string, bool) {
	var out [fieldsPerRow]string
	if len(fields) < fieldsPerRow {
		return out, false
	}
	for i := range out {
		out[i] = strings.TrimSpace(fields[i])
		if out[i] == "" {
			return out, false
		}
	}
	return out, true
}

// splitRow splits a pipe table row into trimmed cells. "\|" is a literal pipe.
func splitRow(line string) []string {
	const escaped = "\x00"
	line = strings.ReplaceAll(line, `\|`, escaped)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	cells := strings.Split(line, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(strings.ReplaceAll(c, escaped, "|"))
	}
	return cells
}

// listItem splits "- key: value" (or "* key: value") into key and value.
func listItem(line string) (key, value string, ok bool) {
	rest, found := strings.CutPrefix(line, "- ")
	if !found {
		rest, found = strings.CutPrefix(line, "* ")
	}
	if !found {
		return "", "", false
	}
	key, value, found = strings.Cut(unbold(rest), ":")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "<!--") && strings.HasSuffix(line, "-->")
}

// unbold removes markdown strong emphasis markers.
func unbold(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "**", ""), "__", "")
}

// joinNotes joins note lines, dropping leading and trailing blank lines.
func joinNotes(lines []string) string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// declared parses an author-written total; anything non-numeric counts as absent.
func declared(s string) decimal.NullDecimal {
	d, ok := money.Parse(s)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
