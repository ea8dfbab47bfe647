package model

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// DateLayout is the calendar date format used in invoice payloads.
const DateLayout = "2006-01-02"

type InvoiceCategory string

const (
	CategoryNormal     InvoiceCategory = "NORMAL"
	CategorySimplified InvoiceCategory = "SIMPLIFIED"
	CategoryAggregate  InvoiceCategory = "AGGREGATE"
)

type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentVoucher  PaymentMethod = "VOUCHER"
	PaymentOther    PaymentMethod = "OTHER"
)

type InvoiceAppearance string

const (
	AppearancePaper      InvoiceAppearance = "PAPER"
	AppearanceElectronic InvoiceAppearance = "ELECTRONIC"
	AppearanceEDI        InvoiceAppearance = "EDI"
	AppearanceUnknown    InvoiceAppearance = "UNKNOWN"
)

// Invoice is the domain payload sent with manageInvoice. The signing layer never inspects it.
type Invoice struct {
	Number            string
	IssueDate         time.Time
	DeliveryDate      time.Time
	SupplierTaxNumber string
	SupplierName      string
	CustomerTaxNumber string
	CustomerName      string
	Category          InvoiceCategory
	PaymentMethod     PaymentMethod
	Appearance        InvoiceAppearance
	CurrencyCode      string
	ExchangeRate      float64
	Lines             []InvoiceLine
}

type InvoiceLine struct {
	LineNumber    string
	Description   string
	Quantity      float64
	UnitOfMeasure string
	UnitPrice     float64
	LineAmountHUF float64
}

// ErrInvalidInvoice is matched by every error returned from Validate.
var ErrInvalidInvoice = errors.New("invalid invoice")

// Hungarian tax number: 8 digit taxpayer id, optionally followed by -VAT code-county code.
var taxNumberRe = regexp.MustCompile(`^(\d{8})(?:-(\d)-(\d{2}))?$`)

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate checks the fields NAV rejects before looking at amounts, then
// that every line amount equals quantity times unit price (rounded to forint).
func (inv *Invoice) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(inv.Number) == "" {
		add("invoice number is empty")
	}
	if inv.IssueDate.IsZero() {
		add("issue date is not set")
	}
	if !taxNumberRe.MatchString(inv.SupplierTaxNumber) {
		add("supplier tax number %q is malformed", inv.SupplierTaxNumber)
	}
	if inv.CustomerTaxNumber != "" && !taxNumberRe.MatchString(inv.CustomerTaxNumber) {
		add("customer tax number %q is malformed", inv.CustomerTaxNumber)
	}
	if strings.TrimSpace(inv.SupplierName) == "" {
		add("supplier name is empty")
	}
	if !currencyRe.MatchString(inv.CurrencyCode) {
		add("currency code %q is not ISO 4217", inv.CurrencyCode)
	}
	if inv.ExchangeRate <= 0 {
		add("exchange rate must be positive")
	}
	if len(inv.Lines) == 0 {
		add("invoice has no lines")
	}

	seen := make(map[string]struct{}, len(inv.Lines))
	for i, l := range inv.Lines {
		if l.LineNumber == "" {
			add("line %d has no line number", i+1)
		} else if _, dup := seen[l.LineNumber]; dup {
			add("line number %s is duplicated", l.LineNumber)
		}
		seen[l.LineNumber] = struct{}{}

		want := math.Round(l.Quantity * l.UnitPrice * inv.ExchangeRate)
		if math.Round(l.LineAmountHUF) != want {
			add("line %s amount %.0f HUF does not match %.0f", l.LineNumber, l.LineAmountHUF, want)
		}
	}

	if len(problems) > 0 {
		return errors.Wrap(ErrInvalidInvoice, strings.Join(problems, "; "))
	}
	return nil
}

// TotalHUF sums the line amounts.
func (inv *Invoice) TotalHUF() float64 {
	var sum float64
	for _, l := range inv.Lines {
		sum += l.LineAmountHUF
	}
	return sum
}

// splitTaxNumber returns taxpayer id, VAT code and county code; the last two may be empty.
func splitTaxNumber(s string) (string, string, string) {
	m := taxNumberRe.FindStringSubmatch(s)
	if m == nil {
		return s, "", ""
	}
	return m[1], m[2], m[3]
}
