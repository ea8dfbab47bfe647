package model

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Encode writes the invoice with the field names of the manageInvoice JSON payload.
func (inv *Invoice) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("invoiceNumber")
	e.Str(inv.Number)
	e.FieldStart("invoiceIssueDate")
	e.Str(formatDate(inv.IssueDate))
	e.FieldStart("supplierTaxNumber")
	e.Str(inv.SupplierTaxNumber)
	e.FieldStart("supplierName")
	e.Str(inv.SupplierName)
	e.FieldStart("customerTaxNumber")
	e.Str(inv.CustomerTaxNumber)
	e.FieldStart("customerName")
	e.Str(inv.CustomerName)
	e.FieldStart("items")
	e.ArrStart()
	for i := range inv.Lines {
		inv.Lines[i].Encode(e)
	}
	e.ArrEnd()
	e.FieldStart("invoiceCategory")
	e.Str(string(inv.Category))
	e.FieldStart("paymentMethod")
	e.Str(string(inv.PaymentMethod))
	e.FieldStart("invoiceAppearance")
	e.Str(string(inv.Appearance))
	e.FieldStart("currencyCode")
	e.Str(inv.CurrencyCode)
	e.FieldStart("exchangeRate")
	e.Float64(inv.ExchangeRate)
	if !inv.DeliveryDate.IsZero() {
		e.FieldStart("invoiceDeliveryDate")
		e.Str(formatDate(inv.DeliveryDate))
	}
	e.ObjEnd()
}

func (inv *Invoice) MarshalJSON() ([]byte, error) {
	e := jx.Encoder{}
	inv.Encode(&e)
	return e.Bytes(), nil
}

func (inv *Invoice) Decode(d *jx.Decoder) error {
	if inv == nil {
		return errors.New("invalid: unable to decode Invoice to nil")
	}
	err := d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		var err error
		switch string(k) {
		case "invoiceNumber":
			inv.Number, err = d.Str()
		case "invoiceIssueDate":
			inv.IssueDate, err = decodeDate(d)
		case "invoiceDeliveryDate":
			inv.DeliveryDate, err = decodeDate(d)
		case "supplierTaxNumber":
			inv.SupplierTaxNumber, err = d.Str()
		case "supplierName":
			inv.SupplierName, err = d.Str()
		case "customerTaxNumber":
			inv.CustomerTaxNumber, err = d.Str()
		case "customerName":
			inv.CustomerName, err = d.Str()
		case "invoiceCategory":
			var v string
			v, err = d.Str()
			inv.Category = InvoiceCategory(v)
		case "paymentMethod":
			var v string
			v, err = d.Str()
			inv.PaymentMethod = PaymentMethod(v)
		case "invoiceAppearance":
			var v string
			v, err = d.Str()
			inv.Appearance = InvoiceAppearance(v)
		case "currencyCode":
			inv.CurrencyCode, err = d.Str()
		case "exchangeRate":
			inv.ExchangeRate, err = d.Float64()
		case "items":
			inv.Lines = inv.Lines[:0]
			err = d.Arr(func(d *jx.Decoder) error {
				var l InvoiceLine
				if err := l.Decode(d); err != nil {
					return err
				}
				inv.Lines = append(inv.Lines, l)
				return nil
			})
		default:
			return d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "decode field %q", k)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "decode Invoice")
	}
	return nil
}

func (inv *Invoice) UnmarshalJSON(data []byte) error {
	return inv.Decode(jx.DecodeBytes(data))
}

func (l *InvoiceLine) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("lineNumber")
	e.Str(l.LineNumber)
	e.FieldStart("lineDescription")
	e.Str(l.Description)
	e.FieldStart("quantity")
	e.Float64(l.Quantity)
	e.FieldStart("unitOfMeasure")
	e.Str(l.UnitOfMeasure)
	e.FieldStart("unitPrice")
	e.Float64(l.UnitPrice)
	e.FieldStart("lineAmountHUF")
	e.Float64(l.LineAmountHUF)
	e.ObjEnd()
}

func (l *InvoiceLine) Decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		var err error
		switch string(k) {
		case "lineNumber":
			// the original payloads carry line numbers as strings, tolerate numbers too
			if d.Next() == jx.Number {
				var n jx.Num
				n, err = d.Num()
				l.LineNumber = n.String()
			} else {
				l.LineNumber, err = d.Str()
			}
		case "lineDescription":
			l.Description, err = d.Str()
		case "quantity":
			l.Quantity, err = d.Float64()
		case "unitOfMeasure":
			l.UnitOfMeasure, err = d.Str()
		case "unitPrice":
			l.UnitPrice, err = d.Float64()
		case "lineAmountHUF":
			l.LineAmountHUF, err = d.Float64()
		default:
			return d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "decode line field %q", k)
		}
		return nil
	})
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func decodeDate(d *jx.Decoder) (time.Time, error) {
	s, err := d.Str()
	if err != nil {
		return time.Time{}, err
	}
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}
