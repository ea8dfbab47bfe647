package model

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// PayloadFormat selects how the invoice is carried in invoiceData.
type PayloadFormat int

const (
	// FormatJSON embeds the invoice JSON document as a string.
	FormatJSON PayloadFormat = iota
	// FormatXML embeds the base64 encoded InvoiceData XML document.
	FormatXML
)

func (f PayloadFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	}
	return fmt.Sprintf("PayloadFormat(%d)", int(f))
}

func (f *PayloadFormat) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "json":
		*f = FormatJSON
	case "xml":
		*f = FormatXML
	default:
		return fmt.Errorf("invalid payload format: %q (allowed: json, xml)", string(text))
	}
	return nil
}

// ManageInvoiceRequest is the body of the manageInvoice call.
type ManageInvoiceRequest struct {
	ExchangeToken string
	InvoiceData   string
}

// NewManageInvoiceRequest validates inv and packs it into a request body.
func NewManageInvoiceRequest(exchangeToken string, inv *Invoice, format PayloadFormat) (*ManageInvoiceRequest, error) {
	if exchangeToken == "" {
		return nil, errors.New("exchange token is empty")
	}
	if inv == nil {
		return nil, errors.New("invoice is nil")
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	var data string
	switch format {
	case FormatJSON:
		b, err := inv.MarshalJSON()
		if err != nil {
			return nil, errors.Wrap(err, "encode invoice JSON")
		}
		data = string(b)
	case FormatXML:
		b, err := inv.EncodeXML()
		if err != nil {
			return nil, errors.Wrap(err, "encode invoice XML")
		}
		data = base64.StdEncoding.EncodeToString(b)
	default:
		return nil, errors.Errorf("unsupported payload format %s", format)
	}

	return &ManageInvoiceRequest{ExchangeToken: exchangeToken, InvoiceData: data}, nil
}

func (r *ManageInvoiceRequest) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("exchangeToken")
	e.Str(r.ExchangeToken)
	e.FieldStart("invoiceData")
	e.Str(r.InvoiceData)
	e.ObjEnd()
}

func (r *ManageInvoiceRequest) MarshalJSON() ([]byte, error) {
	e := jx.Encoder{}
	r.Encode(&e)
	return e.Bytes(), nil
}

func (r *ManageInvoiceRequest) Decode(d *jx.Decoder) error {
	if r == nil {
		return errors.New("invalid: unable to decode ManageInvoiceRequest to nil")
	}
	return d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		var err error
		switch string(k) {
		case "exchangeToken":
			r.ExchangeToken, err = d.Str()
		case "invoiceData":
			r.InvoiceData, err = d.Str()
		default:
			return d.Skip()
		}
		return err
	})
}

func (r *ManageInvoiceRequest) UnmarshalJSON(data []byte) error {
	return r.Decode(jx.DecodeBytes(data))
}
