package model

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/go-faster/jx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() *Invoice {
	day := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	return &Invoice{
		Number:            "2024/00001",
		IssueDate:         day,
		DeliveryDate:      day,
		SupplierTaxNumber: "12345678-1-11",
		SupplierName:      "Példa Kft.",
		CustomerTaxNumber: "87654321-2-22",
		CustomerName:      "Vásárló Bt.",
		Category:          CategoryNormal,
		PaymentMethod:     PaymentTransfer,
		Appearance:        AppearanceElectronic,
		CurrencyCode:      "HUF",
		ExchangeRate:      1,
		Lines: []InvoiceLine{
			{
				LineNumber:    "1",
				Description:   "Termék 1",
				Quantity:      2,
				UnitOfMeasure: "db",
				UnitPrice:     1000,
				LineAmountHUF: 2000,
			},
		},
	}
}

func TestValidate_Sample(t *testing.T) {
	assert.NoError(t, sampleInvoice().Validate())
}

func TestValidate_Problems(t *testing.T) {
	cases := map[string]func(*Invoice){
		"no number":          func(i *Invoice) { i.Number = " " },
		"no issue date":      func(i *Invoice) { i.IssueDate = time.Time{} },
		"bad supplier tax":   func(i *Invoice) { i.SupplierTaxNumber = "1234-1-11" },
		"bad customer tax":   func(i *Invoice) { i.CustomerTaxNumber = "87654321-22-2" },
		"no supplier name":   func(i *Invoice) { i.SupplierName = "" },
		"bad currency":       func(i *Invoice) { i.CurrencyCode = "huf" },
		"zero exchange rate": func(i *Invoice) { i.ExchangeRate = 0 },
		"no lines":           func(i *Invoice) { i.Lines = nil },
		"amount mismatch":    func(i *Invoice) { i.Lines[0].LineAmountHUF = 1999 },
		"no line number":     func(i *Invoice) { i.Lines[0].LineNumber = "" },
		"duplicate line": func(i *Invoice) {
			i.Lines = append(i.Lines, i.Lines[0])
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			inv := sampleInvoice()
			mutate(inv)
			assert.ErrorIs(t, inv.Validate(), ErrInvalidInvoice)
		})
	}
}

func TestValidate_ForeignCurrency(t *testing.T) {
	inv := sampleInvoice()
	inv.CurrencyCode = "EUR"
	inv.ExchangeRate = 395.5
	inv.Lines[0].UnitPrice = 10
	inv.Lines[0].LineAmountHUF = 7910
	assert.NoError(t, inv.Validate())
}

func TestValidate_TaxNumberWithoutSuffix(t *testing.T) {
	inv := sampleInvoice()
	inv.SupplierTaxNumber = "12345678"
	inv.CustomerTaxNumber = ""
	assert.NoError(t, inv.Validate())
}

func TestInvoiceJSON_FieldNames(t *testing.T) {
	b, err := sampleInvoice().MarshalJSON()
	require.NoError(t, err)
	s := string(b)

	for _, field := range []string{
		`"invoiceNumber":"2024/00001"`,
		`"invoiceIssueDate":"2024-10-10"`,
		`"invoiceDeliveryDate":"2024-10-10"`,
		`"supplierTaxNumber":"12345678-1-11"`,
		`"supplierName":"Példa Kft."`,
		`"customerName":"Vásárló Bt."`,
		`"invoiceCategory":"NORMAL"`,
		`"paymentMethod":"TRANSFER"`,
		`"invoiceAppearance":"ELECTRONIC"`,
		`"currencyCode":"HUF"`,
		`"lineNumber":"1"`,
		`"lineDescription":"Termék 1"`,
		`"unitOfMeasure":"db"`,
	} {
		assert.Contains(t, s, field)
	}
	assert.True(t, jx.Valid(b))
}

func TestInvoiceJSON_DecodeOriginalPayload(t *testing.T) {
	// shape used by the original submission script, numeric line number included
	payload := `{
		"invoiceNumber": "2024/00001",
		"invoiceIssueDate": "2024-10-10",
		"supplierTaxNumber": "12345678-1-11",
		"supplierName": "Példa Kft.",
		"customerTaxNumber": "87654321-2-22",
		"customerName": "Vásárló Bt.",
		"items": [
			{"lineNumber": 1, "lineDescription": "Termék 1", "quantity": 2,
			 "unitOfMeasure": "db", "unitPrice": 1000, "lineAmountHUF": 2000}
		],
		"invoiceCategory": "NORMAL",
		"paymentMethod": "TRANSFER",
		"invoiceAppearance": "ELECTRONIC",
		"currencyCode": "HUF",
		"exchangeRate": 1,
		"invoiceDeliveryDate": "2024-10-10",
		"somethingNew": {"ignored": true}
	}`

	var inv Invoice
	require.NoError(t, inv.UnmarshalJSON([]byte(payload)))
	assert.Equal(t, sampleInvoice(), &inv)
	assert.NoError(t, inv.Validate())
}

func TestInvoiceJSON_DecodeErrors(t *testing.T) {
	var inv Invoice
	assert.Error(t, inv.UnmarshalJSON([]byte(`{"invoiceIssueDate":"10/10/2024"}`)))
	assert.Error(t, inv.UnmarshalJSON([]byte(`{"exchangeRate":"one"}`)))
	assert.Error(t, inv.UnmarshalJSON([]byte(`[]`)))
}

func TestInvoiceXML(t *testing.T) {
	b, err := sampleInvoice().EncodeXML()
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(b))

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "InvoiceData", root.Tag)
	assert.Equal(t, invoiceDataNamespace, root.SelectAttrValue("xmlns", ""))
	assert.Equal(t, "2024/00001", root.FindElement("invoiceNumber").Text())

	supplier := root.FindElement("invoiceMain/invoice/invoiceHead/supplierInfo")
	require.NotNil(t, supplier)
	assert.Equal(t, "12345678", supplier.FindElement("supplierTaxNumber/taxpayerId").Text())
	assert.Equal(t, "1", supplier.FindElement("supplierTaxNumber/vatCode").Text())
	assert.Equal(t, "11", supplier.FindElement("supplierTaxNumber/countyCode").Text())
	assert.Equal(t, "Példa Kft.", supplier.FindElement("supplierName").Text())

	lines := root.FindElements("invoiceMain/invoice/invoiceLines/line")
	require.Len(t, lines, 1)
	assert.Equal(t, "2000", lines[0].FindElement("lineAmountsNormal/lineNetAmountData/lineNetAmountHUF").Text())
	assert.Equal(t, "2000", root.FindElement("invoiceMain/invoice/invoiceSummary/summaryNormal/invoiceNetAmountHUF").Text())
}

func TestInvoiceXML_NoCustomer(t *testing.T) {
	inv := sampleInvoice()
	inv.CustomerTaxNumber = ""
	inv.CustomerName = ""

	b, err := inv.EncodeXML()
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(b))
	assert.Nil(t, doc.FindElement("//customerInfo"))
}

func TestNewManageInvoiceRequest_JSON(t *testing.T) {
	req, err := NewManageInvoiceRequest("exchange-token", sampleInvoice(), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "exchange-token", req.ExchangeToken)

	var inv Invoice
	require.NoError(t, inv.UnmarshalJSON([]byte(req.InvoiceData)))
	assert.Equal(t, sampleInvoice(), &inv)

	body, err := req.MarshalJSON()
	require.NoError(t, err)

	var back ManageInvoiceRequest
	require.NoError(t, back.UnmarshalJSON(body))
	assert.Equal(t, *req, back)
}

func TestNewManageInvoiceRequest_XML(t *testing.T) {
	req, err := NewManageInvoiceRequest("exchange-token", sampleInvoice(), FormatXML)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(req.InvoiceData)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<InvoiceData")
}

func TestNewManageInvoiceRequest_Rejects(t *testing.T) {
	_, err := NewManageInvoiceRequest("", sampleInvoice(), FormatJSON)
	assert.Error(t, err)

	_, err = NewManageInvoiceRequest("t", nil, FormatJSON)
	assert.Error(t, err)

	bad := sampleInvoice()
	bad.Lines = nil
	_, err = NewManageInvoiceRequest("t", bad, FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidInvoice)

	_, err = NewManageInvoiceRequest("t", sampleInvoice(), PayloadFormat(7))
	assert.Error(t, err)
}

func TestPayloadFormat_UnmarshalText(t *testing.T) {
	var f PayloadFormat
	require.NoError(t, f.UnmarshalText([]byte(" XML ")))
	assert.Equal(t, FormatXML, f)
	assert.Equal(t, "xml", f.String())

	require.NoError(t, f.UnmarshalText([]byte("")))
	assert.Equal(t, FormatJSON, f)

	assert.Error(t, f.UnmarshalText([]byte("yaml")))
}
