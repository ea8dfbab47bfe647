package model

import (
	"strconv"

	"github.com/beevik/etree"
)

const invoiceDataNamespace = "http://schemas.nav.gov.hu/OSA/3.0/data"

// EncodeXML renders the invoice as an InvoiceData document.
func (inv *Invoice) EncodeXML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("InvoiceData")
	root.CreateAttr("xmlns", invoiceDataNamespace)
	text(root, "invoiceNumber", inv.Number)
	text(root, "invoiceIssueDate", formatDate(inv.IssueDate))
	text(root, "completenessIndicator", "false")

	invoice := root.CreateElement("invoiceMain").CreateElement("invoice")
	head := invoice.CreateElement("invoiceHead")

	supplier := head.CreateElement("supplierInfo")
	taxNumber(supplier.CreateElement("supplierTaxNumber"), inv.SupplierTaxNumber)
	text(supplier, "supplierName", inv.SupplierName)

	if inv.CustomerTaxNumber != "" || inv.CustomerName != "" {
		customer := head.CreateElement("customerInfo")
		if inv.CustomerTaxNumber != "" {
			taxNumber(customer.CreateElement("customerTaxNumber"), inv.CustomerTaxNumber)
		}
		text(customer, "customerName", inv.CustomerName)
	}

	detail := head.CreateElement("invoiceDetail")
	text(detail, "invoiceCategory", string(inv.Category))
	if !inv.DeliveryDate.IsZero() {
		text(detail, "invoiceDeliveryDate", formatDate(inv.DeliveryDate))
	}
	text(detail, "currencyCode", inv.CurrencyCode)
	text(detail, "exchangeRate", formatNumber(inv.ExchangeRate))
	text(detail, "paymentMethod", string(inv.PaymentMethod))
	text(detail, "invoiceAppearance", string(inv.Appearance))

	lines := invoice.CreateElement("invoiceLines")
	for _, l := range inv.Lines {
		line := lines.CreateElement("line")
		text(line, "lineNumber", l.LineNumber)
		text(line, "lineDescription", l.Description)
		text(line, "quantity", formatNumber(l.Quantity))
		text(line, "unitOfMeasure", l.UnitOfMeasure)
		text(line, "unitPrice", formatNumber(l.UnitPrice))
		amounts := line.CreateElement("lineAmountsNormal").CreateElement("lineNetAmountData")
		text(amounts, "lineNetAmountHUF", formatNumber(l.LineAmountHUF))
	}

	summary := invoice.CreateElement("invoiceSummary").CreateElement("summaryNormal")
	text(summary, "invoiceNetAmountHUF", formatNumber(inv.TotalHUF()))

	doc.Indent(2)
	return doc.WriteToBytes()
}

func text(parent *etree.Element, tag, value string) {
	parent.CreateElement(tag).SetText(value)
}

func taxNumber(el *etree.Element, s string) {
	id, vat, county := splitTaxNumber(s)
	text(el, "taxpayerId", id)
	if vat != "" {
		text(el, "vatCode", vat)
	}
	if county != "" {
		text(el, "countyCode", county)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
