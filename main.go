package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alapierre/go-nav-client/nav"
	"github.com/alapierre/go-nav-client/nav/config"
	"github.com/alapierre/go-nav-client/nav/model"
	"github.com/alapierre/go-nav-client/nav/signature"
	"github.com/alapierre/go-nav-client/nav/util"
	"github.com/sirupsen/logrus"
)

func main() {

	if util.DebugEnabled() {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := loadConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	builder, err := cfg.NewBuilder()
	if err != nil {
		logrus.Fatal(err)
	}

	body, err := model.NewManageInvoiceRequest(cfg.ExchangeKey, sampleInvoice(), cfg.PayloadFormat)
	if err != nil {
		logrus.Fatal(err)
	}

	req, err := nav.NewManageInvoiceRequest(context.Background(), cfg.Env, builder, body)
	if err != nil {
		logrus.Fatal(err)
	}

	fmt.Println(req.Method, req.URL)
	for _, name := range []string{
		signature.HeaderContentType,
		signature.HeaderUserName,
		signature.HeaderRequestID,
		signature.HeaderTimestamp,
		signature.HeaderSignature,
	} {
		fmt.Printf("%s: %s\n", name, req.Header.Get(name))
	}

	payload, err := io.ReadAll(req.Body)
	if err != nil {
		logrus.Fatal(err)
	}
	fmt.Println(string(payload))
}

func loadConfig() (*config.Config, error) {
	if path, ok := os.LookupEnv("NAV_CONFIG"); ok && path != "" {
		return config.Load(path)
	}
	return config.FromEnv()
}

func sampleInvoice() *model.Invoice {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return &model.Invoice{
		Number:            fmt.Sprintf("%d/00001", today.Year()),
		IssueDate:         today,
		DeliveryDate:      today,
		SupplierTaxNumber: "12345678-1-11",
		SupplierName:      "Példa Kft.",
		CustomerTaxNumber: "87654321-2-22",
		CustomerName:      "Vásárló Bt.",
		Category:          model.CategoryNormal,
		PaymentMethod:     model.PaymentTransfer,
		Appearance:        model.AppearanceElectronic,
		CurrencyCode:      "HUF",
		ExchangeRate:      1,
		Lines: []model.InvoiceLine{
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
