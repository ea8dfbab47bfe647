package nav

import (
	"fmt"
	"strings"
)

type Environment int

const (
	Test Environment = iota
	Prod
)

func (e Environment) BaseURL() string {
	switch e {
	case Prod:
		return "https://api.onlineszamla.nav.gov.hu/invoiceService/v3"
	case Test:
		return "https://api-test.onlineszamla.nav.gov.hu/invoiceService/v3"
	}
	panic("Invalid environment")
}

func (e Environment) Name() string {
	switch e {
	case Prod:
		return "prod"
	case Test:
		return "test"
	}
	panic("Invalid environment")
}

func (e Environment) String() string {
	switch e {
	case Prod, Test:
		return e.Name()
	}
	return fmt.Sprintf("Environment(%d)", int(e))
}

func (e *Environment) UnmarshalText(text []byte) error {
	val := strings.ToLower(strings.TrimSpace(string(text)))

	switch val {
	case "prod":
		*e = Prod
	case "test", "":
		*e = Test
	default:
		return fmt.Errorf("invalid NAV_ENV: %q (allowed: prod, test)", val)
	}
	return nil
}
