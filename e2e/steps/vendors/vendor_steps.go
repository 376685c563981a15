package vendor

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context.
type TestContext interface {
	POST(path string, body any) error
	PUT(path string, body any) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (any, error)
	SetVendorID(vendorID string)
	GetVendorID() string
}

// RegisterSteps registers vendor evaluation step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &vendorSteps{tc: tc}

	ctx.Step(`^I evaluate vendor "([^"]*)" with GSTIN "([^"]*)"$`, steps.evaluateVendor)
	ctx.Step(`^I evaluate vendor "([^"]*)" with GSTIN "([^"]*)" and cash payments (\d+)$`, steps.evaluateVendorWithCash)
	ctx.Step(`^I save the vendor ID$`, steps.saveVendorID)
	ctx.Step(`^I place the saved vendor on the watchlist$`, steps.watchlistVendor)
	ctx.Step(`^I list vendors$`, steps.listVendors)
	ctx.Step(`^the vendor list should contain (\d+) vendors?$`, steps.vendorListShouldContain)
}

type vendorSteps struct {
	tc TestContext
}

func (s *vendorSteps) evaluateVendor(ctx context.Context, name, gstin string) error {
	return s.evaluateVendorWithCash(ctx, name, gstin, 0)
}

func (s *vendorSteps) evaluateVendorWithCash(ctx context.Context, name, gstin string, cash int) error {
	return s.tc.POST("/vendors/evaluate", map[string]any{
		"name":              name,
		"gstin":             gstin,
		"address_type":      "Commercial",
		"transaction_count": 12,
		"itc_amount":        250000,
		"cash_payments":     cash,
	})
}

func (s *vendorSteps) saveVendorID(ctx context.Context) error {
	vendorID, err := s.tc.GetResponseField("vendor_id")
	if err != nil {
		return err
	}
	raw, ok := vendorID.(string)
	if !ok || raw == "" {
		return fmt.Errorf("vendor_id missing from evaluation response")
	}
	s.tc.SetVendorID(raw)
	return nil
}

func (s *vendorSteps) watchlistVendor(ctx context.Context) error {
	if s.tc.GetVendorID() == "" {
		return fmt.Errorf("no vendor ID saved")
	}
	return s.tc.PUT("/vendors/"+s.tc.GetVendorID()+"/watchlist", map[string]any{
		"watchlisted": true,
	})
}

func (s *vendorSteps) listVendors(ctx context.Context) error {
	return s.tc.GET("/vendors", nil)
}

func (s *vendorSteps) vendorListShouldContain(ctx context.Context, expected int) error {
	vendors, err := s.tc.GetResponseField("vendors")
	if err != nil {
		return err
	}
	list, ok := vendors.([]any)
	if !ok {
		return fmt.Errorf("vendors field is not a list")
	}
	if len(list) != expected {
		return fmt.Errorf("expected %d vendors, got %d", expected, len(list))
	}
	return nil
}
