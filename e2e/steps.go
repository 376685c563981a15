package e2e

import (
	"github.com/cucumber/godog"

	"bloodhound/e2e/steps/auth"
	"bloodhound/e2e/steps/common"
	"bloodhound/e2e/steps/vendors"
)

// RegisterSteps registers all step definitions from modular packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic request and assertion steps
	common.RegisterSteps(ctx, tc)

	// Registration and login steps
	auth.RegisterSteps(ctx, tc)

	// Vendor evaluation and watchlist steps
	vendor.RegisterSteps(ctx, tc)
}
