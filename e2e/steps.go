package e2e

import (
	"github.com/cucumber/godog"

	"insurance/e2e/steps/common"
	"insurance/e2e/steps/insurance"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (generic requests, status assertions)
	common.RegisterSteps(ctx, tc)

	// Register insurance overview steps
	insurance.RegisterSteps(ctx, tc)
}
