package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context.
type TestContext interface {
	POST(path string, body any) error
	GetResponseField(field string) (any, error)
	SetAccessToken(token string)
}

// RegisterSteps registers registration and login step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I register "([^"]*)" with password "([^"]*)" as a "([^"]*)"$`, steps.register)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.login)
	ctx.Step(`^I save the access token$`, steps.saveAccessToken)
	ctx.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, steps.loginAndSave)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) register(ctx context.Context, email, password, role string) error {
	return s.tc.POST("/auth/register", map[string]any{
		"email":    email,
		"password": password,
		"role":     role,
	})
}

func (s *authSteps) login(ctx context.Context, email, password string) error {
	return s.tc.POST("/auth/login", map[string]any{
		"email":    email,
		"password": password,
	})
}

func (s *authSteps) saveAccessToken(ctx context.Context) error {
	token, err := s.tc.GetResponseField("access_token")
	if err != nil {
		return err
	}
	raw, ok := token.(string)
	if !ok || raw == "" {
		return fmt.Errorf("access_token missing from login response")
	}
	s.tc.SetAccessToken(raw)
	return nil
}

func (s *authSteps) loginAndSave(ctx context.Context, email, password string) error {
	if err := s.login(ctx, email, password); err != nil {
		return err
	}
	return s.saveAccessToken(ctx)
}
