//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// RegisterSteps registers all step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Background steps
	ctx.Step(`^the credential service is running$`, tc.serviceIsRunning)
	ctx.Step(`^a credential type "([^"]*)" using "([^"]*)" and "([^"]*)"$`, tc.credentialTypeExists)

	// Request steps
	ctx.Step(`^I GET "([^"]*)"$`, tc.get)
	ctx.Step(`^I GET "([^"]*)" as admin$`, tc.adminGet)
	ctx.Step(`^I DELETE "([^"]*)" as admin$`, tc.adminDelete)
	ctx.Step(`^I PUT credential type "([^"]*)" using "([^"]*)" and "([^"]*)"$`, tc.putCredentialType)
	ctx.Step(`^I create a configuration of "([^"]*)" for resource "([^"]*)" with template "([^"]*)"$`, tc.createConfiguration)
	ctx.Step(`^I enable the saved configuration$`, tc.enableConfiguration)
	ctx.Step(`^I upload asset "([^"]*)" with content "([^"]*)"$`, tc.uploadAsset)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, tc.saveResponseField)

	// Assertion steps
	ctx.Step(`^the response status should be (\d+)$`, tc.responseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.responseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, tc.responseFieldShouldEqual)
}

func (tc *TestContext) serviceIsRunning(ctx context.Context) error {
	if err := tc.Do(http.MethodGet, "/health/live", nil, nil); err != nil {
		return err
	}
	return tc.responseStatusShouldBe(ctx, http.StatusOK)
}

func (tc *TestContext) credentialTypeExists(ctx context.Context, name, retrieval, generation string) error {
	if err := tc.putCredentialType(ctx, name, retrieval, generation); err != nil {
		return err
	}
	return tc.responseStatusShouldBe(ctx, http.StatusOK)
}

func (tc *TestContext) get(ctx context.Context, path string) error {
	return tc.Do(http.MethodGet, path, nil, nil)
}

func (tc *TestContext) adminGet(ctx context.Context, path string) error {
	return tc.Admin(http.MethodGet, path, nil)
}

func (tc *TestContext) adminDelete(ctx context.Context, path string) error {
	return tc.Admin(http.MethodDelete, path, nil)
}

func (tc *TestContext) putCredentialType(ctx context.Context, name, retrieval, generation string) error {
	return tc.Admin(http.MethodPut, "/admin/credential-types", map[string]any{
		"name":            tc.Expand(name),
		"retrieval_func":  retrieval,
		"generation_func": generation,
		"custom_options":  map[string]any{"required_completion": 0.8},
	})
}

func (tc *TestContext) createConfiguration(ctx context.Context, credentialType, resourceID, template string) error {
	return tc.Admin(http.MethodPost, "/admin/configurations", map[string]any{
		"resource_id":     tc.Expand(resourceID),
		"credential_type": tc.Expand(credentialType),
		"custom_options":  map[string]any{"template": template},
	})
}

func (tc *TestContext) enableConfiguration(ctx context.Context) error {
	id, ok := tc.Saved["configuration_id"]
	if !ok {
		return fmt.Errorf("no configuration id saved")
	}
	if err := tc.Admin(http.MethodGet, "/admin/configurations/"+id, nil); err != nil {
		return err
	}
	resourceID, err := tc.GetResponseField("resource_id")
	if err != nil {
		return err
	}
	credentialType, err := tc.GetResponseField("credential_type")
	if err != nil {
		return err
	}
	options, err := tc.GetResponseField("custom_options")
	if err != nil {
		return err
	}
	return tc.Admin(http.MethodPut, "/admin/configurations/"+id, map[string]any{
		"resource_id":     resourceID,
		"credential_type": credentialType,
		"custom_options":  options,
		"enabled":         true,
	})
}

func (tc *TestContext) uploadAsset(ctx context.Context, slug, content string) error {
	path := "/admin/assets/" + slug + "?description=e2e"
	return tc.Do(http.MethodPut, path, []byte(content), map[string]string{
		"X-Admin-Token": tc.AdminToken,
		"Content-Type":  "application/pdf",
	})
}

func (tc *TestContext) saveResponseField(ctx context.Context, field, name string) error {
	value, err := tc.GetResponseField(field)
	if err != nil {
		return err
	}
	tc.Saved[name] = fmt.Sprint(value)
	return nil
}

func (tc *TestContext) responseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	if tc.LastResponse == nil {
		return fmt.Errorf("no request was made")
	}
	if tc.LastResponse.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d but got %d", expectedStatus, tc.LastResponse.StatusCode)
	}
	return nil
}

func (tc *TestContext) responseShouldContain(ctx context.Context, text string) error {
	if !tc.ResponseContains(text) {
		return fmt.Errorf("response does not contain: %s\nResponse: %s", text, string(tc.LastResponseBody))
	}
	return nil
}

func (tc *TestContext) responseFieldShouldEqual(ctx context.Context, field, expectedValue string) error {
	actualValue, err := tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if fmt.Sprint(actualValue) != tc.Expand(expectedValue) {
		return fmt.Errorf("field %s: expected %s but got %v", field, expectedValue, actualValue)
	}
	return nil
}
