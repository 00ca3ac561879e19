//go:build e2e

// Package e2e runs the Gherkin features in features/ against a running
// server. Start the server with ADMIN_TOKEN equal to E2E_ADMIN_TOKEN and
// point BASE_URL at it.
package e2e

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
)

var opts = godog.Options{
	Output: colors.Colored(os.Stdout),
	Format: "pretty",
	Paths:  []string{"features"},
	Strict: true,
}

func TestMain(m *testing.M) {
	godog.BindCommandLineFlags("godog.", &opts)
	flag.Parse()
	os.Exit(m.Run())
}

func TestFeatures(t *testing.T) {
	tc := NewTestContext()
	if err := waitForServer(tc, 10*time.Second); err != nil {
		t.Skipf("no server at %s: %v", tc.BaseURL, err)
	}

	o := opts
	o.TestingT = t
	status := godog.TestSuite{
		Name:                "coursecred",
		ScenarioInitializer: func(sc *godog.ScenarioContext) { initializeScenario(t, sc) },
		Options:             &o,
	}.Run()
	if status != 0 {
		t.Fatalf("feature run exited with status %d", status)
	}
}

// waitForServer polls the liveness probe until it answers or timeout passes.
func waitForServer(tc *TestContext, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		resp, err := tc.HTTPClient.Get(tc.BaseURL + "/health/live")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
			err = fmt.Errorf("liveness answered %d", resp.StatusCode)
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(250 * time.Millisecond)
	}
}

func initializeScenario(t *testing.T, sc *godog.ScenarioContext) {
	tc := NewTestContext()

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*tc = *NewTestContext()
		return ctx, nil
	})
	sc.After(func(ctx context.Context, s *godog.Scenario, err error) (context.Context, error) {
		if err != nil {
			t.Logf("scenario %q failed, last response: %s", s.Name, tc.LastResponseBody)
		}
		return ctx, nil
	})

	RegisterSteps(sc, tc)
}
