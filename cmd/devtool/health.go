package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tebnews/TEBNews_Go/internal/handler"
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check application liveness, readiness and version"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := apiURL()
	if len(args) > 0 {
		base = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", base))

	client := &http.Client{Timeout: 5 * time.Second}

	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		var health handler.HealthResponse
		if err := getJSON(client, base+path, &health); err != nil {
			PrintError("%s failed: %v", path, err)
			return err
		}
		duration := time.Since(start)

		if duration > 1*time.Second {
			PrintWarning("%s: %s (slow response time %v)", path, health.Status, duration)
		} else {
			PrintSuccess("%s: %s (%v)", path, health.Status, duration)
		}
	}

	var version handler.VersionInfo
	if err := getJSON(client, base+"/version", &version); err != nil {
		PrintWarning("Version lookup failed: %v", err)
		return nil
	}
	PrintInfo("Version %s (commit %s, built %s)", version.Version, version.GitCommit, version.BuildTime)
	return nil
}

func getJSON(client *http.Client, url string, v any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
