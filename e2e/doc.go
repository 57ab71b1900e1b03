//go:build e2e

// Package e2e provides end-to-end browser tests for the library catalog app.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present)
// and are intended for CI pipelines or explicit local testing.
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - Rod for browser automation (Chrome DevTools Protocol)
//   - the libraryd binary, built and launched as a subprocess by TestMain
//   - pkg/harness for readiness polling, process lifecycle, and page helpers
//
// Test isolation:
// All tests share one server process, started once per session from a fresh
// database so seed data is identical every run. Each test launches its own
// browser instance; no cookies or storage carry over between tests.
package e2e
