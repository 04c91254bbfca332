//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/dkoosis/trigen/pkg/render"
)

var status = render.NewTerminal(render.ThemeByName(os.Getenv("TRIGEN_THEME")), 80)

// Default target - build the binary
var Default = Build

// Build builds the trigen binary with version metadata
func Build() error {
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	pkg := "github.com/dkoosis/trigen/internal/version"
	ldflags := strings.Join([]string{
		"-X", pkg + ".Version=" + envOr("VERSION", "dev"),
		"-X", pkg + ".CommitHash=" + commit,
		"-X", pkg + ".BuildDate=" + time.Now().UTC().Format(time.RFC3339),
	}, " ")
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", "bin/trigen", "./cmd/trigen"); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	fmt.Print(status.Status("success", "built bin/trigen"))
	return nil
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}

// QA runs formatting, vet, lint and tests
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Lint.Golangci, Test.All)
}

// Lint namespace for linting commands
type Lint mg.Namespace

// Format checks code formatting
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Golangci runs golangci-lint when installed
func (Lint) Golangci() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Print(status.Status("warning", "golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)"))
		return nil
	}
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs tests with race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
