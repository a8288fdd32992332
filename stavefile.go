//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binName = "safeagent"
	binPath = "bin/" + binName
	mainPkg = "./cmd/" + binName
)

// Default target builds the binary.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"f":    Test.Fuzz,
	"l":    Lint.Default,
	"c":    Check,
	"i":    Install,
	"fmt":  Lint.Fmt,
	"demo": Demo,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// fuzzTargets lists the fuzzers run by test:fuzz, as package and function.
var fuzzTargets = [][2]string{
	{"./pkg/chatmd", "FuzzRender"},
	{"./pkg/chatmd", "FuzzScanCoverage"},
}

// releasePlatforms are the GOOS/GOARCH pairs ci:cross must build for.
var releasePlatforms = []string{
	"linux/amd64", "linux/arm64",
	"darwin/amd64", "darwin/arm64",
	"windows/amd64", "windows/arm64",
	"freebsd/amd64",
}

// Build compiles bin/safeagent with version info, unless it is newer than
// every source.
func Build() error {
	stale, err := target.Dir(binPath, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binPath, "is up to date")
		return nil
	}
	fmt.Println("Building", binName)
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binPath, mainPkg)
}

// Demo renders a sample answer in every output format.
func Demo() error {
	st.Deps(Build)

	sample := filepath.Join(os.TempDir(), "safeagent-demo.md")
	content := strings.Join([]string{
		"# 작업 전 안전 점검",
		"**보호구**를 착용하세요.",
		"- 안전모",
		"  - 턱끈 확인",
		"1. [체크리스트](https://example.com) 확인",
		"```bash",
		"lockout --all",
		"```",
	}, "\n")
	if err := os.WriteFile(sample, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}
	defer func() { _ = os.Remove(sample) }()

	for _, format := range []string{"text", "tree", "json", "html"} {
		fmt.Printf("\n== %s ==\n", format)
		if err := sh.RunV(binPath, "render", "--no-config", "-f", format, sample); err != nil {
			return err
		}
	}
	return nil
}

// Check formats, lints and tests, in that order.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes the binary and coverage artifacts.
func Clean() error {
	for _, p := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version info.
func Install() error {
	fmt.Println("Installing", binName)
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Uninstall deletes the binary that Install placed.
func Uninstall() error {
	installed, err := installPath()
	if err != nil {
		return err
	}
	switch err := os.Remove(installed); {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println(binName, "is not installed")
	case err != nil:
		return fmt.Errorf("remove %s: %w", installed, err)
	default:
		fmt.Println("Removed", installed)
	}
	return nil
}

// Deps downloads and tidies modules.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage writes coverage.html from a fresh test run.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs the race-enabled suite with coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose is test:default with every test name printed.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-v", "-race")
}

// Fuzz runs each fuzzer for FUZZTIME (default 20s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "20s")
	for _, ft := range fuzzTargets {
		pkg, name := ft[0], ft[1]
		fmt.Printf("Fuzzing %s %s for %s\n", pkg, name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+name+"$", "-fuzztime="+fuzzTime, pkg); err != nil {
			return err
		}
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without touching files.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any file needs gofmt.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt -l: %w", err)
	}
	if out = strings.TrimSpace(out); out != "" {
		return fmt.Errorf("needs gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every check CI requires before merge.
func (CI) Gate() {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before := make([][]byte, len(files))
	for i, f := range files {
		before[i], _ = os.ReadFile(f) // go.sum may not exist yet
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for i, f := range files {
		after, _ := os.ReadFile(f)
		if !bytes.Equal(before[i], after) {
			return fmt.Errorf("%s is not tidy; run 'go mod tidy' and commit the result", f)
		}
	}
	return nil
}

// Cross builds mainPkg for every release platform without cgo.
func (CI) Cross() error {
	for _, platform := range releasePlatforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs the Go benchmarks.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

func gotestsum(format string, goTestFlags ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}, goTestFlags...)
	return sh.RunV("go", append(args, "./...")...)
}

func ldflags() string {
	git := func(args ...string) string {
		out, err := sh.Output("git", args...)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(out)
	}
	vars := map[string]string{
		"version": cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		"commit":  cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		"date":    time.Now().UTC().Format(time.RFC3339),
	}
	flags := make([]string, 0, len(vars))
	for _, name := range []string{"version", "commit", "date"} {
		flags = append(flags, fmt.Sprintf("-X main.%s=%s", name, vars[name]))
	}
	return strings.Join(flags, " ")
}

// installPath is where go install puts the binary.
func installPath() (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, binName), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", binName), nil
}
