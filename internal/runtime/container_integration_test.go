// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"

	"github.com/sebo83910/litex-axi-converter/internal/container"
)

const integrationImage = "alpine:latest"

// checkTestcontainersAvailable reports whether a container provider answers.
// Provider lookup panics on some hosts without a daemon.
func checkTestcontainersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

// newShellContainer returns a runtime running "sh <script>" in alpine.
func newShellContainer(t *testing.T) *ContainerRuntime {
	t.Helper()

	engine, err := container.NewEngine(container.EngineTypePodman)
	if err != nil {
		t.Skipf("skipping container integration tests: %v", err)
	}
	rt := NewContainerRuntime(engine, integrationImage, "sh")
	rt.Args = []string{}
	return rt
}

func TestContainerRuntime_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !checkTestcontainersAvailable() {
		t.Skip("skipping container integration tests: testcontainers provider not available")
	}

	t.Run("ExitCode", testContainerExitCode)
	t.Run("WritesIntoMountedDir", testContainerWritesIntoMountedDir)
	t.Run("Environment", testContainerEnvironment)
	t.Run("ReachesSiblingDir", testContainerReachesSiblingDir)
}

func runScript(t *testing.T, rt *ContainerRuntime, dir, body string, env ...string) (*Result, string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, "run.sh"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var stdout, stderr bytes.Buffer
	res := rt.Run(ctx, Invocation{Dir: dir, Script: "run.sh", Env: env, Stdout: &stdout, Stderr: &stderr})
	if res.Error != nil {
		t.Fatalf("Run() error: %v (stderr: %s)", res.Error, stderr.String())
	}
	return res, stdout.String()
}

func testContainerExitCode(t *testing.T) {
	res, _ := runScript(t, newShellContainer(t), t.TempDir(), "exit 3\n")
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
}

func testContainerWritesIntoMountedDir(t *testing.T) {
	dir := t.TempDir()
	res, _ := runScript(t, newShellContainer(t), dir, "pwd > where.txt\n")
	if !res.Success() {
		t.Fatalf("ExitCode = %d", res.ExitCode)
	}

	data, err := os.ReadFile(filepath.Join(dir, "where.txt"))
	if err != nil {
		t.Fatalf("output not visible on the host: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != ContainerWorkDir {
		t.Errorf("working directory = %q, want %q", got, ContainerWorkDir)
	}
}

func testContainerEnvironment(t *testing.T) {
	_, out := runScript(t, newShellContainer(t), t.TempDir(), "echo \"$BUILD_NAME\"\n", "BUILD_NAME=axi_converter_128b_to_64b")
	if strings.TrimSpace(out) != "axi_converter_128b_to_64b" {
		t.Errorf("stdout = %q", out)
	}
}

func testContainerReachesSiblingDir(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "package_axi_converter_128b_to_64b")
	ifaceDir := filepath.Join(root, "interfaces")
	for _, d := range []string{pkgDir, ifaceDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(ifaceDir, "wishbone.xml"), []byte("wishbone\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkgDir, "run.sh"), []byte("cat ../interfaces/wishbone.xml\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var stdout bytes.Buffer
	res := newShellContainer(t).Run(ctx, Invocation{Root: root, Dir: pkgDir, Script: "run.sh", Stdout: &stdout})
	if !res.Success() {
		t.Fatalf("Run() = %+v", res)
	}
	if strings.TrimSpace(stdout.String()) != "wishbone" {
		t.Errorf("stdout = %q", stdout.String())
	}
}
