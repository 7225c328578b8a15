package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/unera-social/unera-tui/internal/config"
)

// setupCmdTest points the CLI at a throwaway config whose log file
// lives in the test's temp dir, and resets flag state between runs.
func setupCmdTest(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Logging.Path = filepath.Join(dir, "unera.log")

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshaling test config: %v", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfgFile = path
	verbose = false
	articlesCmd.Flags().Set("category", "")
	articlesCmd.Flags().Set("search", "")
	articlesCmd.Flags().Set("json", "false")
	songsCmd.Flags().Set("json", "false")
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return buf.String()
}

func TestVersion(t *testing.T) {
	setupCmdTest(t)

	out := runCommand(t, "version")
	if !bytes.Contains([]byte(out), []byte("unera")) {
		t.Errorf("version output missing name: %q", out)
	}
}
