// ABOUTME: Tests for the version command
// ABOUTME: Verifies output contains the injected build information
package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCmd(t *testing.T) {
	SetVersion("1.2.3", "abc1234", "2026-01-15")
	defer SetVersion("dev", "none", "unknown")

	cmd := NewVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := out.String()
	for _, want := range []string{"1.2.3", "abc1234", "2026-01-15"} {
		if !strings.Contains(output, want) {
			t.Errorf("version output missing %q: %q", want, output)
		}
	}
}
