package cmd

import "testing"

func TestVersionCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"version"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if cmd != versionCmd {
		t.Errorf("expected versionCmd, got %v", cmd)
	}
}
