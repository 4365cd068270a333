package config

import "testing"

func TestInfo_Defaults(t *testing.T) {
	info := Info()
	if info.Service != ServiceName {
		t.Errorf("expected service %s, got %s", ServiceName, info.Service)
	}
	if info.Version != "dev" || GetVersion() != "dev" {
		t.Errorf("expected default version dev, got %s", info.Version)
	}
	if info.Build != "unknown" || info.GitCommit != "unknown" {
		t.Errorf("expected unknown build and commit, got %s/%s", info.Build, info.GitCommit)
	}
}

func TestInfo_String(t *testing.T) {
	got := Info().String()
	expected := "vire-credit dev (build: unknown, commit: unknown)"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestInfo_FollowsLinkerVariables(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.4.0"
	if Info().Version != "1.4.0" {
		t.Errorf("expected version 1.4.0, got %s", Info().Version)
	}
}
