package version

import (
	"strings"
	"testing"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	if info.Version != Version {
		t.Errorf("expected version %q, got %q", Version, info.Version)
	}
}

func TestGetShortVersion_WithCommit(t *testing.T) {
	origCommit := GitCommit
	defer func() { GitCommit = origCommit }()

	GitCommit = "d8d39ac7519ec1bb60b17cb8de30a28756fa1473"
	got := GetShortVersion()
	if !strings.HasPrefix(got, Version+"-d8d39ac7519e") {
		t.Errorf("unexpected short version %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "sdk-go; ") {
		t.Errorf("unexpected user agent %q", ua)
	}
	if ua != UserAgent() {
		t.Error("user agent must be stable between calls")
	}
}
