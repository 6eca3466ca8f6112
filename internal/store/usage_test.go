package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEstimateUsage_SumsFilesUnderDir(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.Ensure(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := os.WriteFile(s.dbPath(), make([]byte, 600), 0o644); err != nil {
		t.Fatalf("write db: %v", err)
	}
	if err := os.MkdirAll(s.cacheDir(), 0o755); err != nil {
		t.Fatalf("mkdir cache: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.cacheDir(), "blob"), make([]byte, 300), 0o644); err != nil {
		t.Fatalf("write blob: %v", err)
	}

	u, err := s.EstimateUsage(1000)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if u.UsedBytes != 900 {
		t.Fatalf("used = %d, want 900", u.UsedBytes)
	}
	if !u.OverThreshold() {
		t.Fatalf("90%% of quota should be over the %v%% threshold", WarnUsagePercent)
	}
}

func TestUsage_ZeroQuotaNeverWarns(t *testing.T) {
	u := Usage{UsedBytes: 1 << 30, QuotaBytes: 0}
	if u.OverThreshold() {
		t.Fatal("quota estimation unavailable must degrade to no warning")
	}
	if u.Percent() != 0 {
		t.Fatalf("percent = %v, want 0", u.Percent())
	}
}

func TestUsage_UnderThreshold(t *testing.T) {
	u := Usage{UsedBytes: 79, QuotaBytes: 100}
	if u.OverThreshold() {
		t.Fatalf("79%% should not warn")
	}
}
