package store

import (
	"io/fs"
	"path/filepath"
)

// WarnUsagePercent is the threshold above which callers should recommend
// running the reset routine.
const WarnUsagePercent = 80.0

// Usage reports on-disk consumption against a configured quota budget.
type Usage struct {
	UsedBytes  int64
	QuotaBytes int64
}

func (u Usage) Percent() float64 {
	if u.QuotaBytes <= 0 {
		return 0
	}
	return float64(u.UsedBytes) / float64(u.QuotaBytes) * 100
}

func (u Usage) OverThreshold() bool {
	return u.QuotaBytes > 0 && u.Percent() > WarnUsagePercent
}

// EstimateUsage sums the size of everything under the data dir (database,
// WAL/SHM sidecars, app state, cache). Estimation failure is non-fatal for
// callers: they skip the warning rather than surfacing an error screen, so
// unreadable entries are simply not counted.
func (s Store) EstimateUsage(quotaBytes int64) (Usage, error) {
	u := Usage{QuotaBytes: quotaBytes}
	err := filepath.WalkDir(s.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		u.UsedBytes += info.Size()
		return nil
	})
	return u, err
}
