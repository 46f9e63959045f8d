package repository

import (
	"reflect"
	"testing"
	"time"

	"swingboard-backend/internal/domain"
)

func TestHistoryCachePutGet(t *testing.T) {
	c := NewInMemoryHistoryCache()
	c.Put("bitcoin", []float64{1, 2, 3}, 200, true, domain.QualityExcellent)

	entry, ok := c.Get("bitcoin")
	if !ok {
		t.Fatal("entry missing after Put")
	}
	if !reflect.DeepEqual(entry.Data, []float64{1, 2, 3}) {
		t.Errorf("Data = %v", entry.Data)
	}
	if entry.Days != 200 || !entry.IsRealData || entry.DataQuality != domain.QualityExcellent {
		t.Errorf("entry metadata = %+v", entry)
	}

	if _, ok := c.Get("unknown"); ok {
		t.Error("Get on an unknown coin should miss")
	}
}

func TestHistoryCachePutOverwrites(t *testing.T) {
	c := NewInMemoryHistoryCache()
	c.Put("bitcoin", []float64{1}, 30, false, domain.QualityLimited)
	c.Put("bitcoin", []float64{2, 3}, 200, true, domain.QualityExcellent)

	entry, _ := c.Get("bitcoin")
	if !reflect.DeepEqual(entry.Data, []float64{2, 3}) || entry.Days != 200 {
		t.Errorf("entry after overwrite = %+v", entry)
	}
}

func TestHistoryCacheGetCopies(t *testing.T) {
	c := NewInMemoryHistoryCache()
	c.Put("bitcoin", []float64{1, 2, 3}, 200, true, domain.QualityExcellent)

	entry, _ := c.Get("bitcoin")
	entry.Data[0] = 99

	again, _ := c.Get("bitcoin")
	if again.Data[0] != 1 {
		t.Error("mutating a returned series must not affect the cache")
	}
}

func TestCacheEntryFreshnessBoundary(t *testing.T) {
	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	entry := &domain.CacheEntry{Timestamp: base}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just inside the window", base.Add(domain.CacheFreshness - time.Millisecond), true},
		{"exactly at the boundary", base.Add(domain.CacheFreshness), false},
		{"just past the window", base.Add(domain.CacheFreshness + time.Millisecond), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entry.IsFresh(tt.now, domain.CacheFreshness); got != tt.want {
				t.Errorf("IsFresh at %v = %v, want %v", tt.now.Sub(base), got, tt.want)
			}
		})
	}
}

func TestHistoryCacheEvictOlderThan(t *testing.T) {
	c := NewInMemoryHistoryCache()
	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	c.now = func() time.Time { return base.Add(-25 * time.Hour) }
	c.Put("stale", []float64{1}, 200, true, domain.QualityExcellent)

	c.now = func() time.Time { return base }
	c.Put("fresh", []float64{2}, 200, true, domain.QualityExcellent)

	if evicted := c.EvictOlderThan(domain.CacheMaxAge); evicted != 1 {
		t.Errorf("evicted = %d, want 1", evicted)
	}
	if _, ok := c.Get("stale"); ok {
		t.Error("stale entry should be gone")
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry should survive")
	}
}

func TestHistoryCacheClearAll(t *testing.T) {
	c := NewInMemoryHistoryCache()
	c.Put("a", []float64{1}, 1, true, domain.QualityGood)
	c.Put("b", []float64{2}, 1, true, domain.QualityGood)

	c.ClearAll()

	if _, ok := c.Get("a"); ok {
		t.Error("cache should be empty after ClearAll")
	}
}
