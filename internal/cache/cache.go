// Package cache holds recently computed credit analyses in memory so repeated
// reads of a stored report do not re-run the engine.
package cache

import (
	"sync"
	"time"

	"github.com/bobmcallan/vire-credit/internal/models"
)

// entry wraps a cached analysis with expiry and insertion order tracking.
type entry struct {
	analysis  *models.CreditAnalysis
	expiry    time.Time
	insertIdx int64
}

// AnalysisCache caches analyses by report id with a TTL and a bounded size.
// Safe for concurrent use.
type AnalysisCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
	now        func() time.Time
}

// New creates an AnalysisCache with the given TTL and max entry count.
func New(ttl time.Duration, maxEntries int) *AnalysisCache {
	return &AnalysisCache{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached analysis for reportID if present and not expired.
func (c *AnalysisCache) Get(reportID string) (*models.CreditAnalysis, bool) {
	c.mu.RLock()
	e, ok := c.items[reportID]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().After(e.expiry) {
		c.mu.Lock()
		if e2, ok2 := c.items[reportID]; ok2 && c.now().After(e2.expiry) {
			delete(c.items, reportID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.analysis, true
}

// Set stores an analysis under its report id. Evicts the oldest entry if at capacity.
func (c *AnalysisCache) Set(analysis *models.CreditAnalysis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		analysis:  analysis,
		expiry:    c.now().Add(c.ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	if _, exists := c.items[analysis.ReportID]; exists {
		c.items[analysis.ReportID] = e
		return
	}

	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[analysis.ReportID] = e
}

// Invalidate drops the cached analysis for reportID.
func (c *AnalysisCache) Invalidate(reportID string) {
	c.mu.Lock()
	delete(c.items, reportID)
	c.mu.Unlock()
}

// Len returns the number of cached entries, expired or not.
func (c *AnalysisCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (c *AnalysisCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestIdx != -1 {
		delete(c.items, oldestKey)
	}
}
