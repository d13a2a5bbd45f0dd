package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ProgressEntry records the crawl state of one product. The listing-page
// fields (name, image, announced, short specs) are kept so the crawler can
// fall back on them when a product page yields less than the listing did.
type ProgressEntry struct {
	ProductCode string    `json:"product_code"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url,omitempty"`
	Announced   string    `json:"announced,omitempty"`
	ShortSpecs  []string  `json:"short_specs,omitempty"`
	Status      string    `json:"status"`
	AddedAt     time.Time `json:"added_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Error       string    `json:"error,omitempty"`
}

// ProgressTracker is a file-backed map of product crawl states. Every
// mutation is persisted immediately so an interrupted crawl can resume
// without refetching completed products.
type ProgressTracker struct {
	mu       sync.RWMutex
	entries  map[string]*ProgressEntry
	filename string
}

func NewProgressTracker(filename string) (*ProgressTracker, error) {
	pt := &ProgressTracker{
		entries:  make(map[string]*ProgressEntry),
		filename: filename,
	}

	if err := pt.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return pt, nil
}

func (pt *ProgressTracker) Add(entry *ProgressEntry) error {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if entry.ProductCode == "" {
		return fmt.Errorf("product code is required")
	}

	entry.AddedAt = time.Now()
	entry.UpdatedAt = time.Now()
	if entry.Status == "" {
		entry.Status = StatusPending
	}

	pt.entries[entry.ProductCode] = entry
	return pt.save()
}

func (pt *ProgressTracker) AddBatch(entries []*ProgressEntry) error {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	for _, entry := range entries {
		if entry.ProductCode == "" {
			continue
		}

		// Keep existing entries so resumed crawls do not reset state.
		if _, exists := pt.entries[entry.ProductCode]; exists {
			continue
		}

		entry.AddedAt = time.Now()
		entry.UpdatedAt = time.Now()
		if entry.Status == "" {
			entry.Status = StatusPending
		}

		pt.entries[entry.ProductCode] = entry
	}

	return pt.save()
}

func (pt *ProgressTracker) Get(productCode string) (*ProgressEntry, bool) {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	entry, exists := pt.entries[productCode]
	return entry, exists
}

func (pt *ProgressTracker) GetPending() []*ProgressEntry {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	var pending []*ProgressEntry
	for _, entry := range pt.entries {
		if entry.Status == StatusPending {
			pending = append(pending, entry)
		}
	}
	return pending
}

func (pt *ProgressTracker) UpdateStatus(productCode, status string, errorMsg string) error {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	entry, exists := pt.entries[productCode]
	if !exists {
		return fmt.Errorf("entry not found: %s", productCode)
	}

	entry.Status = status
	entry.UpdatedAt = time.Now()
	entry.Error = errorMsg

	return pt.save()
}

func (pt *ProgressTracker) GetStats() map[string]int {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	stats := make(map[string]int)
	for _, entry := range pt.entries {
		stats[entry.Status]++
	}
	stats["total"] = len(pt.entries)
	return stats
}

func (pt *ProgressTracker) save() error {
	data, err := json.MarshalIndent(pt.entries, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := pt.filename + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, pt.filename)
}

func (pt *ProgressTracker) Load() error {
	data, err := os.ReadFile(pt.filename)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, &pt.entries)
}
