// Package storage persists crawl output. Camera records land as one YAML
// document per product; crawl progress is tracked in a JSON sidecar file so
// interrupted runs resume where they left off.
package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lenscatalog/dpreview-scraper/internal/models"
)

// YAMLWriter writes one <product_code>.yaml file per camera record.
type YAMLWriter struct {
	outputDir string
}

func NewYAMLWriter(outputDir string) (*YAMLWriter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &YAMLWriter{outputDir: outputDir}, nil
}

// Path returns the output file path for a product code.
func (w *YAMLWriter) Path(productCode string) string {
	return filepath.Join(w.outputDir, productCode+".yaml")
}

// Exists reports whether a record for the product is already on disk.
func (w *YAMLWriter) Exists(productCode string) bool {
	_, err := os.Stat(w.Path(productCode))
	return err == nil
}

// Write serializes the camera record. The write goes through a temp file and
// rename so a crash never leaves a half-written record behind.
func (w *YAMLWriter) Write(camera *models.Camera) error {
	if camera.ProductCode == "" {
		return fmt.Errorf("camera record has no product code")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(camera); err != nil {
		return fmt.Errorf("failed to encode camera %s: %w", camera.ProductCode, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize camera %s: %w", camera.ProductCode, err)
	}

	path := w.Path(camera.ProductCode)
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpFile, err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", tmpFile, err)
	}

	return nil
}

// Read loads a previously written camera record.
func (w *YAMLWriter) Read(productCode string) (*models.Camera, error) {
	data, err := os.ReadFile(w.Path(productCode))
	if err != nil {
		return nil, fmt.Errorf("failed to read record for %s: %w", productCode, err)
	}

	var camera models.Camera
	if err := yaml.Unmarshal(data, &camera); err != nil {
		return nil, fmt.Errorf("failed to decode record for %s: %w", productCode, err)
	}
	return &camera, nil
}
