package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

// LoadFile reads a YAML snapshot.
func LoadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read seed file: %w", err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return snap, nil
}

// WriteFile stores a snapshot as YAML.
func WriteFile(path string, snap Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode seed file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	return nil
}

// Load returns the snapshot in path, or the built-in sample when path is empty.
func Load(path string) (Snapshot, error) {
	if path == "" {
		return Sample(), nil
	}
	return LoadFile(path)
}

// Audit lists every invariant violation in the snapshot, keyed by record.
func Audit(snap Snapshot) []string {
	var issues []string
	seenSources := make(map[string]bool)
	for _, src := range snap.Sources {
		for _, p := range src.Check() {
			issues = append(issues, fmt.Sprintf("source %s: %s", src.ID, p))
		}
		if seenSources[src.ID] {
			issues = append(issues, fmt.Sprintf("source %s: duplicate id", src.ID))
		}
		seenSources[src.ID] = true
	}

	seenReports := make(map[string]bool)
	for i := range snap.Reports {
		r := &snap.Reports[i]
		for _, p := range r.Check() {
			issues = append(issues, fmt.Sprintf("report %s: %s", r.ID, p))
		}
		if seenReports[r.ID] {
			issues = append(issues, fmt.Sprintf("report %s: duplicate id", r.ID))
		}
		seenReports[r.ID] = true
		if r.WaterSourceID != "" && r.WaterSourceID != model.NewLocationSourceID && !seenSources[r.WaterSourceID] {
			issues = append(issues, fmt.Sprintf("report %s: water source %s is not registered", r.ID, r.WaterSourceID))
		}
	}
	return issues
}
