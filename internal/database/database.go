package database

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/config"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/seed"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SourceRecord{},
		&ReportRecord{},
	)
}

// LoadSnapshot reads both tables in their stored order.
func LoadSnapshot(ctx context.Context, db *gorm.DB) (seed.Snapshot, error) {
	var sources []SourceRecord
	if err := db.WithContext(ctx).Order("position, id").Find(&sources).Error; err != nil {
		return seed.Snapshot{}, fmt.Errorf("load water sources: %w", err)
	}

	var reports []ReportRecord
	if err := db.WithContext(ctx).Order("position, id").Find(&reports).Error; err != nil {
		return seed.Snapshot{}, fmt.Errorf("load reports: %w", err)
	}

	snap := seed.Snapshot{}
	for _, r := range sources {
		snap.Sources = append(snap.Sources, r.toModel())
	}
	for _, r := range reports {
		snap.Reports = append(snap.Reports, r.toModel())
	}
	return snap, nil
}

// SaveSnapshot upserts every source and report in one transaction. Rows not
// in the snapshot are left alone.
func SaveSnapshot(ctx context.Context, db *gorm.DB, snap seed.Snapshot) error {
	sources := make([]SourceRecord, 0, len(snap.Sources))
	for i, src := range snap.Sources {
		sources = append(sources, sourceRecord(i, src))
	}
	reports := make([]ReportRecord, 0, len(snap.Reports))
	for i, r := range snap.Reports {
		reports = append(reports, reportRecord(i, r))
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}
		if len(sources) > 0 {
			if err := tx.Clauses(upsert).Create(&sources).Error; err != nil {
				return fmt.Errorf("save water sources: %w", err)
			}
		}
		if len(reports) > 0 {
			if err := tx.Clauses(upsert).Create(&reports).Error; err != nil {
				return fmt.Errorf("save reports: %w", err)
			}
		}
		return nil
	})
}
