package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/barberoil/fuelpos/internal/domain/schema"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"gorm.io/gorm"
)

// EnsureSchema makes the database match the store's schema descriptor. It
// only ever adds: collections and indexes missing from the database are
// created, and a new index is backfilled from the records already stored.
// Nothing is renamed or dropped, so applying the same schema again is a
// no-op.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&metaRow{}, &collectionRow{}, &indexRow{}, &recordRow{}, &indexEntryRow{}); err != nil {
		return apperror.NewStoreUnavailableError(fmt.Errorf("failed to create store tables: %w", err))
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var meta metaRow
		err := tx.First(&meta, "name = ?", s.schema.Name).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if meta.Version > s.schema.Version {
			return fmt.Errorf("database %q is at version %d, newer than %d", s.schema.Name, meta.Version, s.schema.Version)
		}

		for _, c := range s.schema.Collections {
			if err := ensureCollection(tx, c); err != nil {
				return err
			}
		}

		if meta.Version < s.schema.Version {
			log.Printf("Upgrading %s from version %d to %d", s.schema.Name, meta.Version, s.schema.Version)
			meta.Name = s.schema.Name
			meta.Version = s.schema.Version
			return tx.Save(&meta).Error
		}
		return nil
	})
	if err != nil {
		return apperror.NewStoreUnavailableError(err)
	}
	return nil
}

// Version returns the schema version recorded in the database.
func (s *Store) Version(ctx context.Context) (int, error) {
	var meta metaRow
	err := s.db.WithContext(ctx).First(&meta, "name = ?", s.schema.Name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, apperror.NewTransactionFailedError("version", err)
	}
	return meta.Version, nil
}

func ensureCollection(tx *gorm.DB, c schema.Collection) error {
	var existing collectionRow
	err := tx.First(&existing, "name = ?", c.Name).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("Creating collection %s (key %s)", c.Name, c.KeyPath)
		if err := tx.Create(&collectionRow{Name: c.Name, KeyPath: c.KeyPath}).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	case existing.KeyPath != c.KeyPath:
		return fmt.Errorf("collection %q is keyed by %q, cannot change to %q", c.Name, existing.KeyPath, c.KeyPath)
	}

	for _, field := range c.Indexes {
		var count int64
		if err := tx.Model(&indexRow{}).
			Where("collection = ? AND field = ?", c.Name, field).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		log.Printf("Creating index %s.%s", c.Name, field)
		if err := tx.Create(&indexRow{Collection: c.Name, Field: field}).Error; err != nil {
			return err
		}
		if err := backfillIndex(tx, c, field); err != nil {
			return err
		}
	}
	return nil
}

func backfillIndex(tx *gorm.DB, c schema.Collection, field string) error {
	var rows []recordRow
	if err := tx.Where("collection = ?", c.Name).Find(&rows).Error; err != nil {
		return err
	}

	var entries []indexEntryRow
	for _, r := range rows {
		fields, err := decodeFields(r.Data)
		if err != nil {
			continue
		}
		if v, ok := scalar(fields[field], true); ok {
			entries = append(entries, indexEntryRow{Collection: c.Name, Field: field, Value: v, Key: r.Key})
		}
	}
	if len(entries) == 0 {
		return nil
	}
	return tx.CreateInBatches(&entries, 200).Error
}
