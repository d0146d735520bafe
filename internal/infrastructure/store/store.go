// Package store is a transactional document store over named collections,
// backed by any gorm dialect. Each record is kept as a JSON document keyed by
// the collection's key path; declared secondary indexes are materialised as
// index entries written in the same transaction as the record.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/barberoil/fuelpos/internal/domain/schema"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// timeIndexLayout is fixed width so indexed timestamps sort lexically.
const timeIndexLayout = "2006-01-02T15:04:05.000000000Z"

// Store is the handle every component receives explicitly; there is no
// package level instance.
type Store struct {
	db     *gorm.DB
	schema schema.Schema
}

// Open applies sc to db and returns a ready store. A nil or unreachable
// database and an invalid schema fail with StoreUnavailable.
func Open(ctx context.Context, db *gorm.DB, sc schema.Schema) (*Store, error) {
	if db == nil {
		return nil, apperror.NewStoreUnavailableError(errors.New("no database"))
	}
	if err := sc.Validate(); err != nil {
		return nil, apperror.NewStoreUnavailableError(err)
	}

	s := &Store{db: db, schema: sc}
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Schema returns the descriptor the store was opened with.
func (s *Store) Schema() schema.Schema {
	return s.schema
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get loads the record stored under key into dest. It reports false when no
// such record exists.
func (s *Store) Get(ctx context.Context, collection, key string, dest any) (bool, error) {
	if _, err := s.collection(collection); err != nil {
		return false, err
	}

	var row recordRow
	err := s.db.WithContext(ctx).
		First(&row, "collection = ? AND record_key = ?", collection, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewTransactionFailedError("get "+collection, err)
	}

	if err := json.Unmarshal(row.Data, dest); err != nil {
		return false, apperror.NewTransactionFailedError("decode "+collection, err)
	}
	return true, nil
}

// Exists reports whether a record is stored under key.
func (s *Store) Exists(ctx context.Context, collection, key string) (bool, error) {
	if _, err := s.collection(collection); err != nil {
		return false, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&recordRow{}).
		Where("collection = ? AND record_key = ?", collection, key).
		Count(&count).Error
	if err != nil {
		return false, apperror.NewTransactionFailedError("get "+collection, err)
	}
	return count > 0, nil
}

// GetAll decodes every record of the collection into dest, which must be a
// pointer to a slice. Records come back in key order.
func (s *Store) GetAll(ctx context.Context, collection string, dest any) error {
	if _, err := s.collection(collection); err != nil {
		return err
	}

	var rows []recordRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("record_key ASC").
		Find(&rows).Error
	if err != nil {
		return apperror.NewTransactionFailedError("get all "+collection, err)
	}
	return decodeRows(collection, rows, dest)
}

// Count returns the number of records in the collection.
func (s *Store) Count(ctx context.Context, collection string) (int64, error) {
	if _, err := s.collection(collection); err != nil {
		return 0, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&recordRow{}).
		Where("collection = ?", collection).
		Count(&count).Error
	if err != nil {
		return 0, apperror.NewTransactionFailedError("count "+collection, err)
	}
	return count, nil
}

// Put inserts record, or replaces the record stored under the same key.
// The last write wins.
func (s *Store) Put(ctx context.Context, collection string, record any) error {
	return s.PutAll(ctx, collection, []any{record})
}

// PutAll upserts all records in one transaction; either every record is
// written or none is.
func (s *Store) PutAll(ctx context.Context, collection string, records []any) error {
	c, err := s.collection(collection)
	if err != nil {
		return err
	}

	docs := make([]document, 0, len(records))
	for _, r := range records {
		doc, err := newDocument(c, r)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, doc := range docs {
			if err := writeDocument(tx, c, doc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperror.NewTransactionFailedError("put "+collection, err)
	}
	return nil
}

// Insert writes record only if its key is not yet taken. It fails with a
// Conflict error otherwise, leaving the stored record untouched.
func (s *Store) Insert(ctx context.Context, collection string, record any) error {
	c, err := s.collection(collection)
	if err != nil {
		return err
	}
	doc, err := newDocument(c, record)
	if err != nil {
		return err
	}

	var conflict bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&recordRow{}).
			Where("collection = ? AND record_key = ?", collection, doc.key).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			conflict = true
			return nil
		}
		return writeDocument(tx, c, doc)
	})
	if err != nil {
		return apperror.NewTransactionFailedError("insert "+collection, err)
	}
	if conflict {
		return apperror.NewConflictError(fmt.Sprintf("%s record %q already exists", collection, doc.key))
	}
	return nil
}

// Delete removes the record stored under key. Deleting a missing key is a
// no-op.
func (s *Store) Delete(ctx context.Context, collection, key string) error {
	if _, err := s.collection(collection); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection = ? AND record_key = ?", collection, key).
			Delete(&indexEntryRow{}).Error; err != nil {
			return err
		}
		return tx.Where("collection = ? AND record_key = ?", collection, key).
			Delete(&recordRow{}).Error
	})
	if err != nil {
		return apperror.NewTransactionFailedError("delete "+collection, err)
	}
	return nil
}

// Clear removes every record of the collection atomically.
func (s *Store) Clear(ctx context.Context, collection string) error {
	if _, err := s.collection(collection); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection = ?", collection).Delete(&indexEntryRow{}).Error; err != nil {
			return err
		}
		return tx.Where("collection = ?", collection).Delete(&recordRow{}).Error
	})
	if err != nil {
		return apperror.NewTransactionFailedError("clear "+collection, err)
	}
	return nil
}

// Find decodes into dest every record whose indexed field equals value.
func (s *Store) Find(ctx context.Context, collection, index, value string, dest any) error {
	if err := s.requireIndex(collection, index); err != nil {
		return err
	}

	var rows []recordRow
	err := s.indexQuery(ctx, collection, index).
		Where("e.index_value = ?", normalizeString(value)).
		Find(&rows).Error
	if err != nil {
		return apperror.NewTransactionFailedError("find "+collection, err)
	}
	return decodeRows(collection, rows, dest)
}

// FindRange decodes into dest every record whose indexed field lies in
// [from, to]. An empty bound is open. Values compare as strings, with
// RFC 3339 timestamps normalised to UTC first.
func (s *Store) FindRange(ctx context.Context, collection, index, from, to string, dest any) error {
	if err := s.requireIndex(collection, index); err != nil {
		return err
	}

	q := s.indexQuery(ctx, collection, index)
	if from != "" {
		q = q.Where("e.index_value >= ?", normalizeString(from))
	}
	if to != "" {
		q = q.Where("e.index_value <= ?", normalizeString(to))
	}

	var rows []recordRow
	if err := q.Find(&rows).Error; err != nil {
		return apperror.NewTransactionFailedError("find range "+collection, err)
	}
	return decodeRows(collection, rows, dest)
}

func (s *Store) indexQuery(ctx context.Context, collection, index string) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("store_records AS r").
		Select("r.*").
		Joins("JOIN store_index_entries AS e ON e.collection = r.collection AND e.record_key = r.record_key").
		Where("e.collection = ? AND e.field = ?", collection, index).
		Order("e.index_value ASC, r.record_key ASC")
}

func (s *Store) collection(name string) (schema.Collection, error) {
	c, ok := s.schema.Lookup(name)
	if !ok {
		return schema.Collection{}, apperror.NewFieldValidationError("collection", "unknown collection "+strconv.Quote(name))
	}
	return c, nil
}

func (s *Store) requireIndex(collection, index string) error {
	c, err := s.collection(collection)
	if err != nil {
		return err
	}
	if !c.HasIndex(index) {
		return apperror.NewFieldValidationError("index", fmt.Sprintf("collection %q has no index %q", collection, index))
	}
	return nil
}

// document is a record prepared for writing.
type document struct {
	key     string
	data    []byte
	entries map[string]string
}

func newDocument(c schema.Collection, record any) (document, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return document{}, apperror.NewFieldValidationError("record", "record is not serialisable: "+err.Error())
	}

	fields, err := decodeFields(data)
	if err != nil {
		return document{}, apperror.NewFieldValidationError("record", "record must be a JSON object")
	}

	key, ok := scalar(fields[c.KeyPath], false)
	if !ok || key == "" {
		return document{}, apperror.NewFieldValidationError(c.KeyPath, fmt.Sprintf("%s record has no %s", c.Name, c.KeyPath))
	}

	entries := make(map[string]string, len(c.Indexes))
	for _, idx := range c.Indexes {
		// records without the field are simply absent from that index
		if v, ok := scalar(fields[idx], true); ok {
			entries[idx] = v
		}
	}
	return document{key: key, data: data, entries: entries}, nil
}

func writeDocument(tx *gorm.DB, c schema.Collection, doc document) error {
	row := recordRow{
		Collection: c.Name,
		Key:        doc.key,
		Data:       datatypes.JSON(doc.data),
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}

	if err := tx.Where("collection = ? AND record_key = ?", c.Name, doc.key).
		Delete(&indexEntryRow{}).Error; err != nil {
		return err
	}
	if len(doc.entries) == 0 {
		return nil
	}

	fields := make([]string, 0, len(doc.entries))
	for f := range doc.entries {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	entries := make([]indexEntryRow, 0, len(fields))
	for _, f := range fields {
		entries = append(entries, indexEntryRow{
			Collection: c.Name,
			Field:      f,
			Value:      doc.entries[f],
			Key:        doc.key,
		})
	}
	return tx.Create(&entries).Error
}

func decodeFields(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("null record")
	}
	return fields, nil
}

// scalar renders a key or index value as a string. Objects, arrays and
// nulls have no scalar form.
func scalar(v any, normalize bool) (string, bool) {
	switch x := v.(type) {
	case string:
		if normalize {
			return normalizeString(x), true
		}
		return x, true
	case json.Number:
		return x.String(), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

func normalizeString(s string) string {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format(timeIndexLayout)
	}
	return s
}

func decodeRows(collection string, rows []recordRow, dest any) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(r.Data)
	}
	buf.WriteByte(']')

	if err := json.Unmarshal(buf.Bytes(), dest); err != nil {
		return apperror.NewTransactionFailedError("decode "+collection, err)
	}
	return nil
}
