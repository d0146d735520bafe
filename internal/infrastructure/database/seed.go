package database

import (
	"context"
	"encoding/json"
	"log"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/enum"
	"github.com/barberoil/fuelpos/internal/domain/schema"
	"github.com/barberoil/fuelpos/internal/infrastructure/store"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DefaultProducts is the fuel catalog of a fresh install. Prices start at
// zero and are set by the admin.
func DefaultProducts() []entity.Product {
	return []entity.Product{
		{ID: "REG87", Name: "Regular Gasoline 87 Octane (No Ethanol)", ShortName: "Reg 87 No-Eth", PricePerGallon: decimal.Zero},
		{ID: "PLUS90", Name: "Unleaded Plus 90 Octane (No Ethanol)", ShortName: "Plus 90 No-Eth", PricePerGallon: decimal.Zero},
		{ID: "ULSD", Name: "Clear ULSD", ShortName: "Clear ULSD", PricePerGallon: decimal.Zero},
		{ID: "REGETH", Name: "Unleaded Regular (With Ethanol)", ShortName: "Reg w/ Ethanol", PricePerGallon: decimal.Zero},
		{ID: "DYED", Name: "Dyed Diesel (Off-Road Use Only)", ShortName: "Dyed Diesel", PricePerGallon: decimal.Zero, Taxable: true},
		{ID: "KERO", Name: "Kerosene", ShortName: "Kerosene", PricePerGallon: decimal.Zero},
	}
}

// DefaultUsers are the accounts of a fresh install.
func DefaultUsers() []entity.User {
	return []entity.User{
		{ID: "admin", Name: "Admin", PIN: "1234", Role: enum.UserRoleAdmin},
		{ID: "driver1", Name: "Driver 1", PIN: "1111", Role: enum.UserRoleDriver},
	}
}

// SeedDefaultData fills each reference collection with its defaults when,
// and only when, that collection is empty. A collection holding any record
// is left alone, so edits made after the first run are never overwritten.
func SeedDefaultData(ctx context.Context, st *store.Store, business entity.BusinessProfile) error {
	products := DefaultProducts()
	if err := seedCollection(ctx, st, schema.Products, toRecords(products)); err != nil {
		return err
	}

	users := DefaultUsers()
	if err := seedCollection(ctx, st, schema.Users, toRecords(users)); err != nil {
		return err
	}

	value, err := json.Marshal(business)
	if err != nil {
		return apperror.NewTransactionFailedError("seed settings", err)
	}
	settings := []entity.Setting{{Key: entity.SettingBusiness, Value: value}}
	return seedCollection(ctx, st, schema.Settings, toRecords(settings))
}

func seedCollection(ctx context.Context, st *store.Store, collection string, records []any) error {
	n, err := st.Count(ctx, collection)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Printf("Seeding %d default %s...", len(records), collection)
	return st.PutAll(ctx, collection, records)
}

func toRecords[T any](items []T) []any {
	records := make([]any, len(items))
	for i := range items {
		records[i] = items[i]
	}
	return records
}
