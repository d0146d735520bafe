package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/barberoil/fuelpos/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// customerField identifies a Customer field an import column can map to.
type customerField int

const (
	fieldAccountNumber customerField = iota
	fieldName
	fieldAddress
	fieldCity
	fieldState
	fieldZip
	fieldPhone
	fieldEmail
	fieldTaxExempt
	fieldNotes
)

// customerHeaderAliases maps a normalised header to the field it fills.
var customerHeaderAliases = map[string]customerField{
	"accountnumber": fieldAccountNumber,
	"account":       fieldAccountNumber,
	"acctno":        fieldAccountNumber,
	"id":            fieldAccountNumber,
	"name":          fieldName,
	"customername":  fieldName,
	"customer":      fieldName,
	"address":       fieldAddress,
	"street":        fieldAddress,
	"city":          fieldCity,
	"state":         fieldState,
	"zip":           fieldZip,
	"zipcode":       fieldZip,
	"postalcode":    fieldZip,
	"phone":         fieldPhone,
	"telephone":     fieldPhone,
	"tel":           fieldPhone,
	"email":         fieldEmail,
	"emailaddress":  fieldEmail,
	"taxexempt":     fieldTaxExempt,
	"exempt":        fieldTaxExempt,
	"notes":         fieldNotes,
}

// ImportResult contains the result of a customer import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NormalizeHeader lowercases a column header and strips everything that is
// not a letter or digit, so "Account #", "account_number" and
// "AccountNumber" all compare equal.
func NormalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ImportCustomersCSV imports customers from CSV text whose first row is the
// header.
func (s *CustomerService) ImportCustomersCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid CSV file: " + err.Error())
	}
	return s.importRows(ctx, records)
}

// ImportCustomersXLSX imports customers from the first sheet of a workbook.
func (s *CustomerService) ImportCustomersXLSX(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid XLSX file: " + err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.NewBadRequestError("Unreadable sheet: " + err.Error())
	}
	return s.importRows(ctx, rows)
}

func (s *CustomerService) importRows(ctx context.Context, records [][]string) (*ImportResult, error) {
	if len(records) == 0 {
		return nil, apperror.NewBadRequestError("Import file is empty")
	}

	columns := make(map[customerField]int)
	for i, h := range records[0] {
		h = strings.TrimPrefix(h, "\ufeff")
		if field, ok := customerHeaderAliases[NormalizeHeader(h)]; ok {
			if _, seen := columns[field]; !seen {
				columns[field] = i
			}
		}
	}
	if _, ok := columns[fieldName]; !ok {
		return nil, apperror.NewBadRequestError("Import file has no name column")
	}

	result := &ImportResult{}
	var rowErrors []ImportRowError
	var customers []entity.Customer
	seenAccounts := make(map[string]int)

	for i, record := range records[1:] {
		rowNum := i + 2 // row 1 is the header
		if blankRow(record) {
			continue
		}
		result.TotalRows++

		value := func(f customerField) string {
			idx, ok := columns[f]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		name := value(fieldName)
		if name == "" {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}

		taxExempt, ok := parseExemptFlag(value(fieldTaxExempt))
		if !ok {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "taxExempt",
				Message: fmt.Sprintf("Tax exempt must be yes or no, got '%s'", value(fieldTaxExempt)),
			})
			continue
		}

		accountNumber := value(fieldAccountNumber)
		if accountNumber == "" {
			accountNumber = generateImportAccountNumber()
		}
		if prevRow, exists := seenAccounts[accountNumber]; exists {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "accountNumber",
				Message: fmt.Sprintf("Duplicate account number '%s' (same as row %d)", accountNumber, prevRow),
			})
			continue
		}
		seenAccounts[accountNumber] = rowNum

		customers = append(customers, entity.Customer{
			AccountNumber: accountNumber,
			Name:          name,
			Address:       value(fieldAddress),
			City:          value(fieldCity),
			State:         value(fieldState),
			Zip:           value(fieldZip),
			Phone:         value(fieldPhone),
			Email:         value(fieldEmail),
			TaxExempt:     taxExempt,
			Notes:         value(fieldNotes),
		})
	}

	if len(customers) > 0 {
		if err := s.customerRepo.SaveAll(ctx, customers); err != nil {
			return nil, err
		}
	}

	result.Successful = len(customers)
	result.Failed = len(rowErrors)
	result.Errors = rowErrors
	return result, nil
}

// parseExemptFlag accepts yes/true as exempt and an empty cell or no/false
// as not exempt. Anything else is reported rather than guessed.
func parseExemptFlag(v string) (exempt, ok bool) {
	switch strings.ToLower(v) {
	case "yes", "true", "y", "1":
		return true, true
	case "", "no", "false", "n", "0":
		return false, true
	}
	return false, false
}

func generateImportAccountNumber() string {
	return utils.ShortCode("IMPORT-", 6)
}

func blankRow(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
