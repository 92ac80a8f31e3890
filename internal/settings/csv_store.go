package settings

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// NewCSVStore creates a memory store seeded from a CSV file
//
// CSV Format: setting,value
// Example:
//
//	setting,value
//	allowed_postcodes_lsoa,Southwark;Lambeth
//	specific_allowed_postcodes,SE1 7QD
//	specific_allowed_postcodes,SE1 7QA
//
// Values are ';'-separated and rows for the same setting accumulate.
// A row with an empty value cell configures the setting as an empty list.
// Settings without any row stay absent. Lines starting with '#' are ignored.
func NewCSVStore(filePath string) (*MemoryStore, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	store := NewMemoryStore()

	for i, record := range records {
		// Skip header row
		if i == 0 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "setting") {
			continue
		}

		// Skip malformed rows and unknown settings instead of failing
		if len(record) != 2 {
			continue
		}
		key := strings.TrimSpace(record[0])
		if !ValidKey(key) {
			continue
		}

		store.data[key] = append(cloneValues(store.data[key]), splitValues(record[1])...)
	}

	return store, nil
}

// splitValues splits a ';'-separated cell, dropping blank entries
func splitValues(cell string) []string {
	values := []string{}
	for _, part := range strings.Split(cell, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		values = append(values, part)
	}
	return values
}
