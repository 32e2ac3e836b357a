package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scythe504/imposter-backend/internal"
	"github.com/sirupsen/logrus"
)

// ReadCsvFile loads a word catalog from a `word,category` CSV file on disk.
func ReadCsvFile(filePath string) ([]internal.WordEntry, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open word file %s: %w", filePath, err)
	}
	defer f.Close()

	return ReadWordsCSV(f)
}

// ReadWordsCSV parses `word,category` records. A header row whose first
// column is "word" is skipped, as are blank or short records.
func ReadWordsCSV(r io.Reader) ([]internal.WordEntry, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse word csv: %w", err)
	}

	var words []internal.WordEntry

	for i, record := range records {
		if i == 0 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "word") {
			continue
		}
		if len(record) < 2 {
			logrus.WithField("component", "words").Debugf("[ReadWordsCSV] skipping invalid record: %v", record)
			continue
		}

		word := strings.TrimSpace(record[0])
		category := strings.TrimSpace(record[1])
		if word == "" || category == "" {
			logrus.WithField("component", "words").Debugf("[ReadWordsCSV] skipping blank record: %v", record)
			continue
		}

		words = append(words, internal.WordEntry{
			Word:     word,
			Category: category,
		})
	}

	return words, nil
}
