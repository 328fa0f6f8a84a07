// Command lead-import seeds the leads table from a CSV file. The expected
// columns are name, email, zipcode, property_type, status and inquiry_date
// (YYYY-MM-DD), with a header row.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"lead_dashboard_backend/internal/leads/repository"
	"lead_dashboard_backend/platform/config"
	"lead_dashboard_backend/platform/db"
	"lead_dashboard_backend/platform/logger"
)

const dateLayout = "2006-01-02"

var expectedHeader = []string{"name", "email", "zipcode", "property_type", "status", "inquiry_date"}

func main() {
	filePath := flag.String("file", "", "path to the CSV file to import")
	flag.Parse()
	if *filePath == "" {
		panic("usage: lead-import -file leads.csv")
	}

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting lead import", "file", *filePath)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	file, err := os.Open(*filePath)
	if err != nil {
		log.Error("failed to open csv file", "error", err)
		panic("failed to open csv file: " + err.Error())
	}
	defer file.Close()

	repo := repository.New(pool)
	imported, skipped := importLeads(ctx, log, repo, csv.NewReader(file))
	log.Info("lead import complete", "imported", imported, "skipped", skipped)
}

func importLeads(ctx context.Context, log *logger.Logger, repo repository.LeadsRepository, reader *csv.Reader) (imported, skipped int) {
	header, err := reader.Read()
	if err != nil {
		log.Error("failed to read csv header", "error", err)
		panic("failed to read csv header: " + err.Error())
	}
	if !headerMatches(header) {
		log.Error("unexpected csv header", "header", strings.Join(header, ","))
		panic("unexpected csv header, want " + strings.Join(expectedHeader, ","))
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return imported, skipped
		}
		line++
		if err != nil {
			log.Warn("skipping malformed csv line", "line", line, "error", err)
			skipped++
			continue
		}

		params, err := parseRecord(record)
		if err != nil {
			log.Warn("skipping invalid lead", "line", line, "error", err)
			skipped++
			continue
		}

		if _, err := repo.Insert(ctx, params); err != nil {
			log.Error("failed to insert lead", "line", line, "email", params.Email, "error", err)
			skipped++
			continue
		}
		imported++
	}
}

func headerMatches(header []string) bool {
	if len(header) != len(expectedHeader) {
		return false
	}
	for i, column := range expectedHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != column {
			return false
		}
	}
	return true
}

func parseRecord(record []string) (repository.CreateLeadParams, error) {
	if len(record) != len(expectedHeader) {
		return repository.CreateLeadParams{}, errFieldCount
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
		if record[i] == "" {
			return repository.CreateLeadParams{}, errEmptyField
		}
	}

	inquiryDate, err := time.Parse(dateLayout, record[5])
	if err != nil {
		return repository.CreateLeadParams{}, err
	}

	return repository.CreateLeadParams{
		Name:         record[0],
		Email:        record[1],
		Zipcode:      record[2],
		PropertyType: record[3],
		Status:       record[4],
		InquiryDate:  inquiryDate,
	}, nil
}

var (
	errFieldCount = errors.New("wrong number of fields")
	errEmptyField = errors.New("empty field")
)
