// Package csvio exports production entries as CSV and reads CSV files back.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// Columns is the header row of an export, matching the table columns.
var Columns = []string{
	"id", "order_no", "item_name", "operator_id", "machine_id",
	"material_picked", "produced_qty", "wasted_qty", "wastage_reason",
	"status", "entered_by", "entry_date",
}

// WriteEntries writes a header row followed by one row per entry.
func WriteEntries(w io.Writer, entries []models.Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.OrderNo,
			e.ItemName,
			e.OperatorID,
			e.MachineID,
			formatQuantity(e.MaterialPicked),
			formatQuantity(e.ProducedQty),
			formatQuantity(e.WastedQty),
			e.WastageReason,
			string(e.Status),
			e.EnteredBy,
			e.EntryDate.UTC().Format(time.RFC3339Nano),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", e.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadRecords parses CSV with a header row into one map per data row keyed by
// the trimmed header names. Short rows read missing cells as empty; cells past
// the header must be blank.
func ReadRecords(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	records := make([]map[string]string, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		for _, extra := range row[min(len(row), len(header)):] {
			if strings.TrimSpace(extra) != "" {
				return nil, fmt.Errorf("read csv line %d: %d fields, header has %d", line, len(row), len(header))
			}
		}

		record := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// ParseEntries reads a file produced by WriteEntries. Blank quantities read
// as zero.
func ParseEntries(r io.Reader) ([]models.Entry, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(records))
	for i, rec := range records {
		entry, err := parseEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Payload converts a parsed row into a submission payload.
func Payload(e models.Entry) models.EntryPayload {
	picked, produced, wasted := e.MaterialPicked, e.ProducedQty, e.WastedQty
	return models.EntryPayload{
		OrderNo:        e.OrderNo,
		ItemName:       e.ItemName,
		OperatorID:     e.OperatorID,
		MachineID:      e.MachineID,
		MaterialPicked: &picked,
		ProducedQty:    &produced,
		WastedQty:      &wasted,
		WastageReason:  e.WastageReason,
		Status:         string(e.Status),
		EnteredBy:      e.EnteredBy,
	}
}

func parseEntry(rec map[string]string) (models.Entry, error) {
	entry := models.Entry{
		OrderNo:       rec["order_no"],
		ItemName:      rec["item_name"],
		OperatorID:    rec["operator_id"],
		MachineID:     rec["machine_id"],
		WastageReason: rec["wastage_reason"],
		Status:        models.EntryStatus(rec["status"]),
		EnteredBy:     rec["entered_by"],
	}

	if raw := strings.TrimSpace(rec["id"]); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.Entry{}, fmt.Errorf("parse id %q: %w", raw, err)
		}
		entry.ID = uint(id)
	}

	var err error
	if entry.MaterialPicked, err = parseQuantity(rec, "material_picked"); err != nil {
		return models.Entry{}, err
	}
	if entry.ProducedQty, err = parseQuantity(rec, "produced_qty"); err != nil {
		return models.Entry{}, err
	}
	if entry.WastedQty, err = parseQuantity(rec, "wasted_qty"); err != nil {
		return models.Entry{}, err
	}

	if raw := strings.TrimSpace(rec["entry_date"]); raw != "" {
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return models.Entry{}, fmt.Errorf("parse entry_date %q: %w", raw, err)
		}
		entry.EntryDate = at
	}

	return entry, nil
}

func parseQuantity(rec map[string]string, column string) (float64, error) {
	raw := strings.TrimSpace(rec[column])
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", column, raw, err)
	}
	return v, nil
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
