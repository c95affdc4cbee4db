package census

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/yiruzz/topdowndp/geotree"
	"github.com/yiruzz/topdowndp/microdata"
)

// ReadRecords loads a raw record stream from a CSV file at path, resolving
// geoColumns and queryColumns against the file's header row. Column order
// in the file is irrelevant; the returned geotree.Record fields follow the
// order geoColumns/queryColumns declare, which is what geotree.Build and
// basis.IndexOf expect.
func ReadRecords(path string, geoColumns, queryColumns []string) ([]geotree.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("census: opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("census: reading header: %w", err)
	}

	geoIdx, err := resolveColumns(header, geoColumns)
	if err != nil {
		return nil, err
	}
	queryIdx, err := resolveColumns(header, queryColumns)
	if err != nil {
		return nil, err
	}

	var records []geotree.Record
	rowIdx := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("census: reading row %d: %w", rowIdx, err)
		}
		if len(row) != len(header) {
			return nil, errRowWidth(rowIdx, len(header), len(row))
		}

		rec := geotree.Record{
			GeoValues:   make([]string, len(geoIdx)),
			QueryValues: make([]string, len(queryIdx)),
		}
		for i, col := range geoIdx {
			v := row[col]
			if v == "" {
				return nil, errMissingValue(rowIdx, geoColumns[i])
			}
			rec.GeoValues[i] = v
		}
		for i, col := range queryIdx {
			v := row[col]
			if v == "" {
				return nil, errMissingValue(rowIdx, queryColumns[i])
			}
			rec.QueryValues[i] = v
		}
		records = append(records, rec)
		rowIdx++
	}
	return records, nil
}

// WriteTable writes table's rows to a CSV file at path: geographic columns
// followed by query columns, one row per synthetic individual, matching
// Table.GeoAttrs/Table.QueryAttrs order.
func WriteTable(path string, table *microdata.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("census: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append(append([]string(nil), table.GeoAttrs...), table.QueryAttrs...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("census: writing header: %w", err)
	}

	for _, row := range table.Rows {
		record := append(append([]string(nil), row.Geo...), row.Query...)
		if err := w.Write(record); err != nil {
			return fmt.Errorf("census: writing row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("census: flushing %s: %w", path, err)
	}
	return nil
}

func resolveColumns(header, names []string) ([]int, error) {
	lookup := make(map[string]int, len(header))
	for i, h := range header {
		lookup[h] = i
	}
	idx := make([]int, len(names))
	for i, name := range names {
		col, ok := lookup[name]
		if !ok {
			return nil, errMissingColumn(name)
		}
		idx[i] = col
	}
	return idx, nil
}
