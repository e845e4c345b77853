// Package seed turns per-table CSV exports into SQL INSERT scripts and merges
// them in foreign-key dependency order.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// TableOrder lists tables so that every referenced row is inserted first.
var TableOrder = []string{
	"address",
	"lab",
	"department",
	"medication",
	"person",
	"patient",
	"medical_staff",
	"nurse",
	"research_doctor",
	"attending_doctor",
	"treatment",
	"staff_shift",
	"treatment_medication",
}

// FileSuffix is the name part stripped from a CSV file to get its table, as
// in "treatment_medication_data.csv".
const FileSuffix = "_data"

var ErrNoTable = errors.New("file name does not encode a table name")

// TableName derives the table from a CSV file name by dropping the last
// underscore-separated part.
func TableName(filename string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	i := strings.LastIndex(base, "_")
	if i <= 0 {
		return "", fmt.Errorf("%w: %s", ErrNoTable, filename)
	}
	return base[:i], nil
}

// ConvertCSV writes one INSERT statement per CSV record. The header row names
// the columns. Every value is written as a quoted string literal so codes
// keep their leading zeros.
func ConvertCSV(r io.Reader, table string, w io.Writer) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read header: %w", err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}
	columns := strings.Join(header, ", ")

	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("failed to read row %d: %w", rows+1, err)
		}

		values := make([]string, len(record))
		for i, v := range record {
			values[i] = Quote(v)
		}
		if _, err := fmt.Fprintf(w, "INSERT INTO %s (%s) VALUES (%s);\n", table, columns, strings.Join(values, ", ")); err != nil {
			return rows, fmt.Errorf("failed to write insert: %w", err)
		}
		rows++
	}
	return rows, nil
}

// Quote renders v as a SQL string literal.
func Quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// ConvertDir converts every *.csv in dataDir into a same-named .sql file in
// outDir and returns the written paths sorted by name.
func ConvertDir(dataDir, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list csv files: %w", err)
	}
	sort.Strings(matches)

	written := make([]string, 0, len(matches))
	for _, csvPath := range matches {
		table, err := TableName(csvPath)
		if err != nil {
			log.Warn().Err(err).Msg("skipping csv file")
			continue
		}

		base := strings.TrimSuffix(filepath.Base(csvPath), filepath.Ext(csvPath))
		sqlPath := filepath.Join(outDir, base+".sql")
		rows, err := convertFile(csvPath, table, sqlPath)
		if err != nil {
			return written, err
		}

		log.Info().Str("csv", csvPath).Str("sql", sqlPath).Int("rows", rows).Msg("converted csv")
		written = append(written, sqlPath)
	}
	return written, nil
}

func convertFile(csvPath, table, sqlPath string) (int, error) {
	in, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", csvPath, err)
	}
	defer in.Close()

	out, err := os.Create(sqlPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", sqlPath, err)
	}

	rows, err := ConvertCSV(in, table, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", sqlPath, cerr)
	}
	if err != nil {
		return rows, fmt.Errorf("failed to convert %s: %w", csvPath, err)
	}
	return rows, nil
}

// Merge concatenates <table>_data.sql files from sqlDir in TableOrder,
// wrapping each in start and end markers. Missing files are skipped and
// returned.
func Merge(sqlDir string, w io.Writer) ([]string, error) {
	var skipped []string
	for _, table := range TableOrder {
		filename := table + FileSuffix + ".sql"
		content, err := os.ReadFile(filepath.Join(sqlDir, filename))
		if errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("file", filename).Msg("skipped, not found")
			skipped = append(skipped, filename)
			continue
		}
		if err != nil {
			return skipped, fmt.Errorf("failed to read %s: %w", filename, err)
		}

		if _, err := fmt.Fprintf(w, "-- Start of: %s\n%s\n-- End of: %s\n\n", filename, content, filename); err != nil {
			return skipped, fmt.Errorf("failed to write %s: %w", filename, err)
		}
	}
	return skipped, nil
}

// Apply executes the statements of script in a single transaction. Lines
// starting with "--" are ignored.
func Apply(ctx context.Context, db *sqlx.DB, script string) (int, error) {
	statements := Statements(script)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to roll back seed transaction")
			}
			return i, fmt.Errorf("statement %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(statements), nil
}

// Statements splits a generated script into statements. A statement ends at
// the first line whose last non-blank character is ';'.
func Statements(script string) []string {
	var (
		statements []string
		current    strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if current.Len() == 0 && (trimmed == "" || strings.HasPrefix(trimmed, "--")) {
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
		if strings.HasSuffix(trimmed, ";") {
			statements = append(statements, strings.TrimSuffix(strings.TrimSpace(current.String()), ";"))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		statements = append(statements, s)
	}
	return statements
}
