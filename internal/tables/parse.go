package tables

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

//go:embed data/sat_water_table.txt data/superheated_water_table.txt
var embedded embed.FS

const (
	satColumns   = 8 // T P hf hg sf sg vf vg
	superColumns = 4 // T h s P
)

// Parse reads a saturation table and a superheated table and validates them.
func Parse(sat, super io.Reader) (*Tables, error) {
	satRows, err := readRows(sat, "saturation", satColumns)
	if err != nil {
		return nil, err
	}
	superRows, err := readRows(super, "superheated", superColumns)
	if err != nil {
		return nil, err
	}

	satSamples := make([]SatSample, len(satRows))
	for i, r := range satRows {
		satSamples[i] = SatSample{
			T: r[0], P: r[1] * BarToKPa,
			Hf: r[2], Hg: r[3],
			Sf: r[4], Sg: r[5],
			Vf: r[6], Vg: r[7],
		}
	}

	superSamples := make([]SuperSample, len(superRows))
	for i, r := range superRows {
		superSamples[i] = SuperSample{T: r[0], H: r[1], S: r[2], P: r[3] * BarToKPa}
	}

	return New(satSamples, superSamples)
}

// LoadFiles parses the two table files at the given paths.
func LoadFiles(satPath, superPath string) (*Tables, error) {
	satFile, err := os.Open(satPath)
	if err != nil {
		return nil, fmt.Errorf("open saturation table: %w", err)
	}
	defer satFile.Close()

	superFile, err := os.Open(superPath)
	if err != nil {
		return nil, fmt.Errorf("open superheated table: %w", err)
	}
	defer superFile.Close()

	return Parse(satFile, superFile)
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the tables compiled into the binary. The embedded data is
// validated by the package tests, so a failure here is a build defect.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := loadEmbedded()
		if err != nil {
			panic(fmt.Sprintf("tables: embedded data invalid: %v", err))
		}
		defaultTables = t
	})
	return defaultTables
}

func loadEmbedded() (*Tables, error) {
	sat, err := embedded.Open("data/sat_water_table.txt")
	if err != nil {
		return nil, err
	}
	defer sat.Close()
	super, err := embedded.Open("data/superheated_water_table.txt")
	if err != nil {
		return nil, err
	}
	defer super.Close()
	return Parse(sat, super)
}

// readRows scans whitespace separated numeric rows. Blank lines and lines
// starting with '#' are skipped, as is a leading non-numeric header line.
func readRows(r io.Reader, table string, columns int) ([][]float64, error) {
	var rows [][]float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(rows) == 0 && !numeric(fields[0]) {
			continue
		}
		if len(fields) != columns {
			return nil, &ParseError{Table: table, Line: line, Msg: fmt.Sprintf("expected %d columns, got %d", columns, len(fields))}
		}
		row := make([]float64, columns)
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Table: table, Line: line, Msg: fmt.Sprintf("column %d: %q is not a number", i+1, f)}
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s table: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, &ParseError{Table: table, Line: line, Msg: "no data rows"}
	}
	return rows, nil
}

func numeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
