// Command identify classifies a local Excel workbook and prints the parsed
// records without touching the database.
// Usage: go run ./cmd/identify [-type balance_sheet] [-format json|csv] [-out dir] file.xlsx
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"finsight/internal/classifier"
	"finsight/internal/csvexport"
	"finsight/internal/domain"
	"finsight/internal/extractor"
	"finsight/internal/workbook"
)

type output struct {
	File   string              `json:"file"`
	Detect *classifier.Result  `json:"detected"`
	Result *domain.ParseResult `json:"result,omitempty"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	forced := flag.String("type", "", "parse as this document type instead of the detected one")
	format := flag.String("format", "json", "output format: json or csv")
	outDir := flag.String("out", "", "write csv output into this directory instead of stdout")
	flag.Parse()

	if flag.NArg() != 1 {
		return errors.New("usage: identify [-type T] [-format json|csv] [-out dir] file.xlsx")
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read workbook: %w", err)
	}
	wb, err := workbook.Open(data)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	detected := classifier.IdentifyWorkbook(wb)
	log.Printf("%s: detected %s (%s) on sheet %q", path, detected.Type, detected.Label, detected.Sheet)

	docType := detected.Type
	if *forced != "" {
		t, ok := domain.ParseDocumentType(*forced)
		if !ok {
			return fmt.Errorf("-type %q: %w", *forced, domain.ErrInvalidDocType)
		}
		docType = t
	}

	out := output{File: filepath.Base(path), Detect: detected}
	if docType != domain.DocumentTypeUnknown {
		res, perr := extractor.New(nil).Parse(docType, wb)
		if perr != nil {
			return fmt.Errorf("parse %s: %w", docType, perr)
		}
		out.Result = res
		if res.FallbackPeriods > 0 {
			log.Printf("%d period(s) defaulted to the current month", res.FallbackPeriods)
		}
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "csv":
		if out.Result == nil {
			return detected.UnknownError()
		}
		return writeCSV(out.Result, path, *outDir)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

// createFile opens the csv output file.
var createFile = func(name string) (io.WriteCloser, error) { return os.Create(name) }

func writeCSV(res *domain.ParseResult, path, outDir string) (err error) {
	if outDir == "" {
		return writeRecords(os.Stdout, res)
	}

	outPath := filepath.Join(outDir, csvexport.BuildFilename(filepath.Base(path), res.Type))
	f, err := createFile(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()

	if _, err := f.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	log.Printf("writing %s", outPath)
	return writeRecords(f, res)
}

func writeRecords(w io.Writer, res *domain.ParseResult) error {
	cw := csvexport.NewWriter(w)
	if err := cw.WriteResult(res); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
