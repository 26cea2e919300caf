package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
)

// Row is one line of the punch log, reduced to the columns the planner stores.
type Row struct {
	EmployeeNumber string
	EmployeeName   string
	Article        string
	MachineGroup   string
}

var (
	colEmployeeNumber = []string{"Anställningsnummer", "employee_number", "employee_no", "number"}
	colEmployeeName   = []string{"Namn", "employee_name", "name"}
	colArticle        = []string{"Artikelbenämning", "article", "article_name"}
	colMachineGroup   = []string{"Operationsbenämning", "machine_group", "operation"}
)

// ReadFile reads rows from a CSV, XLSX or HTML-table export, chosen by extension.
func ReadFile(path string) ([]Row, error) {
	var (
		table [][]string
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		table, err = readXLSX(path)
	case ".html", ".htm":
		table, err = readHTMLFile(path)
	case ".xls":
		// ERP "Excel" exports are usually HTML tables in disguise
		var raw []byte
		if raw, err = os.ReadFile(path); err == nil {
			if !looksLikeHTML(raw) {
				return nil, fmt.Errorf("%s: binary .xls is not supported, save as .xlsx or .csv", path)
			}
			table, err = readHTML(bytes.NewReader(raw))
		}
	default:
		var raw []byte
		if raw, err = os.ReadFile(path); err == nil {
			table, err = readCSV(raw)
		}
	}
	if err != nil {
		return nil, err
	}
	return toRows(table)
}

func readCSV(raw []byte) ([][]string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\uFEFF"))
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = sniffDelimiter(raw)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var out [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("csv: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// sniffDelimiter picks the most frequent of ; , and tab in the header line.
func sniffDelimiter(raw []byte) rune {
	head := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		head = raw[:i]
	}
	best, bestN := ',', bytes.Count(head, []byte(","))
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(head, []byte(string(d))); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

func readXLSX(path string) ([][]string, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()
	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	return x.GetRows(sheets[0])
}

func readHTMLFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readHTML(f)
}

func readHTML(r io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errors.New("html: no <table> found")
	}
	var out [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var rec []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			rec = append(rec, strings.TrimSpace(cell.Text()))
		})
		if len(rec) > 0 {
			out = append(out, rec)
		}
	})
	return out, nil
}

func looksLikeHTML(raw []byte) bool {
	raw = bytes.TrimPrefix(raw, []byte("\uFEFF"))
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '<'
}

// toRows maps the header row onto Row fields; unknown columns are ignored.
func toRows(table [][]string) ([]Row, error) {
	if len(table) == 0 {
		return nil, errors.New("empty sheet")
	}
	head := table[0]

	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\uFEFF") // BOM
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	hmap := map[string]int{}
	for i, h := range head {
		if _, dup := hmap[norm(h)]; !dup {
			hmap[norm(h)] = i
		}
	}
	findAny := func(keys []string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cNum := findAny(colEmployeeNumber)
	cName := findAny(colEmployeeName)
	cArt := findAny(colArticle)
	cGrp := findAny(colMachineGroup)
	if cNum == -1 && cName == -1 && cArt == -1 && cGrp == -1 {
		return nil, fmt.Errorf("no known columns in header %v", head)
	}

	out := make([]Row, 0, len(table)-1)
	for _, rec := range table[1:] {
		// guard against short rows
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		out = append(out, Row{
			EmployeeNumber: get(cNum),
			EmployeeName:   get(cName),
			Article:        get(cArt),
			MachineGroup:   get(cGrp),
		})
	}
	return out, nil
}
