package goquery

import (
	"bytes"
	"regexp"
	"strings"

	nport "github.com/ChipDale729/nport-viewer"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Ensure Extractor implements nport.Extractor at compile time.
var _ nport.Extractor = (*Extractor)(nil)

// Extractor extracts holdings from filing HTML.
//
// Filers publish Part C schedules with no shared markup convention, so
// extraction is heuristic: any table whose header row mentions a known
// holdings keyword is scanned, its columns are mapped by label substrings,
// and its rows are normalized and filtered. The keyword vocabularies are
// lookup tables so new filer naming conventions can be added without
// touching the extraction logic.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// headerKeywords marks a row as a candidate header when any of them
// appears in the row's joined, case-folded cell text.
var headerKeywords = []string{
	"cusip", "title", "name", "security", "issuer",
	"balance", "shares", "units", "par value", "quantity", "par",
	"value", "val usd", "valusd", "market value", "fair value",
}

// fieldKeywords maps each canonical output field to the label substrings
// that identify its column.
var fieldKeywords = map[string][]string{
	"cusip":   {"cusip"},
	"name":    {"title", "name", "security", "issuer", "investment", "description"},
	"balance": {"balance", "shares", "units", "par value", "quantity", "par"},
	"value":   {"value", "val usd", "valusd", "market value", "fair value"},
}

// Cell text arrives with non-breaking spaces, so the whitespace classes
// include the Unicode space separators that plain \s misses.
var (
	whitespaceRE = regexp.MustCompile(`[\s\p{Zs}]+`)
	moneyRE      = regexp.MustCompile(`[,$\s\p{Zs}]+`)
	footnoteRE   = regexp.MustCompile(`(?i)[\s\p{Zs}]*\((?:a|b|c|d|e|f|g)\)[\s\p{Zs}]*$`)
)

// Extract scans every table in body and returns the holdings rows in
// document order with duplicates removed.
func (e *Extractor) Extract(body []byte) ([]nport.Holding, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nport.Errorf(nport.EINVALID, "failed to parse HTML: %v", err)
	}

	type rowKey struct {
		name, balance, value string
	}
	seen := make(map[rowKey]bool)
	var holdings []nport.Holding

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		labels, header := headerRow(table)
		if header == nil {
			return
		}

		cols, ok := mapColumns(labels)
		if !ok {
			return
		}

		seenHeader := false
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if !seenHeader {
				if len(row.Nodes) > 0 && row.Nodes[0] == header {
					seenHeader = true
				}
				return
			}

			cells := dataCells(row)
			if cells == nil {
				return
			}

			cell := func(idx int) string {
				if idx < 0 || idx >= len(cells) {
					return ""
				}
				return cells[idx]
			}

			name := cleanName(cell(cols.name))
			cusip := cell(cols.cusip)
			balance := cleanNum(cell(cols.balance))
			value := cleanNum(cell(cols.value))

			if (name == "" && cusip == "") || isTotalRow(name) {
				return
			}

			key := rowKey{name, balance, value}
			if seen[key] {
				return
			}
			seen[key] = true

			holdings = append(holdings, nport.Holding{
				CUSIP:    cusip,
				Name:     name,
				Balance:  balance,
				ValueUSD: value,
			})
		})
	})

	return holdings, nil
}

// headerRow finds the header row of a table: the first row whose joined
// cell text mentions a holdings keyword. Rows inside thead are scanned
// first, then every row in document order. The row's node identity is
// retained so data iteration can start strictly after it.
func headerRow(table *goquery.Selection) ([]string, *html.Node) {
	var labels []string
	var node *html.Node

	scan := func(_ int, row *goquery.Selection) bool {
		cells := rowLabels(row)
		joined := strings.ToLower(strings.Join(cells, " "))
		for _, kw := range headerKeywords {
			if strings.Contains(joined, kw) {
				labels = cells
				node = row.Nodes[0]
				return false
			}
		}
		return true
	}

	table.Find("thead tr").EachWithBreak(scan)
	if node == nil {
		table.Find("tr").EachWithBreak(scan)
	}
	return labels, node
}

// rowLabels returns the normalized text of the row's direct th/td children.
func rowLabels(row *goquery.Selection) []string {
	var labels []string
	row.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
		labels = append(labels, cleanText(cell.Text()))
	})
	return labels
}

// columnMap holds resolved column indices; -1 marks an unmapped field.
type columnMap struct {
	cusip   int
	name    int
	balance int
	value   int
}

// mapColumns resolves header labels to canonical fields. The first label
// containing a field keyword wins. An unlabeled first column is assumed
// to carry the security name. A table mapping neither balance nor value
// is not a holdings table.
func mapColumns(labels []string) (columnMap, bool) {
	low := make([]string, len(labels))
	for i, lbl := range labels {
		low[i] = strings.ToLower(lbl)
	}

	find := func(alts []string) int {
		for i, label := range low {
			for _, alt := range alts {
				if strings.Contains(label, alt) {
					return i
				}
			}
		}
		return -1
	}

	cols := columnMap{
		cusip:   find(fieldKeywords["cusip"]),
		name:    find(fieldKeywords["name"]),
		balance: find(fieldKeywords["balance"]),
		value:   find(fieldKeywords["value"]),
	}

	if cols.name < 0 {
		cols.name = 0
	}
	if cols.balance < 0 && cols.value < 0 {
		return columnMap{}, false
	}
	return cols, true
}

// dataCells returns the normalized text of the row's direct td children,
// or nil for rows with no data cells or only blank ones.
func dataCells(row *goquery.Selection) []string {
	tds := row.ChildrenFiltered("td")
	if tds.Length() == 0 {
		return nil
	}

	cells := make([]string, 0, tds.Length())
	blank := true
	tds.Each(func(_ int, td *goquery.Selection) {
		text := cleanText(td.Text())
		if text != "" {
			blank = false
		}
		cells = append(cells, text)
	})
	if blank {
		return nil
	}
	return cells
}

// cleanText collapses whitespace runs to single spaces and trims the ends.
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// cleanName normalizes text and removes a trailing footnote marker like "(a)".
func cleanName(s string) string {
	return footnoteRE.ReplaceAllString(cleanText(s), "")
}

// cleanNum removes currency formatting and rewrites a parenthesized value
// to a leading minus, e.g. "(123)" to "-123". The result stays a string.
func cleanNum(s string) string {
	s = cleanText(s)
	if s == "" {
		return ""
	}
	s = moneyRE.ReplaceAllString(s, "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}
	return s
}

// isTotalRow detects subtotal and total lines, e.g. "Total Common Stocks
// (Cost $...)". The match is broad: a holding whose name starts with
// "Total" is dropped too.
func isTotalRow(name string) bool {
	if name == "" {
		return false
	}
	n := strings.ToLower(name)
	return strings.HasPrefix(n, "total") || strings.Contains(n, "total ") || strings.Contains(n, "(cost")
}
