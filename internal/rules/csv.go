package rules

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ledgermap-dev/ledgermap/internal/model"
)

// Kind selects which rule tier a CSV file feeds.
type Kind string

const (
	KindKeyword Kind = "keyword"
	KindGroup   Kind = "group"
)

const (
	ruleNumFields = 6
	colCondition  = 0
	colH1         = 1
	colH2         = 2
	colH3         = 3
	colH4         = 4
	colH5         = 5
)

var ruleHeader = []string{"Condition Value", "H1", "H2", "H3", "H4", "H5"}

// ShapeError reports a rule file whose header or rows do not fit the
// expected columns. The whole file is rejected; no partial import happens.
type ShapeError struct {
	Row    int // 1-based, 1 is the header
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("rule file row %d: %s", e.Row, e.Reason)
}

// ImportResult reports what a rule import did to the store.
type ImportResult struct {
	Added     int
	Conflicts []Conflict
}

// ImportCSV reads a rule file of one kind into the store. Header matching is
// case-insensitive. Any malformed row rejects the entire file and leaves the
// store untouched.
func (s *Store) ImportCSV(r io.Reader, kind Kind) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return ImportResult{}, fmt.Errorf("reading rule CSV: %w", err)
	}
	if len(records) == 0 {
		return ImportResult{}, &ShapeError{Row: 1, Reason: "empty file"}
	}
	if err := checkRuleHeader(records[0]); err != nil {
		return ImportResult{}, err
	}

	// Parse and validate everything before mutating the store so a bad row
	// cannot leave a half-imported file behind.
	type parsed struct {
		condition string
		class     model.Classification
	}
	rows := make([]parsed, 0, len(records)-1)
	for i, rec := range records[1:] {
		rowNum := i + 2
		if len(rec) != ruleNumFields {
			return ImportResult{}, &ShapeError{Row: rowNum, Reason: fmt.Sprintf("expected %d fields, got %d", ruleNumFields, len(rec))}
		}
		cond := strings.TrimSpace(rec[colCondition])
		if cond == "" {
			return ImportResult{}, &ShapeError{Row: rowNum, Reason: "empty condition value"}
		}
		rows = append(rows, parsed{
			condition: cond,
			class: model.Classification{
				H1: strings.TrimSpace(rec[colH1]),
				H2: strings.TrimSpace(rec[colH2]),
				H3: strings.TrimSpace(rec[colH3]),
				H4: strings.TrimSpace(rec[colH4]),
				H5: strings.TrimSpace(rec[colH5]),
			},
		})
	}

	probe := s.Clone()
	for i, row := range rows {
		if err := probe.addRule(kind, row.condition, row.class); err != nil {
			return ImportResult{}, &ShapeError{Row: i + 2, Reason: err.Error()}
		}
	}

	var res ImportResult
	for _, row := range rows {
		if err := s.addRule(kind, row.condition, row.class); err != nil {
			return res, err
		}
		res.Added++
	}
	res.Conflicts = s.Conflicts()
	return res, nil
}

func (s *Store) addRule(kind Kind, condition string, c model.Classification) error {
	switch kind {
	case KindKeyword:
		return s.AddKeywordRule(KeywordRule{Pattern: condition, Match: MatchContains, Class: c})
	case KindGroup:
		return s.AddGroupRule(GroupRule{Group: condition, Class: c})
	default:
		return fmt.Errorf("unknown rule kind %q", kind)
	}
}

// ExportCSV writes the rules of one kind back out in the import format.
func (s *Store) ExportCSV(w io.Writer, kind Kind) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(ruleHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	write := func(condition string, c model.Classification) error {
		row := make([]string, ruleNumFields)
		row[colCondition] = condition
		row[colH1] = c.H1
		row[colH2] = c.H2
		row[colH3] = c.H3
		row[colH4] = c.H4
		row[colH5] = c.H5
		return cw.Write(row)
	}

	switch kind {
	case KindKeyword:
		for _, r := range s.KeywordRules() {
			if err := write(r.Pattern, r.Class); err != nil {
				return fmt.Errorf("writing rule %q: %w", r.Pattern, err)
			}
		}
	case KindGroup:
		for _, r := range s.GroupRules() {
			if err := write(r.Group, r.Class); err != nil {
				return fmt.Errorf("writing rule %q: %w", r.Group, err)
			}
		}
	default:
		return fmt.Errorf("unknown rule kind %q", kind)
	}
	return cw.Error()
}

func checkRuleHeader(rec []string) error {
	if len(rec) != ruleNumFields {
		return &ShapeError{Row: 1, Reason: fmt.Sprintf("expected %d header fields, got %d", ruleNumFields, len(rec))}
	}
	for i, want := range ruleHeader {
		got := strings.TrimSpace(rec[i])
		if !strings.EqualFold(got, want) {
			return &ShapeError{Row: 1, Reason: fmt.Sprintf("header field %d is %q, want %q", i+1, got, want)}
		}
	}
	return nil
}
