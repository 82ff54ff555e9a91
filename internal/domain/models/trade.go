package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Flow identifies the direction of a trade record.
type Flow string

const (
	FlowExport Flow = "export"
	FlowImport Flow = "import"
)

// FlexValue is a float64 that tolerates the pre-processed JSON files:
// numbers, numeric strings, null, or junk all decode without error, with
// anything non-numeric contributing zero.
type FlexValue float64

func (v *FlexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*v = 0
		return nil
	}

	s := string(data)
	if s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			*v = 0
			return nil
		}
		s = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*v = 0
		return nil
	}
	*v = FlexValue(f)
	return nil
}

// TradeRecord is one observed transaction-period entry. Records are
// immutable once loaded; aggregation only reads them.
type TradeRecord struct {
	Quarter            string    `json:"quarter"`
	ExportValue        FlexValue `json:"export_value"`
	ImportValue        FlexValue `json:"import_value"`
	Country            string    `json:"country,omitempty"`
	DestinationCountry string    `json:"destination_country,omitempty"`
	SourceCountry      string    `json:"source_country,omitempty"`
	Commodity          string    `json:"commodity,omitempty"`
}

// Value returns the record's value for the given flow.
func (r TradeRecord) Value(flow Flow) float64 {
	if flow == FlowImport {
		return float64(r.ImportValue)
	}
	return float64(r.ExportValue)
}

// Partner returns the partner country, whichever field the source data used.
func (r TradeRecord) Partner() string {
	switch {
	case r.Country != "":
		return r.Country
	case r.DestinationCountry != "":
		return r.DestinationCountry
	case r.SourceCountry != "":
		return r.SourceCountry
	default:
		return "Unknown"
	}
}
