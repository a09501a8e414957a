package sportline

import (
	"encoding/json"
	"log/slog"
	"time"
)

// ParseOptions carry per-batch context into the strategies.
type ParseOptions struct {
	// Now anchors year inference and live detection; zero means wall clock.
	Now time.Time
}

// ParseStrategy is one way of reading a raw board payload. Strategies
// are tried in priority order; the first non-empty result wins.
type ParseStrategy interface {
	Name() string
	TryParse(raw []byte, opts ParseOptions) []ParsedFields
}

// Strategies returns the ordered strategy list: structured JSON first,
// then the delimited flat format, then the HTML fallback.
func Strategies() []ParseStrategy {
	return []ParseStrategy{
		jsonMatchStrategy{},
		delimitedStrategy{},
		htmlStrategy{},
	}
}

// ParseBoard runs the strategy chain over one raw board payload.
func ParseBoard(raw []byte, opts ParseOptions) []ParsedFields {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	shape := DetectShape(raw)
	for _, s := range Strategies() {
		fields := s.TryParse(raw, opts)
		if len(fields) > 0 {
			slog.Debug("Board payload parsed",
				"strategy", s.Name(), "shape", shape.String(), "records", len(fields))
			return fields
		}
	}

	slog.Debug("No strategy produced records", "shape", shape.String(), "bytes", len(raw))
	return nil
}

// jsonMatchStrategy reads the matches array of a JSON board envelope.
type jsonMatchStrategy struct{}

func (jsonMatchStrategy) Name() string { return "nested_json" }

func (jsonMatchStrategy) TryParse(raw []byte, opts ParseOptions) []ParsedFields {
	if DetectShape(raw) != ShapeNestedJSON {
		return nil
	}

	var board BoardResponse
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil
	}

	var results []ParsedFields
	for _, rawMatch := range board.Matches {
		parsed, ok := decodeLooseMatch(rawMatch, opts.Now)
		if !ok {
			continue
		}
		results = append(results, parsed)
	}
	return results
}

// delimitedStrategy reads the pipe/semicolon flat format, either bare or
// wrapped in a JSON envelope's matchData field.
type delimitedStrategy struct{}

func (delimitedStrategy) Name() string { return "flat_delimited" }

func (delimitedStrategy) TryParse(raw []byte, opts ParseOptions) []ParsedFields {
	shape := DetectShape(raw)
	if shape != ShapeFlatDelimited && shape != ShapeUnknown {
		return nil
	}

	var results []ParsedFields
	for _, record := range flatRecords(raw) {
		parsed, ok := parseFieldsFromSlice(splitFields(record), opts.Now)
		if !ok {
			continue
		}
		results = append(results, parsed)
	}
	return results
}

// htmlStrategy is the last resort for payloads that turned out to be a
// rendered page rather than data.
type htmlStrategy struct{}

func (htmlStrategy) Name() string { return "html" }

func (htmlStrategy) TryParse(raw []byte, opts ParseOptions) []ParsedFields {
	if DetectShape(raw) != ShapeHTML {
		return nil
	}
	return parseHTMLBoard(raw, opts.Now)
}
