// Package utils contains small parsing helpers shared across the engine,
// mostly for coercing LLM output into usable values.
package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON errors from LLM outputs:
// missing/single quotes, unclosed brackets, trailing commas, markdown
// fences, comments.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// SmartParse tries multiple strategies to unmarshal input into schema:
// standard JSON, then JSON repair, then Hjson (most lenient).
func SmartParse(input string, schema interface{}) error {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return nil
		}
	}

	if err := hjson.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	return fmt.Errorf("SMART_PARSE_FAILED: all parsing strategies failed")
}

// ExtractNumber pulls a single numeric value out of an LLM response.
// Accepted shapes, in order: a bare number (with optional $ and thousands
// separators), a JSON/Hjson object with a "value" key. Anything else is an
// error, which the caller treats as estimation-tier failure.
func ExtractNumber(raw string) (float64, error) {
	cleaned := StripCodeFences(raw)

	// Bare number, possibly formatted.
	scalar := strings.TrimSpace(cleaned)
	scalar = strings.TrimPrefix(scalar, "$")
	scalar = strings.ReplaceAll(scalar, ",", "")
	if v, err := strconv.ParseFloat(scalar, 64); err == nil {
		return v, nil
	}

	// Structured response.
	var payload struct {
		Value *float64 `json:"value"`
	}
	if err := SmartParse(cleaned, &payload); err == nil && payload.Value != nil {
		return *payload.Value, nil
	}

	return 0, fmt.Errorf("UNPARSEABLE_NUMBER: %q", truncate(raw, 120))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
