// Package llm - util.go provides shared utilities for model response processing.
package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONPattern = regexp.MustCompile("(?is)```json\\s*(\\{.*?\\})\\s*```")
	fencedPattern     = regexp.MustCompile("(?s)```\\s*(\\{.*?\\})\\s*```")
	trailingCommas    = regexp.MustCompile(`,\s*([}\]])`)
)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	return text
}

// ExtractJSONObject pulls a JSON object out of model output by trying, in
// order: a fenced ```json block, any fenced block, then the largest
// brace-delimited substring. The parsed root must be an object.
func ExtractJSONObject(text string) (map[string]any, error) {
	candidate := ""
	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	} else if m := fencedPattern.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	} else {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start >= 0 && end > start {
			candidate = text[start : end+1]
		}
	}

	if candidate == "" {
		return nil, fmt.Errorf("no JSON object found in model output")
	}

	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON: %w", err)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("model JSON root must be an object")
	}
	return obj, nil
}

// RepairJSON fixes issues models commonly introduce into JSON text: NUL
// bytes, smart quotes, and trailing commas before closing brackets.
func RepairJSON(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'").Replace(text)
	return trailingCommas.ReplaceAllString(text, "$1")
}

// ExtractJSONObjectLenient tries a direct extraction first and falls back to
// extracting from repaired text. The original error is preserved when the
// repaired attempt also fails.
func ExtractJSONObjectLenient(text string) (map[string]any, error) {
	obj, err := ExtractJSONObject(text)
	if err == nil {
		return obj, nil
	}
	if repaired, repairErr := ExtractJSONObject(RepairJSON(text)); repairErr == nil {
		return repaired, nil
	}
	return nil, err
}
