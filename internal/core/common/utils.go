package common

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 bounds x to [0, 1]. NaN collapses to 0 so a malformed quality
// score never poisons a strength computation.
func Clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return Clamp(x, 0, 1)
}

// ParseJSON unmarshals the first JSON object found in an LLM response.
// It handles common quirks like surrounding markdown fences or extra text.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.Index(response, "{")
	if start == -1 {
		return zero, fmt.Errorf("no JSON object found in response (missing '{')")
	}

	jsonStr := response
	if end := strings.LastIndex(response, "}"); end > start {
		jsonStr = response[start : end+1]
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}
