package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	baseURL = "http://localhost:8080"
)

var sampleEdges = []map[string]interface{}{
	{
		"head_node": "Policy Rate", "relation": "raises", "tail_node": "Discount Rate",
		"time_granularity": "quarter",
		"properties":       map[string]interface{}{"confidence": "high"},
	},
	{
		"head_node": "Discount Rate", "relation": "reduces", "tail_node": "Tech Valuation",
		"time_granularity": "quarter",
		"properties":       map[string]interface{}{"confidence": "medium"},
	},
	{
		"head_node": "Tech Valuation", "relation": "drives", "tail_node": "Policy Rate",
		"time_granularity": "day",
		"properties":       map[string]interface{}{"confidence": "low"},
	},
}

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	// 1. Health
	fmt.Println("1. Checking Health...")
	ok, _ := sendRequest("GET", "/healthz", nil)
	if !ok {
		fmt.Println("FAILED: Health check")
		os.Exit(1)
	}
	fmt.Println("PASSED: Health check")

	// 2. Build Skeleton
	fmt.Println("2. Building Skeleton...")
	ok, body := sendRequest("POST", "/v1/skeleton", map[string]interface{}{
		"raw_edges": sampleEdges,
	})
	if !ok {
		fmt.Println("FAILED: Build skeleton")
		os.Exit(1)
	}

	var skeleton struct {
		GroupID string                   `json:"group_id"`
		Links   []map[string]interface{} `json:"links"`
	}
	if err := json.Unmarshal(body, &skeleton); err != nil {
		fmt.Printf("FAILED: Parse skeleton response: %v\n", err)
		os.Exit(1)
	}
	// The weak reverse edge must have been rejected to keep the graph acyclic.
	if len(skeleton.Links) != 2 {
		fmt.Printf("FAILED: Expected 2 links after cycle filtering, got %d\n", len(skeleton.Links))
		os.Exit(1)
	}
	fmt.Println("PASSED: Build skeleton")

	// 3. Simulate
	fmt.Println("3. Simulating Rate Shock...")
	ok, body = sendRequest("POST", "/v1/simulate", map[string]interface{}{
		"node_id":       "Policy Rate",
		"value_delta":   1.0,
		"causal_graph":  skeleton.Links,
		"horizon_steps": 3,
	})
	if !ok {
		fmt.Println("FAILED: Simulate")
		os.Exit(1)
	}

	var report struct {
		Impacts []map[string]interface{} `json:"impacts"`
	}
	if err := json.Unmarshal(body, &report); err != nil || len(report.Impacts) != 3 {
		fmt.Printf("FAILED: Expected 3 impacted nodes, got %d\n", len(report.Impacts))
		os.Exit(1)
	}
	fmt.Println("PASSED: Simulate")

	// 4. Root Cause
	fmt.Println("4. Tracing Root Cause...")
	ok, body = sendRequest("POST", "/v1/root-cause", map[string]interface{}{
		"target_node":  "Tech Valuation",
		"causal_graph": skeleton.Links,
	})
	if !ok {
		fmt.Println("FAILED: Root cause")
		os.Exit(1)
	}

	var rootCause struct {
		RootCause string `json:"root_cause"`
	}
	if err := json.Unmarshal(body, &rootCause); err != nil || rootCause.RootCause != "Policy Rate" {
		fmt.Printf("FAILED: Expected root cause 'Policy Rate', got '%s'\n", rootCause.RootCause)
		os.Exit(1)
	}
	fmt.Println("PASSED: Root cause")

	// 5. Forecast (build + simulate in one call)
	fmt.Println("5. Forecasting from Raw Edges...")
	ok, _ = sendRequest("POST", "/v1/forecast", map[string]interface{}{
		"node_id":     "Policy Rate",
		"value_delta": -0.5,
		"raw_edges":   sampleEdges,
	})
	if !ok {
		fmt.Println("FAILED: Forecast")
		os.Exit(1)
	}
	fmt.Println("PASSED: Forecast")

	fmt.Println("All integration checks passed.")
}

func sendRequest(method, endpoint string, payload interface{}) (bool, []byte) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false, nil
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false, nil
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false, nil
	}

	fmt.Printf("Response: %s\n", string(respBody))
	return true, respBody
}
