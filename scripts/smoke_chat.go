//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

var baseURL = envOr("SMOKE_BASE_URL", "http://localhost:3000")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendRequest(method, path string, body interface{}) (int, map[string]interface{}, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 90 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out, err
}

func turn(label, message string, state interface{}) interface{} {
	color.Yellow("\n[%s] %q", label, message)
	status, res, err := sendRequest("POST", "/chat", map[string]interface{}{"message": message, "state": state})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %d", status)
	prettyPrint(res)
	return res["state"]
}

// Walks the guided flow and the two-turn crisis protocol against a running server.
func main() {
	color.Cyan("🚀 Chat smoke test against %s", baseURL)

	_, health, err := sendRequest("GET", "/health", nil)
	if err != nil {
		color.Red("Health failed: %v", err)
		os.Exit(1)
	}
	prettyPrint(health)

	_, reset, _ := sendRequest("POST", "/reset", nil)
	state := reset["state"]

	state = turn("flow", "I'm good at footy and looking after my cousins", state)
	state = turn("flow", "I feel really anxious about exams", state)
	state = turn("flow", "next", state)
	state = turn("flow", "Sleep better before exams", state)

	color.Cyan("\n--- crisis protocol ---")
	state = turn("crisis", "sometimes I want to die", state)
	turn("crisis", "still struggling", state)
}
