//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
)

type questionInfo struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

func doJSON(t *testing.T, method, url string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
}

func createQuestion(t *testing.T, text string, category, difficulty int) questionInfo {
	t.Helper()

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/questions", baseURL()), map[string]interface{}{
		"question":   text,
		"answer":     "integration answer",
		"category":   category,
		"difficulty": difficulty,
	})
	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		t.Fatalf("unexpected create status: %d", resp.StatusCode)
	}

	var out struct {
		Success bool `json:"success"`
		Created int  `json:"created"`
	}
	decodeBody(t, resp, &out)
	if !out.Success || out.Created == 0 {
		t.Fatalf("create response missing id: %+v", out)
	}

	return questionInfo{ID: out.Created, Question: text, Category: category, Difficulty: difficulty}
}

func deleteQuestion(t *testing.T, id int) {
	t.Helper()
	resp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/questions/%d", baseURL(), id), nil)
	resp.Body.Close()
}
