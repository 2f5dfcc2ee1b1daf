package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(name string) {
	color.Cyan("\n=== %s ===", name)
}

func check(resp *http.Response, body []byte, err error) {
	if err != nil {
		color.Red("FAIL: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Red("FAIL: status %d", resp.StatusCode)
		prettyPrint(body)
		os.Exit(1)
	}
	color.Green("OK: status %d", resp.StatusCode)
	prettyPrint(body)
}

func main() {
	email := fmt.Sprintf("smoke+%d@example.com", os.Getpid())

	step("Register")
	resp, body, err := sendRequest("POST", "/auth/v1/register", "", map[string]interface{}{
		"email":     email,
		"password":  "password123",
		"full_name": "Smoke Tester",
	})
	check(resp, body, err)

	step("Login")
	resp, body, err = sendRequest("POST", "/auth/v1/login", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
	})
	check(resp, body, err)

	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &login); err != nil || login.Data.Token == "" {
		color.Red("FAIL: could not extract token")
		os.Exit(1)
	}
	token := login.Data.Token

	step("Create entry")
	resp, body, err = sendRequest("POST", "/entry/v1", token, map[string]interface{}{
		"content": "Today went better than expected. I felt calm during the meeting.",
		"mood":    4,
	})
	check(resp, body, err)

	step("List entries")
	resp, body, err = sendRequest("GET", "/entry/v1", token, nil)
	check(resp, body, err)

	step("Dialogue turn")
	resp, body, err = sendRequest("POST", "/dialogue/v1", token, map[string]interface{}{
		"message": "I'm feeling a bit anxious about tomorrow.",
	})
	check(resp, body, err)

	step("History state")
	resp, body, err = sendRequest("GET", "/history/v1", token, nil)
	check(resp, body, err)

	step("Analytics (week)")
	resp, body, err = sendRequest("GET", "/analytics/v1?period=week", token, nil)
	check(resp, body, err)

	step("Daily question")
	resp, body, err = sendRequest("GET", "/question/v1/daily", token, nil)
	check(resp, body, err)

	color.Green("\nAll smoke checks passed")
}
