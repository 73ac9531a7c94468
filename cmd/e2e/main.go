package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const baseURL = "http://localhost:8080"

var token string

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	// 1. Health Check
	checkEndpoint("GET", "/health", nil, 200)

	// 2. Register + Login
	email := fmt.Sprintf("e2e-%d@papertrade.dev", time.Now().UnixNano())
	register(email)
	token = login(email)
	fmt.Println("Logged in")

	// 3. Watchlist and a quote
	checkEndpoint("GET", "/api/stocks", nil, 200)
	checkEndpoint("GET", "/api/stocks/RELIANCE", nil, 200)

	// 4. Buy, then check wallet and portfolio
	txID := fmt.Sprintf("e2e-buy-%d", time.Now().UnixNano())
	buy := map[string]interface{}{"symbol": "RELIANCE", "quantity": 5, "transaction_id": txID}
	checkEndpoint("POST", "/api/stocks/buy", buy, 200)
	checkEndpoint("GET", "/api/wallet", nil, 200)
	checkEndpoint("GET", "/api/portfolio", nil, 200)

	// 5. Replaying the same transaction id must be rejected
	checkEndpoint("POST", "/api/stocks/buy", buy, 409)

	// 6. Sell part of the position
	sell := map[string]interface{}{"symbol": "RELIANCE", "quantity": 2}
	checkEndpoint("POST", "/api/stocks/sell", sell, 200)

	// 7. Overselling must fail
	oversell := map[string]interface{}{"symbol": "RELIANCE", "quantity": 9999}
	checkEndpoint("POST", "/api/stocks/sell", oversell, 400)

	// 8. Add funds
	checkEndpoint("POST", "/api/wallet/add", map[string]interface{}{"amount": 5000}, 200)

	// 9. Transactions and stats
	checkEndpoint("GET", "/api/transactions", nil, 200)
	checkEndpoint("GET", "/api/transactions/stats", nil, 200)

	// 10. Suggestions, bonds, insurance
	checkEndpoint("GET", "/api/suggestions", nil, 200)
	checkEndpoint("GET", "/api/bonds", nil, 200)
	checkEndpoint("GET", "/api/insurance", nil, 200)

	fmt.Println("ALL TESTS PASSED")
}

func checkEndpoint(method, path string, body interface{}, expectedStatus int) {
	fmt.Printf("Testing %s %s...\n", method, path)
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, baseURL+path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	fmt.Printf("Response: %s\n", string(respBody))
}

func register(email string) {
	reqBody := map[string]string{"name": "E2E User", "email": email, "password": "e2e-password"}
	jsonBody, _ := json.Marshal(reqBody)
	resp, err := http.Post(baseURL+"/api/auth/register", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Fatalf("Register failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 201 {
		body, _ := io.ReadAll(resp.Body)
		log.Fatalf("Register failed with status %d: %s", resp.StatusCode, string(body))
	}
}

func login(email string) string {
	reqBody := map[string]string{"email": email, "password": "e2e-password"}
	jsonBody, _ := json.Marshal(reqBody)
	resp, err := http.Post(baseURL+"/api/auth/login", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		log.Fatalf("Login failed with status %d: %s", resp.StatusCode, string(body))
	}

	var res struct {
		Token string `json:"token"`
	}
	json.NewDecoder(resp.Body).Decode(&res)
	return res.Token
}
