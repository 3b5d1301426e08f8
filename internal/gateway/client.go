// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the typed HTTP client for the remote banking
// service. It is a pure request/response mapper: no retries, no caching.
// Error normalization (HTTP status vs. transport failure) lives here so
// callers see one uniform error shape.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the banking client.
type ClientConfig struct {
	// CustomerBaseURL is the customer service base URL (default: http://localhost:8090/customer)
	CustomerBaseURL string

	// AccountBaseURL is the account service base URL (default: http://localhost:8090/account)
	AccountBaseURL string

	// Timeout for requests (default: 15s)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		CustomerBaseURL: "http://localhost:8090/customer",
		AccountBaseURL:  "http://localhost:8090/account",
		Timeout:         15 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the banking REST API.
//
// The Client is thread-safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new banking client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new banking client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.CustomerBaseURL == "" {
		config.CustomerBaseURL = "http://localhost:8090/customer"
	}
	if config.AccountBaseURL == "" {
		config.AccountBaseURL = "http://localhost:8090/account"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// =============================================================================
// CUSTOMER OPERATIONS
// =============================================================================

// RegisterCustomer creates a customer (and its backing account) on the server.
func (c *Client) RegisterCustomer(ctx context.Context, customer Customer) (Customer, error) {
	var out Customer
	err := c.do(ctx, http.MethodPost, c.config.CustomerBaseURL+"/register", nil, customer, &out)
	return out, err
}

// LoginCustomer authenticates against the server and returns the customer
// profile. All roles, including admin, authenticate through this endpoint;
// the client never decides authorization locally.
func (c *Client) LoginCustomer(ctx context.Context, email, password string) (Customer, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("password", password)

	var out Customer
	err := c.do(ctx, http.MethodPost, c.config.CustomerBaseURL+"/login", q, nil, &out)
	return out, err
}

// ListCustomers returns the full customer roster (admin operation).
func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	err := c.do(ctx, http.MethodGet, c.config.CustomerBaseURL+"/all", nil, nil, &out)
	return out, err
}

// UpdateCustomer replaces a customer record (admin operation).
func (c *Client) UpdateCustomer(ctx context.Context, customer Customer) (Customer, error) {
	var out Customer
	u := c.config.CustomerBaseURL + "/" + strconv.FormatInt(customer.ID, 10)
	err := c.do(ctx, http.MethodPut, u, nil, customer, &out)
	return out, err
}

// DeleteCustomer removes a customer by business ID (admin operation).
func (c *Client) DeleteCustomer(ctx context.Context, customerID string) error {
	u := c.config.CustomerBaseURL + "/customer/" + url.PathEscape(customerID)
	return c.do(ctx, http.MethodDelete, u, nil, nil, nil)
}

// CheckBalance returns the current balance for an account.
func (c *Client) CheckBalance(ctx context.Context, accountNo string) (float64, error) {
	var out float64
	u := c.config.CustomerBaseURL + "/balance/" + url.PathEscape(accountNo)
	err := c.do(ctx, http.MethodGet, u, nil, nil, &out)
	return out, err
}

// Deposit adds amount to the account and returns the new balance.
func (c *Client) Deposit(ctx context.Context, accountNo string, amount float64) (float64, error) {
	q := url.Values{}
	q.Set("accountNo", accountNo)
	q.Set("amount", formatAmount(amount))

	var out float64
	err := c.do(ctx, http.MethodPost, c.config.CustomerBaseURL+"/deposit", q, nil, &out)
	return out, err
}

// Withdraw removes amount from the account and returns the new balance.
// Insufficient funds surface as a server error; the client performs no
// balance checks of its own.
func (c *Client) Withdraw(ctx context.Context, accountNo string, amount float64) (float64, error) {
	q := url.Values{}
	q.Set("accountNo", accountNo)
	q.Set("amount", formatAmount(amount))

	var out float64
	err := c.do(ctx, http.MethodPost, c.config.CustomerBaseURL+"/withdraw", q, nil, &out)
	return out, err
}

// =============================================================================
// ACCOUNT OPERATIONS
// =============================================================================

// GetAccount returns the authoritative account state from the server.
func (c *Client) GetAccount(ctx context.Context, accountNo string) (Account, error) {
	var out Account
	u := c.config.AccountBaseURL + "/" + url.PathEscape(accountNo)
	err := c.do(ctx, http.MethodGet, u, nil, nil, &out)
	return out, err
}

// UpdateBalance sets an account's balance directly (admin operation).
func (c *Client) UpdateBalance(ctx context.Context, accountNo string, newBalance float64) (Account, error) {
	q := url.Values{}
	q.Set("accountNo", accountNo)
	q.Set("newBalance", formatAmount(newBalance))

	var out Account
	err := c.do(ctx, http.MethodPut, c.config.AccountBaseURL+"/update", q, nil, &out)
	return out, err
}

// TransactionHistory returns the transactions recorded for an account.
// Ordering is not guaranteed by the server; callers sort for display.
func (c *Client) TransactionHistory(ctx context.Context, accountNo string) ([]Transaction, error) {
	var out []Transaction
	u := c.config.AccountBaseURL + "/transactions/" + url.PathEscape(accountNo)
	err := c.do(ctx, http.MethodGet, u, nil, nil, &out)
	return out, err
}

// CalculateInterest asks the server to compute interest for an account.
func (c *Client) CalculateInterest(ctx context.Context, accountNo string, rate float64, years int) (float64, error) {
	q := url.Values{}
	q.Set("accountNo", accountNo)
	q.Set("rate", formatAmount(rate))
	q.Set("years", strconv.Itoa(years))

	var out float64
	err := c.do(ctx, http.MethodGet, c.config.AccountBaseURL+"/interest", q, nil, &out)
	return out, err
}

// SendNotification sends a notification message for an account and returns
// the server's acknowledgement text.
func (c *Client) SendNotification(ctx context.Context, accountNo, message string) (string, error) {
	q := url.Values{}
	q.Set("accountNo", accountNo)
	q.Set("message", message)

	req, err := c.newRequest(ctx, http.MethodPost, c.config.AccountBaseURL+"/notify", q, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &Error{Kind: KindDecode, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", serverError(resp.StatusCode, body)
	}

	// The server may answer with a bare string or a JSON-encoded one.
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s, nil
	}
	return strings.TrimSpace(string(body)), nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 1 << 20

// newRequest builds a request with the query string, JSON body, and a
// correlation ID attached.
func (c *Client) newRequest(ctx context.Context, method, rawURL string, query url.Values, body any) (*http.Request, error) {
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindDecode, Message: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "failed to create request", Cause: err}
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}

// do executes one request and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, rawURL string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, rawURL, query, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &Error{Kind: KindDecode, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Kind: KindDecode, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// serverError maps a non-2xx response to a server error, pulling the
// message field out of the body when the server supplied one.
func serverError(status int, body []byte) error {
	var sm serverMessage
	if err := json.Unmarshal(body, &sm); err == nil && sm.Message != "" {
		return &Error{Kind: KindServer, Status: status, Message: sm.Message}
	}
	return &Error{Kind: KindServer, Status: status}
}

// formatAmount renders a monetary value for a query parameter.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
