// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points both service base URLs at the test server.
func newTestClient(srv *httptest.Server) *Client {
	return NewClientWithConfig(&ClientConfig{
		CustomerBaseURL: srv.URL + "/customer",
		AccountBaseURL:  srv.URL + "/account",
		Timeout:         2 * time.Second,
	})
}

func TestLoginCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/customer/login", r.URL.Path)
		assert.Equal(t, "alice@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "secret123", r.URL.Query().Get("password"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"customerId":"CUST1","accountNo":"ACC456","name":"Alice","email":"alice@example.com","role":"customer"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	customer, err := c.LoginCustomer(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "CUST1", customer.CustomerID)
	assert.Equal(t, "ACC456", customer.AccountNo)
	assert.Equal(t, RoleCustomer, customer.Role)
}

func TestDeposit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customer/deposit", r.URL.Path)
		assert.Equal(t, "ACC456", r.URL.Query().Get("accountNo"))
		assert.Equal(t, "500", r.URL.Query().Get("amount"))
		w.Write([]byte(`1500.50`))
	}))
	defer srv.Close()

	balance, err := newTestClient(srv).Deposit(context.Background(), "ACC456", 500)
	require.NoError(t, err)
	assert.Equal(t, 1500.50, balance)
}

func TestWithdraw_InsufficientBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Insufficient balance"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Withdraw(context.Background(), "ACC456", 2000)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.Equal(t, "Insufficient balance", ServerMessage(err))
	assert.False(t, IsTransport(err))
}

func TestServerError_NoMessageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).LoginCustomer(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Empty(t, ServerMessage(err))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	_, err := newTestClient(srv).CheckBalance(context.Background(), "ACC456")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Equal(t, 0, StatusOf(err))
}

func TestGetAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account/ACC456", r.URL.Path)
		w.Write([]byte(`{"accountNo":"ACC456","balance":1500.50,"account_type":"savings"}`))
	}))
	defer srv.Close()

	account, err := newTestClient(srv).GetAccount(context.Background(), "ACC456")
	require.NoError(t, err)
	assert.Equal(t, "ACC456", account.AccountNo)
	assert.Equal(t, 1500.50, account.Balance)
	assert.Equal(t, "savings", account.AccountType)
}

func TestTransactionHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account/transactions/ACC456", r.URL.Path)
		w.Write([]byte(`[
			{"id":1,"accountNo":"ACC456","type":"deposit","amount":500,"timestamp":"2025-08-01T10:00:00Z"},
			{"id":2,"accountNo":"ACC456","type":"withdraw","amount":200,"timestamp":"2025-08-02T11:30:00Z"}
		]`))
	}))
	defer srv.Close()

	txns, err := newTestClient(srv).TransactionHistory(context.Background(), "ACC456")
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "deposit", txns[0].Type)
	assert.Equal(t, 500.0, txns[0].Amount)
}

func TestUpdateBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/account/update", r.URL.Path)
		assert.Equal(t, "ACC456", r.URL.Query().Get("accountNo"))
		assert.Equal(t, "9000", r.URL.Query().Get("newBalance"))
		w.Write([]byte(`{"accountNo":"ACC456","balance":9000,"account_type":"savings"}`))
	}))
	defer srv.Close()

	account, err := newTestClient(srv).UpdateBalance(context.Background(), "ACC456", 9000)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, account.Balance)
}

func TestCalculateInterest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account/interest", r.URL.Path)
		assert.Equal(t, "ACC456", r.URL.Query().Get("accountNo"))
		assert.Equal(t, "7.5", r.URL.Query().Get("rate"))
		assert.Equal(t, "3", r.URL.Query().Get("years"))
		w.Write([]byte(`337.50`))
	}))
	defer srv.Close()

	interest, err := newTestClient(srv).CalculateInterest(context.Background(), "ACC456", 7.5, 3)
	require.NoError(t, err)
	assert.Equal(t, 337.50, interest)
}

func TestSendNotification_PlainTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account/notify", r.URL.Path)
		assert.Equal(t, "hello there", r.URL.Query().Get("message"))
		w.Write([]byte("Notification sent"))
	}))
	defer srv.Close()

	ack, err := newTestClient(srv).SendNotification(context.Background(), "ACC456", "hello there")
	require.NoError(t, err)
	assert.Equal(t, "Notification sent", ack)
}

func TestDeleteCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/customer/customer/CUST1", r.URL.Path)
		w.Write([]byte(`"deleted"`))
	}))
	defer srv.Close()

	err := newTestClient(srv).DeleteCustomer(context.Background(), "CUST1")
	assert.NoError(t, err)
}

func TestListCustomers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customer/all", r.URL.Path)
		w.Write([]byte(`[{"customerId":"CUST1","name":"Alice"},{"customerId":"CUST2","name":"Bob"}]`))
	}))
	defer srv.Close()

	customers, err := newTestClient(srv).ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Bob", customers[1].Name)
}

func TestRegisterCustomer_SendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customer/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"customerId":"CUST9","accountNo":"ACC999","name":"Carol"}`))
	}))
	defer srv.Close()

	customer, err := newTestClient(srv).RegisterCustomer(context.Background(), Customer{Name: "Carol", Email: "c@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ACC999", customer.AccountNo)
}

func TestDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetAccount(context.Background(), "ACC456")
	require.Error(t, err)
	assert.False(t, IsTransport(err))
	assert.Equal(t, 0, StatusOf(err))
}
