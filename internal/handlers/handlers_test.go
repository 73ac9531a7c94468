package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindRecordRequest(t *testing.T, body string) (RecordTransactionRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/transactions", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req RecordTransactionRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestRecordTransactionRequestBindsZeroBalance(t *testing.T) {
	req, err := bindRecordRequest(t, `{
		"transaction_id": "ext-1",
		"symbol": "RELIANCE",
		"type": "buy",
		"quantity": 40,
		"price": 2500,
		"wallet_balance_after": 0
	}`)
	require.NoError(t, err, "a resulting balance of exactly zero is legitimate")
	require.NotNil(t, req.BalanceAfter)
	assert.True(t, req.BalanceAfter.IsZero())
}

func TestRecordTransactionRequestRequiresBalance(t *testing.T) {
	_, err := bindRecordRequest(t, `{
		"transaction_id": "ext-1",
		"symbol": "RELIANCE",
		"type": "buy",
		"quantity": 1,
		"price": 2500
	}`)
	assert.Error(t, err)
}
