package validation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title  string `json:"title" binding:"required,max=10"`
	ISBN   string `json:"isbn" binding:"required,isbn13"`
	Copies *int   `json:"copies_available" binding:"required,min=0"`
}

func bind(t *testing.T, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req sampleRequest
	ok := BindAndValidateJSON(c, &req)
	return w, ok
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBindAndValidateJSON_OK(t *testing.T) {
	_, ok := bind(t, `{"title":"Go","isbn":"1234567890123","copies_available":0}`)
	assert.True(t, ok)
}

func TestBindAndValidateJSON_ReportsJSONFieldNames(t *testing.T) {
	w, ok := bind(t, `{"isbn":"1234567890123"}`)
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w)
	assert.Equal(t, CodeValidationFailed, resp.Code)

	fields := map[string]string{}
	for _, fe := range resp.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "title is required", fields["title"])
	assert.Equal(t, "copies_available is required", fields["copies_available"])
}

func TestBindAndValidateJSON_ISBNMessage(t *testing.T) {
	w, ok := bind(t, `{"title":"Go","isbn":"1234567890","copies_available":1}`)
	require.False(t, ok)

	resp := decode(t, w)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "isbn", resp.Errors[0].Field)
	assert.Equal(t, "isbn13", resp.Errors[0].Rule)
	assert.Equal(t, ISBNLengthMessage, resp.Errors[0].Message)
}

func TestBindAndValidateJSON_NegativeCopies(t *testing.T) {
	w, ok := bind(t, `{"title":"Go","isbn":"1234567890123","copies_available":-1}`)
	require.False(t, ok)

	resp := decode(t, w)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "copies_available", resp.Errors[0].Field)
	assert.Equal(t, "min", resp.Errors[0].Rule)
}

func TestBindAndValidateJSON_Syntax(t *testing.T) {
	w, ok := bind(t, `{"title":`)
	require.False(t, ok)

	resp := decode(t, w)
	assert.Equal(t, CodeInvalidBody, resp.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "syntax", resp.Errors[0].Rule)
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, NewError("return_date", "date_order", LoanDatesMessage))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, CodeValidationFailed, resp.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "return_date", resp.Errors[0].Field)
	assert.Equal(t, LoanDatesMessage, resp.Errors[0].Message)
}
