package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage json.RawMessage `json:"code_message"`
	Data        json.RawMessage `json:"data"`
}

func newTestHelper(t *testing.T) *HTTPHelper {
	t.Helper()
	h, err := NewHTTPHelper()
	require.NoError(t, err)
	return h
}

func record(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestUnderscore(t *testing.T) {
	cases := map[string]string{
		"Title":    "title",
		"AuthorID": "author_id",
		"FullName": "full_name",
		"IsActive": "is_active",
		"ID":       "id",
		"HTTPCode": "http_code",
		"Tags2Go":  "tags2_go",
	}
	for in, want := range cases {
		assert.Equal(t, want, Underscore(in), in)
	}
}

func TestGetStatusCode(t *testing.T) {
	h := newTestHelper(t)
	assert.Equal(t, http.StatusOK, h.GetStatusCode(nil))
	assert.Equal(t, http.StatusNotFound, h.GetStatusCode(models.NewNotFound("post", 1)))
	assert.Equal(t, http.StatusNotFound, h.GetStatusCode(fmt.Errorf("wrapped: %w", models.NewNotFound("post", 1))))
	assert.Equal(t, http.StatusConflict, h.GetStatusCode(models.NewConflict("user has dependents")))
	assert.Equal(t, http.StatusBadRequest, h.GetStatusCode(models.NewValidation("q", "empty")))
	assert.Equal(t, http.StatusInternalServerError, h.GetStatusCode(errors.New("boom")))
}

func TestSendServiceErrorHidesInternalMessages(t *testing.T) {
	h := newTestHelper(t)

	w, env := record(t, func(c *gin.Context) { h.SendServiceError(c, models.NewNotFound("post", 7)) })
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "notFound", env.CodeType)
	assert.JSONEq(t, `"post with id 7 not found"`, string(env.CodeMessage))

	w, env = record(t, func(c *gin.Context) { h.SendServiceError(c, errors.New("secret detail")) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `"Internal Server Error"`, string(env.CodeMessage))
}

func TestSendSuccessAndCreated(t *testing.T) {
	h := newTestHelper(t)

	w, env := record(t, func(c *gin.Context) { h.SendSuccess(c, "", gin.H{"id": 1}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 200, env.Code)
	assert.JSONEq(t, `"success"`, string(env.CodeMessage))
	assert.JSONEq(t, `{"id":1}`, string(env.Data))

	w, env = record(t, func(c *gin.Context) { h.SendCreated(c, "Post created", gin.H{"id": 2}) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "created", env.CodeType)
}

func TestValidationErrorsAreKeyedBySnakeCase(t *testing.T) {
	h := newTestHelper(t)
	req := models.CreatePostRequest{Title: "", Content: "body", AuthorID: 0, Tags: []uint{1, 0}}

	err := h.ValidateStruct(req)
	require.Error(t, err)

	w, env := record(t, func(c *gin.Context) { h.SendValidationError(c, err) })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validationError", env.CodeType)

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(env.CodeMessage, &fields))
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "author_id")
	assert.Contains(t, fields, "tags[1]")
	assert.Contains(t, fields["title"][0], "title")
}

func TestValidateStructAcceptsGoodRequest(t *testing.T) {
	h := newTestHelper(t)
	assert.NoError(t, h.ValidateStruct(models.CreateUserRequest{Username: "alice", Email: "alice@example.com"}))
	assert.Error(t, h.ValidateStruct(models.CreateUserRequest{Username: "al", Email: "not-an-email"}))
}
