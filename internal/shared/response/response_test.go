package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/shared/view"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/catalog/authors", nil)
	return c, w
}

func TestPresent_Render(t *testing.T) {
	c, w := newContext()

	Present(c, view.Render("author_list", view.Data{"title": "Author List"}))

	require.Equal(t, http.StatusOK, w.Code)
	var page Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, "author_list", page.View)
	assert.Equal(t, "Author List", page.Data["title"])
}

func TestPresent_Redirect(t *testing.T) {
	c, w := newContext()

	Present(c, view.RedirectTo("/catalog/authors"))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/catalog/authors", w.Header().Get("Location"))
}

func TestError_HidesServerErrorMessages(t *testing.T) {
	c, w := newContext()

	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "dial tcp 10.0.0.1:5432: connection refused")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "Internal Server Error", body.Error.Message)
	assert.Equal(t, http.StatusInternalServerError, body.Error.Status)
	assert.True(t, c.IsAborted())
}

func TestError_ClientErrorKeepsMessage(t *testing.T) {
	c, w := newContext()

	Error(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")

	require.Equal(t, http.StatusNotFound, w.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "author not found", body.Error.Message)
}
