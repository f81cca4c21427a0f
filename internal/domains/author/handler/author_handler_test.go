package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/author/repository"
	"catalog-backend/internal/domains/author/service"
	bookmodel "catalog-backend/internal/domains/book/model"
	bookrepo "catalog-backend/internal/domains/book/repository"
	"catalog-backend/internal/shared/response"
)

type testEnv struct {
	router  *gin.Engine
	authors *repository.MemoryRepository
	books   *bookrepo.MemoryRepository
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		authors: repository.NewMemoryRepository(),
		books:   bookrepo.NewMemoryRepository(),
	}
	h := NewAuthorHandler(service.NewAuthorService(env.authors, env.books, nil))

	env.router = gin.New()
	h.RegisterRoutes(env.router.Group("/catalog"))
	return env
}

func (e *testEnv) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) addAuthor(t *testing.T, first, family string) *model.Author {
	t.Helper()
	a, err := e.authors.Create(context.Background(), &model.Author{FirstName: first, FamilyName: family})
	require.NoError(t, err)
	return a
}

type page struct {
	View string                 `json:"view"`
	Data map[string]interface{} `json:"data"`
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) page {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestList_RendersAuthorList(t *testing.T) {
	env := newTestEnv()
	env.addAuthor(t, "John", "Tolkien")
	env.addAuthor(t, "Jane", "Austen")

	p := decodePage(t, env.do(http.MethodGet, "/catalog/authors", nil))

	assert.Equal(t, service.ViewAuthorList, p.View)
	assert.Equal(t, service.TitleAuthorList, p.Data["title"])
	list := p.Data["author_list"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "Austen, Jane", list[0].(map[string]interface{})["name"])
}

func TestDetail_BothRouteSpellings(t *testing.T) {
	env := newTestEnv()
	a := env.addAuthor(t, "Jane", "Austen")

	for _, path := range []string{"/catalog/author/" + a.ID.String(), "/catalog/authors/" + a.ID.String()} {
		p := decodePage(t, env.do(http.MethodGet, path, nil))
		assert.Equal(t, service.ViewAuthorDetail, p.View, path)
	}
}

func TestDetail_UnknownID_404(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/catalog/author/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "AUTHOR_NOT_FOUND", decodeError(t, w).Code)
}

func TestDetail_MalformedID_400(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/catalog/author/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_AUTHOR_ID", decodeError(t, w).Code)
}

func TestCreate_FormRoute(t *testing.T) {
	env := newTestEnv()

	p := decodePage(t, env.do(http.MethodGet, "/catalog/author/create", nil))

	assert.Equal(t, service.ViewAuthorForm, p.View)
	assert.Equal(t, service.TitleCreateAuthor, p.Data["title"])
}

func TestCreate_Valid_RedirectsToAuthor(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodPost, "/catalog/author/create", url.Values{
		"first_name":    {"Jane"},
		"family_name":   {"Austen"},
		"date_of_birth": {"1775-12-16"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/catalog/author/"))
	assert.Equal(t, 1, env.authors.Count())
}

func TestCreate_Invalid_RerendersFormWithErrors(t *testing.T) {
	env := newTestEnv()

	p := decodePage(t, env.do(http.MethodPost, "/catalog/author/create", url.Values{
		"first_name":  {"Jane123!"},
		"family_name": {"Austen"},
	}))

	assert.Equal(t, service.ViewAuthorForm, p.View)
	errs := p.Data["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Equal(t, "first_name", errs[0].(map[string]interface{})["field"])
	assert.Equal(t, 0, env.authors.Count())
}

func TestDelete_WithBooks_RerendersConfirmation(t *testing.T) {
	env := newTestEnv()
	a := env.addAuthor(t, "Jane", "Austen")
	_, err := env.books.Create(context.Background(), &bookmodel.Book{Title: "Emma", AuthorID: a.ID})
	require.NoError(t, err)

	p := decodePage(t, env.do(http.MethodPost, "/catalog/author/"+a.ID.String()+"/delete", url.Values{
		"authorid": {a.ID.String()},
	}))

	assert.Equal(t, service.ViewAuthorDelete, p.View)
	assert.Len(t, p.Data["author_books"], 1)
	assert.Equal(t, 1, env.authors.Count())
}

func TestDelete_NoBooks_RedirectsToList(t *testing.T) {
	env := newTestEnv()
	a := env.addAuthor(t, "Jane", "Austen")

	w := env.do(http.MethodPost, "/catalog/authors/"+a.ID.String()+"/delete", url.Values{
		"authorid": {a.ID.String()},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, model.ListURL, w.Header().Get("Location"))
	assert.Equal(t, 0, env.authors.Count())
}

func TestDeleteConfirmation_Absent_RedirectsToList(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/catalog/author/"+uuid.NewString()+"/delete", nil)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, model.ListURL, w.Header().Get("Location"))
}

func TestUpdate_RedirectsToPathIDAuthor(t *testing.T) {
	env := newTestEnv()
	a := env.addAuthor(t, "Jane", "Austin")

	w := env.do(http.MethodPost, "/catalog/author/"+a.ID.String()+"/update", url.Values{
		"first_name":  {"Jane"},
		"family_name": {"Austen"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, a.URL(), w.Header().Get("Location"))
}

func TestUpdateForm_Unknown_404(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/catalog/author/"+uuid.NewString()+"/update", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
