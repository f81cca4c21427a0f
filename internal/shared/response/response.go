package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/shared/view"
)

// Page is the body of a rendered view.
type Page struct {
	View string    `json:"view"`
	Data view.Data `json:"data"`
}

type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Present writes a controller outcome: 302 for redirects, otherwise 200 with
// the view name and data bag.
func Present(c *gin.Context, o view.Outcome) {
	if o.IsRedirect() {
		c.Redirect(http.StatusFound, o.Redirect)
		return
	}
	c.JSON(http.StatusOK, Page{View: o.View, Data: o.Data})
}

// Error writes the generic error page. Messages of 5xx responses are replaced
// with the status text so store details never reach the client.
func Error(c *gin.Context, status int, code, message string) {
	if status >= http.StatusInternalServerError {
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Str("code", code).
			Str("path", c.Request.URL.Path).
			Msg(message)
		message = http.StatusText(status)
	} else {
		log.Debug().
			Str("request_id", c.GetString("request_id")).
			Int("status", status).
			Str("code", code).
			Msg(message)
	}

	c.AbortWithStatusJSON(status, ErrorBody{
		Error: ErrorDetail{Code: code, Message: message, Status: status},
	})
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}
