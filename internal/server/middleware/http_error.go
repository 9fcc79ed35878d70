package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler return custom http error handler.
func ErrorHandler(log Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		resp := &ResponseError{
			Status:  http.StatusInternalServerError,
			Success: false,
			Err:     err,
		}

		switch v := err.(type) {
		case *echo.HTTPError:
			resp.Status = v.Code
			resp.ErrorMessage = fmt.Sprint(v.Message)
		case *ResponseError:
			resp = v
		default:
			// detect canceled request error
			if errors.Is(err, context.Canceled) && c.Request().Context().Err() == context.Canceled {
				resp.Status = 499
			}
			resp.ErrorMessage = err.Error()
		}

		if err := c.JSON(resp.Status, resp); err != nil {
			log.Errorw("could not response", "code", resp.Status, "response_body", resp)
		}
	}
}
