// Package response writes the JSON envelopes shared by every endpoint.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storeadmin/internal/apperror"
)

const internalMessage = "Internal Server Error"

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestId"

type ErrorEnvelope struct {
	OK          bool                  `json:"ok"`
	Message     string                `json:"message"`
	ErrorFields []apperror.FieldError `json:"errorFields,omitempty"`
}

// Error translates err into the error envelope and aborts the request.
// Errors that carry no kind are reported as 500.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := apperror.As(err)
	message := internalMessage
	status := http.StatusInternalServerError
	var fields []apperror.FieldError
	if typed != nil {
		status = typed.HTTPStatus()
		fields = typed.Fields()
		if m := typed.Message(); m != "" {
			message = m
		}
	}

	entry := logrus.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"status": status,
	})
	if requestID, ok := c.Get(RequestIDKey); ok {
		entry = entry.WithField("request_id", requestID)
	}
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.WithField("reason", message).Debug("request rejected")
	}

	c.AbortWithStatusJSON(status, ErrorEnvelope{
		OK:          false,
		Message:     message,
		ErrorFields: fields,
	})
}
