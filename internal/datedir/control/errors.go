package control

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/datedir/internal/datedir/domain"
)

// ErrUnavailable is returned by the client when no daemon answers on the socket.
var ErrUnavailable = errors.New("datedir daemon is not running")

// ErrorBody is the wire form of a failed operation.
type ErrorBody struct {
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidPath:
		return http.StatusBadRequest
	case domain.KindPermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func bodyFor(err error) ErrorBody {
	return ErrorBody{
		Message:   domain.MessageOf(err),
		ErrorType: domain.KindOf(err).String(),
	}
}

func abortWithError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	_ = c.Error(err)
	c.Set(errorTypeKey, kind.String())
	c.AbortWithStatusJSON(statusFor(kind), bodyFor(err))
}

func badRequest(c *gin.Context, message string, err error) {
	abortWithError(c, domain.Wrap(domain.KindInvalidPath, message, err))
}

// decodeError turns a non-2xx response back into a *domain.Error of the same kind.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body ErrorBody
	if err := json.Unmarshal(data, &body); err != nil || body.ErrorType == "" {
		return domain.New(domain.KindUnknown, fmt.Sprintf("unexpected response %s", resp.Status))
	}
	return domain.New(domain.ParseKind(body.ErrorType), body.Message)
}
