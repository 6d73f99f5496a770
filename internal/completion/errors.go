package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pbrown/gptcli/internal/apperr"
)

// classify maps an SDK error onto the gptcli error kinds. Status errors are
// checked first because a non-JSON error body surfaces as a RequestError
// wrapping a json error.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fromStatus(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fromStatus(reqErr.HTTPStatusCode, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.Transport("request failed", err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apperr.MalformedResponse("cannot parse response", err)
	}

	return apperr.Transport("request failed", err)
}

func fromStatus(code int, err error) error {
	msg := fmt.Sprintf("status %d", code)
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return apperr.Auth("credential missing or rejected ("+msg+")", err)
	}
	return apperr.Transport(msg, err)
}
