package bgg

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"

	"github.com/meeplelab/go-bgg/internal/api"
	"github.com/meeplelab/go-bgg/internal/xmlcodec"
)

// errorEnvelope is the domain error document the service returns with a
// 200 status when a request is semantically wrong. The XMLName pins the
// root element so arbitrary documents do not decode vacuously.
type errorEnvelope struct {
	XMLName xml.Name `xml:"errors"`
	Errors  []struct {
		Message string `xml:"message"`
	} `xml:"error"`
}

// decodeEntity decodes body into T. When the body does not match T's
// shape it is retried as the service's error envelope; a well-formed
// envelope becomes an *APIError, anything else a *DecodeError wrapping
// the original structural failure.
func decodeEntity[T any](body []byte) (*T, error) {
	var v T
	structuralErr := xmlcodec.Unmarshal(body, &v)
	if structuralErr == nil {
		return &v, nil
	}

	var envelope errorEnvelope
	if err := xmlcodec.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		apiErr := &APIError{}
		for _, e := range envelope.Errors {
			apiErr.Messages = append(apiErr.Messages, e.Message)
		}
		return nil, apiErr
	}

	return nil, &DecodeError{Err: structuralErr}
}

// doGet executes a GET and classifies the final status. A lingering 202
// means the retry budget ran out; any other non-2xx status is terminal.
func doGet(ctx context.Context, t *api.Transport, path string, query url.Values) ([]byte, error) {
	resp, err := t.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusAccepted:
		return nil, &RetryExhaustedError{Attempts: resp.Attempts}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}
