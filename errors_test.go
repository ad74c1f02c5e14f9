package tmv1_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-tmv1"
)

func TestServerJSONError(t *testing.T) {
	err := &tmv1.ServerJSONError{Detail: tmv1.ErrorDetail{
		Status:  400,
		Code:    "BadRequest",
		Message: "Invalid alert id",
	}}
	assert.Equal(t, "tmv1: error response 400: code=BadRequest message=Invalid alert id", err.Error())
	assert.Equal(t, 400, err.HTTPStatus())
}

func TestServerMultiJSONError(t *testing.T) {
	err := &tmv1.ServerMultiJSONError{Details: []tmv1.ErrorDetail{
		{Status: 202, TaskID: "00000001"},
		{Status: 400, Code: "BadRequest"},
		{Status: 500},
	}}
	assert.Equal(t, "tmv1: multi-status response: 2 of 3 item(s) failed", err.Error())
	assert.Equal(t, 207, err.HTTPStatus())
}

func TestServerHTMLError(t *testing.T) {
	err := &tmv1.ServerHTMLError{StatusCode: 502, Text: "Bad Gateway"}
	assert.Equal(t, "tmv1: html error response 502: Bad Gateway", err.Error())
	assert.Equal(t, 502, err.HTTPStatus())
}

func TestServerTextError(t *testing.T) {
	err := &tmv1.ServerTextError{StatusCode: 503, Body: "unavailable"}
	assert.Equal(t, "tmv1: error response 503: unavailable", err.Error())
	assert.Equal(t, 503, err.HTTPStatus())
}

func TestParseModelError(t *testing.T) {
	err := &tmv1.ParseModelError{Model: "AlertPage", StatusCode: 200, ContentType: "text/plain", Body: "ok"}
	assert.Contains(t, err.Error(), "model=AlertPage")
	assert.Contains(t, err.Error(), "status=200")
	assert.Equal(t, 500, err.HTTPStatus())
}

func TestWrappingErrors(t *testing.T) {
	cause := errors.New("connection reset")

	t.Run("TransportError", func(t *testing.T) {
		err := &tmv1.TransportError{Err: cause}
		assert.Equal(t, "tmv1: transport error: connection reset", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("ValidationError", func(t *testing.T) {
		err := &tmv1.ValidationError{Message: "decoding AlertPage", Err: cause}
		assert.Equal(t, "tmv1: validation error: decoding AlertPage: connection reset", err.Error())
		assert.ErrorIs(t, err, cause)

		plain := &tmv1.ValidationError{Message: "alert ID must not be empty"}
		assert.Equal(t, "tmv1: validation error: alert ID must not be empty", plain.Error())
	})

	t.Run("RuntimeError", func(t *testing.T) {
		err := &tmv1.RuntimeError{Message: "recovered panic", Err: cause}
		var target *tmv1.RuntimeError
		require.ErrorAs(t, err, &target)
		assert.ErrorIs(t, err, cause)
	})
}
