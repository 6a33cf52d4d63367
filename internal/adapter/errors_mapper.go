// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// errorBody is the error envelope of the remote API.
type errorBody struct {
	Message string `json:"message"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	msg := remoteMessage(resp)

	switch resp.StatusCode() {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidationFailure, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrNetworkFailure, resp.StatusCode(), msg)
	}
}

// remoteMessage extracts the server message from a {"message": "..."} body,
// falls back to the raw body and then to the status text.
func remoteMessage(resp *resty.Response) string {
	body := strings.TrimSpace(string(resp.Body()))

	var envelope errorBody
	if err := json.Unmarshal([]byte(body), &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	if body == "" {
		return http.StatusText(resp.StatusCode())
	}
	return body
}
