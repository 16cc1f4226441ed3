/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

// Package model provides the small set of HTTP response primitives shared
// by the authorization handlers. It holds no domain types: those live in
// internal/authz/model.
package model

import (
	"encoding/json"
	"net/http"
)

// ImplResponse defines a handler response with a status code and a body to
// be JSON-encoded.
type ImplResponse struct {
	Code int
	Body interface{}
}

// Response creates an ImplResponse struct with the given status code and body.
func Response(code int, body interface{}) ImplResponse {
	return ImplResponse{
		Code: code,
		Body: body,
	}
}

// ResponseWithHeaders behaves like Response but also carries headers that
// the caller must copy onto the http.ResponseWriter before writing the body.
type ResponseWithHeaders struct {
	ImplResponse
	Headers map[string]string
}

// NewResponseWithHeaders wraps a Response with additional response headers.
func NewResponseWithHeaders(code int, body interface{}, headers map[string]string) ResponseWithHeaders {
	return ResponseWithHeaders{
		ImplResponse: Response(code, body),
		Headers:      headers,
	}
}

// EncodeJSONResponse writes i as a JSON body to w, defaulting the status
// code to 200 when status is nil.
func EncodeJSONResponse(i interface{}, status *int, w http.ResponseWriter) error {
	wHeader := w.Header()
	if _, exists := wHeader["Content-Type"]; !exists {
		wHeader.Set("Content-Type", "application/json; charset=UTF-8")
	}

	if status != nil {
		w.WriteHeader(*status)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if i == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(i)
}
