// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

// New creates a backend API implementation talking to the given base URL.
// The token source is consulted on every request.
func New(baseURL string, tokens TokenSource) API {
	return newHTTP(baseURL, tokens)
}
