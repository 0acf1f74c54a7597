// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for inkwell: the typed RPC
// procedures under /api/rpc and the server-rendered public site. Handlers
// receive their dependencies through the handler struct.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"inkwell/internal/store"
)

// maxInputBytes caps the size of a mutation body.
const maxInputBytes = 1 << 20

// Error codes carried in the response envelope.
const (
	codeBadRequest         = "BAD_REQUEST"
	codeNotFound           = "NOT_FOUND"
	codeConflict           = "CONFLICT"
	codeMethodNotSupported = "METHOD_NOT_SUPPORTED"
	codeInternal           = "INTERNAL_SERVER_ERROR"
)

type kind string

const (
	kindQuery    kind = "query"
	kindMutation kind = "mutation"
)

// method returns the HTTP method a procedure of this kind is called with.
func (k kind) method() string {
	if k == kindMutation {
		return http.MethodPost
	}
	return http.MethodGet
}

// procedure is a registered RPC endpoint. call decodes and validates the
// raw JSON input before running the typed handler.
type procedure struct {
	kind kind
	call func(ctx context.Context, raw []byte) (any, error)
}

// validator is implemented by inputs that check themselves. validate
// returns an empty string when the input is acceptable.
type validator interface {
	validate() string
}

// handle adapts a typed function into a procedure.
func handle[In, Out any](k kind, fn func(context.Context, In) (Out, error)) procedure {
	return procedure{
		kind: k,
		call: func(ctx context.Context, raw []byte) (any, error) {
			var in In
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &in); err != nil {
					return nil, badRequest("Invalid input: " + err.Error())
				}
			}
			if v, ok := any(in).(validator); ok {
				if msg := v.validate(); msg != "" {
					return nil, badRequest(msg)
				}
			}
			out, err := fn(ctx, in)
			if err != nil {
				return nil, err
			}
			return out, nil
		},
	}
}

// rpcError is an error with a transport status and code.
type rpcError struct {
	status  int
	code    string
	message string
}

func (e *rpcError) Error() string {
	return e.code + ": " + e.message
}

func badRequest(msg string) *rpcError {
	return &rpcError{status: http.StatusBadRequest, code: codeBadRequest, message: msg}
}

func notFound(msg string) *rpcError {
	return &rpcError{status: http.StatusNotFound, code: codeNotFound, message: msg}
}

func internalError(msg string) *rpcError {
	return &rpcError{status: http.StatusInternalServerError, code: codeInternal, message: msg}
}

// classify turns store sentinel errors into transport errors carrying the
// given messages. Other errors pass through unchanged.
func classify(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case store.IsNotFound(err):
		return notFound(notFoundMsg)
	case store.IsConflict(err):
		return &rpcError{status: http.StatusConflict, code: codeConflict, message: conflictMsg}
	default:
		return err
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Result any        `json:"result,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

// readInput extracts the raw JSON input: the "input" query parameter for
// queries, the request body for mutations.
func readInput(w http.ResponseWriter, r *http.Request, k kind) ([]byte, error) {
	if k == kindQuery {
		return []byte(r.URL.Query().Get("input")), nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInputBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, badRequest(fmt.Sprintf("Input is too large (max %d bytes).", tooLarge.Limit))
		}
		return nil, badRequest("Could not read request body.")
	}
	return body, nil
}

// writeResult writes a successful envelope.
func writeResult(w http.ResponseWriter, result any) {
	writeJSON(w, http.StatusOK, envelope{Result: result})
}

// writeError maps err to an error envelope. Unclassified errors are logged
// and reported without detail.
func writeError(w http.ResponseWriter, name string, err error) {
	var rerr *rpcError
	if !errors.As(err, &rerr) {
		slog.Error("rpc procedure failed", "procedure", name, "error", err)
		rerr = internalError("Internal server error.")
	}
	writeJSON(w, rerr.status, envelope{Error: &errorBody{Code: rerr.code, Message: rerr.message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write json response failed", "error", err)
	}
}
