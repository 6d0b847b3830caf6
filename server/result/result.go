// Package result builds the HTTP responses the slrd history server writes.
// Endpoint functions return a Result value describing the outcome of one
// request (the status, the response body, and an internal log message that
// is never shown to the client); the api package's Endpoint wrapper is the
// only place a Result is actually serialized and written out.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Result is the outcome of one API request. A zero Result is not valid;
// build one with OK, Created, NoContent, or one of the error constructors.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp interface{}
	hdrs [][2]string

	// set by calling PrepareMarshaledResponse.
	respJSONBytes []byte
}

// ErrorResponse is the JSON body written for every error Result, so that
// clients always get the same error shape regardless of which endpoint
// failed.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// internalMsg arguments on the constructors below are an optional format
// string plus args for the internal log line; defaultMsg is used when the
// caller gives none.
func fmtInternal(defaultMsg string, internalMsg []interface{}) string {
	if len(internalMsg) < 1 {
		return defaultMsg
	}
	return fmt.Sprintf(internalMsg[0].(string), internalMsg[1:]...)
}

// OK returns an HTTP-200 Result carrying respObj as its JSON body.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	return Response(http.StatusOK, respObj, "%s", fmtInternal("OK", internalMsg))
}

// Created returns an HTTP-201 Result carrying respObj as its JSON body.
func Created(respObj interface{}, internalMsg ...interface{}) Result {
	return Response(http.StatusCreated, respObj, "%s", fmtInternal("created", internalMsg))
}

// NoContent returns an HTTP-204 Result with no body.
func NoContent(internalMsg ...interface{}) Result {
	return Response(http.StatusNoContent, nil, "%s", fmtInternal("no content", internalMsg))
}

// BadRequest returns an HTTP-400 Result. userMsg is shown to the client.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	return Err(http.StatusBadRequest, userMsg, "%s", fmtInternal("bad request", internalMsg))
}

// NotFound returns an HTTP-404 Result with a generic client message.
func NotFound(internalMsg ...interface{}) Result {
	return Err(http.StatusNotFound, "The requested resource was not found", "%s", fmtInternal("not found", internalMsg))
}

// Unauthorized returns an HTTP-401 Result along with the proper
// WWW-Authenticate challenge for slrd's bearer-token scheme. If userMsg is
// empty a generic client message is used.
func Unauthorized(userMsg string, internalMsg ...interface{}) Result {
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}

	return Err(http.StatusUnauthorized, userMsg, "%s", fmtInternal("unauthorized", internalMsg)).
		WithHeader("WWW-Authenticate", `Bearer realm="slrd", charset="utf-8"`)
}

// InternalServerError returns an HTTP-500 Result with a generic client
// message; the real cause goes only to the internal log message.
func InternalServerError(internalMsg ...interface{}) Result {
	return Err(http.StatusInternalServerError, "An internal server error occurred", "%s", fmtInternal("internal server error", internalMsg))
}

// Response returns a non-error Result with the given status and JSON body.
// If status is http.StatusNoContent, respObj is not read and may be nil;
// otherwise it must be JSON-marshalable. Additional values are given to
// internalMsg as a format string.
func Response(status int, respObj interface{}, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        respObj,
	}
}

// Err returns an error Result whose JSON body is an ErrorResponse carrying
// userMsg. Additional values are given to internalMsg as a format string.
func Err(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// TextErr is like Err but writes userMsg as plain text with no JSON
// encoding of any kind. It is used on paths where JSON marshaling itself
// cannot be trusted, such as the panic handler.
func TextErr(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        userMsg,
	}
}

// WithHeader returns a copy of r that additionally writes the given header
// when the response is written.
func (r Result) WithHeader(name, val string) Result {
	r.hdrs = append(append([][2]string{}, r.hdrs...), [2]string{name, val})
	return r
}

// PrepareMarshaledResponse marshals the JSON body ahead of writing it, so
// that a marshal failure can be turned into a clean error response instead
// of a half-written one. It is a no-op for non-JSON Results, HTTP-204, and
// Results already prepared.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}

	if r.IsJSON && r.Status != http.StatusNoContent {
		var err error
		r.respJSONBytes, err = json.Marshal(r.resp)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteResponse writes r to w: headers, status, then body. It panics if r
// was never populated or if the body cannot be marshaled; callers that
// need to survive a marshal failure must call PrepareMarshaledResponse
// first and handle its error.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	if err := r.PrepareMarshaledResponse(); err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	var respBytes []byte

	if r.IsJSON {
		w.Header().Set("Content-Type", "application/json")
		respBytes = r.respJSONBytes
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if r.Status != http.StatusNoContent {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)

	if r.Status != http.StatusNoContent {
		w.Write(respBytes)
	}
}
