package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Johnnypham7496/users-api/pkg/logger"
	"github.com/google/uuid"
)

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		start := time.Now()

		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
		}

		requestBody, err := getRequestBody(r)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				logger.Warn("Rejected oversized request body", "request_id", requestID, "limit", maxBytesErr.Limit)
				s.respondWithError(w, http.StatusRequestEntityTooLarge, ErrMsgRequestBodyTooLarge)
				return
			}
			s.respondWithError(w, http.StatusBadRequest, ErrMsgBadRequestInvalidRequestBody)
			return
		}

		logger.Info("Received request",
			"request_id", requestID,
			"client_ip", getClientIP(r),
			"method", r.Method,
			"endpoint", r.URL.Path,
			"body", requestBody,
		)

		r = r.WithContext(context.WithValue(r.Context(), contextKeyReqID, requestID))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("Completed request",
			"request_id", requestID,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyReqID).(string)
	return id
}

func getClientIP(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.RemoteAddr
	}

	ip = strings.TrimSpace(strings.Split(ip, ",")[0])
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return host
	}
	return ip
}

// getRequestBody reads the body for logging and puts it back for the handler.
// JSON bodies are compacted; anything else is logged as is.
func getRequestBody(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", nil
	}

	requestBodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}

	r.Body = io.NopCloser(bytes.NewBuffer(requestBodyBytes))

	compacted := &bytes.Buffer{}
	if err := json.Compact(compacted, requestBodyBytes); err != nil {
		return string(requestBodyBytes), nil
	}

	return compacted.String(), nil
}
