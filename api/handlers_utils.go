package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cgweb/market-proxy/coingecko"
)

// setCacheStatusHeader sets the Cache-Status header based on cache status
func (s *Server) setCacheStatusHeader(w http.ResponseWriter, cached bool) {
	if cached {
		w.Header().Set("Cache-Status", "hit")
	} else {
		w.Header().Set("Cache-Status", "miss")
	}
}

// sendJSONResponse is a common wrapper for JSON responses that sets Content-Type,
// Content-Length and ETag headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	// Marshal the data to calculate content length and ETag
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	// Calculate ETag (MD5 hash of the response)
	hash := md5.Sum(responseBytes)
	etag := hex.EncodeToString(hash[:])

	// Set headers
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	w.Header().Set("ETag", "\""+etag+"\"")

	// Write the response
	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing response: %v", err)
		return
	}
}

// sendError maps upstream and validation failures to HTTP statuses:
// bad input 400, unknown coin/currency 404, broken upstream reply 502,
// unreachable upstream 504
func (s *Server) sendError(w http.ResponseWriter, err error) {
	body := map[string]interface{}{"error": err.Error()}
	status := http.StatusInternalServerError

	var validationErr *coingecko.ValidationError
	var notFoundErr *coingecko.NotFoundError
	var statusErr *coingecko.StatusError
	var contentTypeErr *coingecko.ContentTypeError
	var networkErr *coingecko.NetworkError

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &statusErr):
		status = http.StatusBadGateway
		body["upstream_status"] = statusErr.StatusCode
		body["detail"] = statusErr.Snippet
	case errors.As(err, &contentTypeErr):
		status = http.StatusBadGateway
		body["detail"] = contentTypeErr.Snippet
	case errors.As(err, &networkErr):
		status = http.StatusGatewayTimeout
	}

	responseBytes, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, writeErr := w.Write(responseBytes); writeErr != nil {
		log.Printf("Error writing error response: %v", writeErr)
	}
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}

func getParamLowercase(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	value := r.URL.Query().Get(key)
	if value != "" {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return ""
}

// getParamInt parses an integer query param; absent or malformed values
// return 0 and are resolved by parameter normalization downstream
func getParamInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return value
}

func getParamBool(r *http.Request, key string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return false
	}
	return value
}
