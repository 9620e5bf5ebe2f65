package response // import "github.com/storyworld/storyworld/http/response"

import (
	"net/http"

	"github.com/storyworld/storyworld/log"
	"go.uber.org/zap"
)

// Builder generates HTTP responses.
type Builder struct {
	w          http.ResponseWriter
	r          *http.Request
	statusCode int
	headers    map[string]string
	body       []byte
}

// New creates a new response builder.
func New(w http.ResponseWriter, r *http.Request) *Builder {
	return &Builder{
		w:          w,
		r:          r,
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// WithStatus uses the given status code to build the response.
func (b *Builder) WithStatus(statusCode int) *Builder {
	b.statusCode = statusCode
	return b
}

// WithHeader adds the given HTTP header to the response.
func (b *Builder) WithHeader(key, value string) *Builder {
	b.headers[key] = value
	return b
}

// WithBody uses the given body to build the response.
func (b *Builder) WithBody(body []byte) *Builder {
	b.body = body
	return b
}

// Write generates the response.
func (b *Builder) Write() {
	b.w.Header().Set("X-Content-Type-Options", "nosniff")
	b.w.Header().Set("X-Frame-Options", "DENY")
	for key, value := range b.headers {
		b.w.Header().Set(key, value)
	}
	b.w.WriteHeader(b.statusCode)

	if b.body != nil {
		if _, err := b.w.Write(b.body); err != nil {
			log.Error("Unable to write response body", zap.Error(err))
		}
	}
}
