package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

type brotliResponseWriter struct {
	http.ResponseWriter
	bw *brotli.Writer
}

func (w *brotliResponseWriter) Write(b []byte) (int, error) {
	return w.bw.Write(b)
}

// Compress serves brotli-encoded responses to clients that accept
// them. Content-Length is dropped because the body is rewritten.
func Compress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "br") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "br")
		w.Header().Del("Content-Length")

		bw := brotli.NewWriter(w)
		defer bw.Close()

		next.ServeHTTP(&brotliResponseWriter{ResponseWriter: w, bw: bw}, r)
	})
}
