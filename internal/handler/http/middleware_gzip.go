package http

import (
	"compress/gzip"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

var (
	gzipWriters = sync.Pool{New: func() any { return gzip.NewWriter(nil) }}
	gzipReaders = sync.Pool{New: func() any { return new(gzip.Reader) }}
)

// withGZip inflates gzip request bodies and deflates responses for clients
// that list gzip in Accept-Encoding. A corrupt body is a 400.
func (h *Handler) withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasEncoding(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			body, err := newGzipBody(r)
			if err != nil {
				h.fail(w, r, fmt.Errorf("%w: invalid gzip data: %w", ErrInvalidRequestBody, err))
				return
			}
			r.Body = body
			r.Header.Del("Content-Encoding")
			r.ContentLength = -1
		}

		if !hasEncoding(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gw := &gzipResponseWriter{ResponseWriter: w}
		defer gw.finish()
		next.ServeHTTP(gw, r)
	})
}

// hasEncoding reports whether the comma separated header lists coding,
// ignoring quality parameters.
func hasEncoding(header, coding string) bool {
	for part := range strings.SplitSeq(header, ",") {
		name, _, _ := strings.Cut(part, ";")
		if strings.EqualFold(strings.TrimSpace(name), coding) {
			return true
		}
	}
	return false
}

type gzipBody struct {
	zr   *gzip.Reader
	orig interface{ Close() error }
}

func newGzipBody(r *http.Request) (*gzipBody, error) {
	zr := gzipReaders.Get().(*gzip.Reader)
	if err := zr.Reset(r.Body); err != nil {
		gzipReaders.Put(zr)
		return nil, err
	}
	return &gzipBody{zr: zr, orig: r.Body}, nil
}

func (b *gzipBody) Read(p []byte) (int, error) { return b.zr.Read(p) }

func (b *gzipBody) Close() error {
	if b.zr == nil {
		return nil
	}
	_ = b.zr.Close()
	gzipReaders.Put(b.zr)
	b.zr = nil
	return b.orig.Close()
}

// gzipResponseWriter takes a pooled compressor on the first header write,
// so handlers that write nothing produce an empty body.
type gzipResponseWriter struct {
	http.ResponseWriter
	zw *gzip.Writer
}

func (g *gzipResponseWriter) WriteHeader(code int) {
	if g.zw != nil {
		return
	}
	h := g.Header()
	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")
	h.Del("Content-Length")

	g.zw = gzipWriters.Get().(*gzip.Writer)
	g.zw.Reset(g.ResponseWriter)
	g.ResponseWriter.WriteHeader(code)
}

func (g *gzipResponseWriter) Write(p []byte) (int, error) {
	if g.zw == nil {
		g.WriteHeader(http.StatusOK)
	}
	return g.zw.Write(p)
}

func (g *gzipResponseWriter) finish() {
	if g.zw == nil {
		return
	}
	_ = g.zw.Close()
	gzipWriters.Put(g.zw)
	g.zw = nil
}
