package relay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type upstream struct {
	*httptest.Server
	hits atomic.Int32
}

func newUpstream() *upstream {
	u := &upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		port := r.Host[strings.LastIndex(r.Host, ":")+1:]

		switch r.URL.Path {
		case "/sub.vtt":
			w.Header().Set("Content-Type", "text/vtt")
			_, _ = w.Write([]byte("WEBVTT"))
		case "/hop":
			http.Redirect(w, r, "/sub.vtt", http.StatusFound)
		case "/away":
			http.Redirect(w, r, fmt.Sprintf("http://localhost:%s/sub.vtt", port), http.StatusFound)
		case "/loop":
			http.Redirect(w, r, "/loop", http.StatusFound)
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		case "/chunked":
			for i := 0; i < 8; i++ {
				_, _ = w.Write([]byte(strings.Repeat("y", 8)))
				w.(http.Flusher).Flush()
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return u
}

func TestAllowlist(t *testing.T) {
	Convey("Given an allowlist", t, func() {
		a := NewAllowlist([]string{" Example.COM. ", "", "cdn.net", "cdn.net"})
		So(a.Domains(), ShouldResemble, []string{"example.com", "cdn.net"})

		So(a.Allowed("example.com"), ShouldBeTrue)
		So(a.Allowed("media.example.com"), ShouldBeTrue)
		So(a.Allowed("MEDIA.Example.com."), ShouldBeTrue)
		So(a.Allowed("badexample.com"), ShouldBeFalse)
		So(a.Allowed("example.com.evil.org"), ShouldBeFalse)
		So(a.Allowed(""), ShouldBeFalse)

		Convey("An empty allowlist denies everything", func() {
			So(NewAllowlist(nil).Allowed("example.com"), ShouldBeFalse)
		})
	})
}

func TestRelay(t *testing.T) {
	ctx := context.Background()

	Convey("Given an upstream on 127.0.0.1", t, func() {
		up := newUpstream()
		defer up.Close()

		g := New(Options{Allowlist: []string{"127.0.0.1"}, MaxPayload: 32})

		Convey("An allowed target is returned with its content type", func() {
			p, err := g.Relay(ctx, up.URL+"/sub.vtt")
			So(err, ShouldBeNil)
			So(p.ContentType, ShouldEqual, "text/vtt")
			So(string(p.Body), ShouldEqual, "WEBVTT")
		})

		Convey("Redirects inside the allowlist are followed", func() {
			p, err := g.Relay(ctx, up.URL+"/hop")
			So(err, ShouldBeNil)
			So(string(p.Body), ShouldEqual, "WEBVTT")
			So(int(up.hits.Load()), ShouldEqual, 2)
		})

		Convey("A host outside the allowlist is rejected before any fetch", func() {
			_, err := g.Relay(ctx, strings.Replace(up.URL, "127.0.0.1", "localhost", 1)+"/sub.vtt")
			So(errors.Is(err, ErrDisallowedHost), ShouldBeTrue)
			So(StatusCode(err), ShouldEqual, http.StatusForbidden)
			So(int(up.hits.Load()), ShouldEqual, 0)
		})

		Convey("A redirect to a host outside the allowlist is rejected after the fetch", func() {
			_, err := g.Relay(ctx, up.URL+"/away")
			So(errors.Is(err, ErrDisallowedRedirect), ShouldBeTrue)
			So(StatusCode(err), ShouldEqual, http.StatusForbidden)
			So(int(up.hits.Load()), ShouldEqual, 1)
		})

		Convey("Redirect loops stop at the hop limit", func() {
			_, err := g.Relay(ctx, up.URL+"/loop")
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)
			So(int(up.hits.Load()), ShouldEqual, DefaultMaxRedirects+1)
		})

		Convey("A declared oversized body is rejected", func() {
			p, err := g.Relay(ctx, up.URL+"/big")
			So(errors.Is(err, ErrPayloadTooLarge), ShouldBeTrue)
			So(p, ShouldBeNil)
			So(StatusCode(err), ShouldEqual, http.StatusRequestEntityTooLarge)
		})

		Convey("A streamed oversized body is rejected without partial bytes", func() {
			p, err := g.Relay(ctx, up.URL+"/chunked")
			So(errors.Is(err, ErrPayloadTooLarge), ShouldBeTrue)
			So(p, ShouldBeNil)
		})

		Convey("Error statuses are upstream failures", func() {
			_, err := g.Relay(ctx, up.URL+"/missing")
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)
			So(StatusCode(err), ShouldEqual, http.StatusInternalServerError)
		})

		Convey("Malformed and non-http targets are invalid", func() {
			for _, target := range []string{"", "::", "file:///etc/passwd", "ftp://127.0.0.1/x", "http://"} {
				_, err := g.Relay(ctx, target)
				So(errors.Is(err, ErrInvalidURL), ShouldBeTrue)
				So(StatusCode(err), ShouldEqual, http.StatusBadRequest)
			}
			So(int(up.hits.Load()), ShouldEqual, 0)
		})
	})

	Convey("An unreachable upstream is an upstream failure", t, func() {
		up := newUpstream()
		target := up.URL + "/sub.vtt"
		up.Close()

		_, err := New(Options{Allowlist: []string{"127.0.0.1"}}).Relay(ctx, target)
		So(errors.Is(err, ErrUpstream), ShouldBeTrue)
		So(Outcome(err), ShouldEqual, "upstream")
	})
}

func TestServeHTTP(t *testing.T) {
	Convey("Given a gateway handler", t, func() {
		up := newUpstream()
		defer up.Close()

		g := New(Options{Allowlist: []string{"127.0.0.1"}, MaxPayload: 32})
		serve := func(method, target string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			g.ServeHTTP(rec, httptest.NewRequest(method, "/relay?url="+url.QueryEscape(target), nil))
			return rec
		}

		Convey("Success answers 200 with the upstream type", func() {
			rec := serve(http.MethodGet, up.URL+"/sub.vtt")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get("Content-Type"), ShouldEqual, "text/vtt")
			So(rec.Body.String(), ShouldEqual, "WEBVTT")
		})

		Convey("Failures map to distinct statuses", func() {
			So(serve(http.MethodGet, "").Code, ShouldEqual, http.StatusBadRequest)
			So(serve(http.MethodGet, "http://evil.org/x").Code, ShouldEqual, http.StatusForbidden)
			So(serve(http.MethodGet, up.URL+"/big").Code, ShouldEqual, http.StatusRequestEntityTooLarge)
			So(serve(http.MethodGet, up.URL+"/missing").Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("Other methods are refused", func() {
			So(serve(http.MethodPost, up.URL+"/sub.vtt").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestRewrite(t *testing.T) {
	Convey("Rewrite routes a link through the gateway", t, func() {
		out, err := Rewrite("https://relay.example.org/relay", "https://cdn.net/a b.mkv?x=1")
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "https://relay.example.org/relay?url=https%3A%2F%2Fcdn.net%2Fa+b.mkv%3Fx%3D1")

		_, err = Rewrite("relay", "https://cdn.net/a.mkv")
		So(errors.Is(err, ErrInvalidURL), ShouldBeTrue)
	})
}
