package network

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cinelink/cinelink/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewClient(t *testing.T) {
	Convey("Given a local upstream", t, func() {
		var agent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agent = r.Header.Get("User-Agent")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		for _, fingerprint := range []bool{false, true} {
			client := NewClient(5*time.Second, fingerprint)
			So(client.Timeout, ShouldEqual, 5*time.Second)

			resp, err := client.Get(srv.URL)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNoContent)
			So(agent, ShouldEqual, constant.UserAgent)
		}

		Convey("An explicit User-Agent is kept", func() {
			req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
			req.Header.Set("User-Agent", "custom")
			resp, err := NewClient(time.Second, false).Do(req)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()
			So(agent, ShouldEqual, "custom")
		})
	})
}

func TestNewTransport(t *testing.T) {
	Convey("NewTransport raises pool limits", t, func() {
		tr := NewTransport()
		So(tr.MaxIdleConnsPerHost, ShouldEqual, 100)
		So(tr.IdleConnTimeout, ShouldEqual, 30*time.Second)
	})
}
