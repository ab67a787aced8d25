package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyStatus(t *testing.T) {
	Convey("Given error statuses produced by the selector routes", t, func() {
		cases := []struct {
			status   int
			class    string
			severity string
		}{
			{http.StatusBadRequest, "client_error", "medium"},
			{http.StatusNotFound, "not_found", "low"},
			{http.StatusUnprocessableEntity, "unselectable", "medium"},
			{http.StatusTooManyRequests, "rate_limit", "low"},
			{http.StatusInternalServerError, "server_error", "high"},
			{http.StatusServiceUnavailable, "unavailable", "high"},
			{http.StatusGatewayTimeout, "timeout", "high"},
		}

		Convey("Then each maps to its dashboard class", func() {
			for _, c := range cases {
				class, severity := classifyStatus(c.status)
				So(class, ShouldEqual, c.class)
				So(severity, ShouldEqual, c.severity)
			}
		})
	})
}

func TestStatusRecorder(t *testing.T) {
	Convey("Given a status recorder", t, func() {
		w := httptest.NewRecorder()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		Convey("When the header is written twice", func() {
			rec.WriteHeader(http.StatusUnprocessableEntity)
			rec.WriteHeader(http.StatusOK)

			Convey("Then the first status wins", func() {
				So(rec.status, ShouldEqual, http.StatusUnprocessableEntity)
			})
		})

		Convey("When the body is written without a header", func() {
			_, err := rec.Write([]byte("{}"))

			Convey("Then the implicit 200 is kept", func() {
				So(err, ShouldBeNil)
				So(rec.status, ShouldEqual, http.StatusOK)
				So(rec.Unwrap(), ShouldEqual, w)
			})
		})
	})
}
