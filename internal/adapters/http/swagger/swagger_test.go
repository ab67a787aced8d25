package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/smartystreets/goconvey/convey"
)

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, path, http.NoBody))
	return w
}

func TestRegister(t *testing.T) {
	convey.Convey("Given the docs routes on a fresh mux", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		convey.Convey("When fetching the raw document", func() {
			w := serve(mux, http.MethodGet, "/openapi.yaml")

			convey.Convey("Then the embedded bytes come back as YAML", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldStartWith, "application/yaml")
				convey.So(w.Body.Bytes(), convey.ShouldResemble, OpenAPI)
			})
		})

		convey.Convey("When opening the reference page", func() {
			body := serve(mux, http.MethodGet, "/api-docs").Body.String()

			convey.Convey("Then ReDoc is pointed at the document", func() {
				convey.So(body, convey.ShouldContainSubstring, "<title>Best XI Selector API</title>")
				convey.So(body, convey.ShouldContainSubstring, `src="`+ReDocURL+`"`)
				convey.So(body, convey.ShouldContainSubstring, "Redoc.init('/openapi.yaml'")
			})
		})

		convey.Convey("When using a method other than GET", func() {
			convey.Convey("Then both routes answer 404", func() {
				convey.So(serve(mux, http.MethodPost, "/openapi.yaml").Code, convey.ShouldEqual, http.StatusNotFound)
				convey.So(serve(mux, http.MethodDelete, "/api-docs").Code, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})

	convey.Convey("Given no mux", t, func() {
		convey.So(func() { Register(context.Background(), nil) }, convey.ShouldPanic)
	})
}

func TestOpenAPIDocument(t *testing.T) {
	convey.Convey("Given the embedded OpenAPI document", t, func() {
		doc, err := yaml.Parser().Unmarshal(OpenAPI)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then it describes every selector route", func() {
			paths, ok := doc["paths"].(map[string]interface{})
			convey.So(ok, convey.ShouldBeTrue)
			for _, p := range []string{"/", "/best-xi", "/venues", "/healthz", "/stats"} {
				convey.So(paths, convey.ShouldContainKey, p)
			}
		})

		convey.Convey("Then the serve error names the package", func() {
			convey.So(ErrServe.Error(), convey.ShouldEqual, "swagger serve failed")
		})
	})
}
