package http

import (
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "scrutiny/internal/platform/errors"
)

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

func TestHandle_OKEnvelope(t *testing.T) {
	t.Parallel()

	h := Handle(func(r *stdhttp.Request) Response {
		return OK(map[string]string{"hello": "world"})
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.StatusCode != 200 || env.Status != "OK" || env.Error != "" {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Data == nil {
		t.Fatalf("envelope has no data")
	}
}

func TestHandle_ErrorDerivesStatus(t *testing.T) {
	t.Parallel()

	h := Handle(func(r *stdhttp.Request) Response {
		return Error(perr.Forbiddenf("transmission blocked due to policy violations"))
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/", nil))

	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Error != "transmission blocked due to policy violations" {
		t.Fatalf("error message = %q", env.Error)
	}
	if env.Data != nil {
		t.Fatalf("error envelope carries data: %+v", env.Data)
	}
}

func TestHandle_ValidationStatus(t *testing.T) {
	t.Parallel()

	h := Handle(func(r *stdhttp.Request) Response {
		return Error(perr.Validationf("text is required"))
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/", nil))

	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestJSONHandler_BindsAndValidates(t *testing.T) {
	t.Parallel()

	type input struct {
		Text string `json:"text" validate:"required"`
	}
	h := JSONHandler(func(r *stdhttp.Request, in input) (any, error) {
		return map[string]string{"echo": in.Text}, nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/", jsonBody(`{"text":"hi"}`)))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/", jsonBody(`{}`)))
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("missing field status = %d", rec.Code)
	}
}
