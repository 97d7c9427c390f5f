package common

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	guuid "github.com/google/uuid"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := GetNewLogger()
	logger.Warn.SetOutput(&buf)
	logger.Info.SetOutput(&buf)
	logger.Err.SetOutput(&buf)
	defer func() {
		logger.Warn.SetOutput(os.Stderr)
		logger.Info.SetOutput(os.Stderr)
		logger.Err.SetOutput(os.Stderr)
	}()
	logger.Warn.Println("Test Warn")
	logger.Info.Println("Test Info")
	logger.Err.Println("Test Err")
	if buf.Len() == 0 {
		t.Fatal("Loggers returned nothing")
	}
}

func TestRandomID(t *testing.T) {
	id := GetRandomID()
	if _, err := guuid.Parse(id); err != nil {
		t.Fatalf("Generated id is not a valid uuid: %v", err)
	}
	if id == GetRandomID() {
		t.Fatal("Generated ids must differ")
	}
}

func TestDecorateTimer(t *testing.T) {
	var buf bytes.Buffer
	logger := GetNewLogger()
	logger.Info.SetOutput(&buf)
	defer logger.Info.SetOutput(os.Stderr)

	h := Decorate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), Timer(logger))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("Decorated handler returned %v", rec.Code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("/metrics")) {
		t.Fatal("Timer must log the request url")
	}
}
