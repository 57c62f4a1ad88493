package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("icon pack"))
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.URL, FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "icon pack" {
		t.Errorf("Fetch() = %q, want %q", data, "icon pack")
	}
	if !strings.HasPrefix(gotUA, UserAgentName+"/") {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(strings.Repeat("x", 32)))
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL+"/missing", FetchOptions{}); err == nil {
		t.Error("Fetch() expected error for 404")
	}
	if _, err := Fetch(context.Background(), srv.URL+"/big", FetchOptions{MaxBytes: 16}); err == nil {
		t.Error("Fetch() expected error for oversized body")
	}
}
