package dawmark

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func TestExport_ConverterFuncStatusError(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		wantCalls int32
	}{
		{"client error is final", http.StatusBadRequest, 1},
		{"unprocessable is final", http.StatusUnprocessableEntity, 1},
		{"server error retries", http.StatusBadGateway, 3},
		{"rate limit retries", http.StatusTooManyRequests, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			conv := ConverterFunc(func(context.Context, ConversionRequest) ([]byte, error) {
				calls.Add(1)
				return nil, &ConversionStatusError{Code: tt.code, Message: "rejected"}
			})
			ex := New(WithConverter(conv), WithRetryCooldown(0, 1))

			res, err := ex.Export(context.Background(), Request{
				Source:       Source{Data: testMP3(), Name: "mix.mp3"},
				Annotations:  annotations(),
				ProjectTitle: "My Mix",
				Target:       TargetEmbeddedCues,
			})
			if err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("converter called %d times, want %d", got, tt.wantCalls)
			}
			if !res.Degraded {
				t.Error("Degraded = false")
			}
		})
	}
}

func TestNewConverter(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.Header.Get("Authorization"); got != "Bearer k3y" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "mix-tool" {
			t.Errorf("User-Agent = %q", got)
		}
		http.Error(w, "unsupported codec", http.StatusBadRequest)
	}))
	defer srv.Close()

	ex := New(
		WithConverter(NewConverter(srv.URL,
			WithConverterAPIKey("k3y"),
			WithConverterUserAgent("mix-tool"),
			WithConverterHTTPClient(srv.Client()),
		)),
		WithRetryCooldown(0, 1),
	)

	res, err := ex.Export(context.Background(), Request{
		Source:       Source{Data: testMP3(), Name: "mix.mp3"},
		Annotations:  annotations(),
		ProjectTitle: "My Mix",
		Target:       TargetEmbeddedCues,
	})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("service hit %d times, want 1", got)
	}
	if !res.Degraded || !strings.Contains(res.Reason, "HTTP 400") {
		t.Errorf("Degraded = %v, Reason = %q", res.Degraded, res.Reason)
	}
}

func TestSaveAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	files := []Artifact{
		{Name: "My Mix.mid", Data: []byte("MThd")},
		{Name: "My Mix - Markers.txt", Data: []byte("#\tTime\n")},
	}

	paths, err := SaveAll(context.Background(), dir, files, WithSaveValidation())
	if err != nil {
		t.Fatalf("SaveAll() error: %v", err)
	}
	if len(paths) != len(files) {
		t.Fatalf("got %d paths, want %d", len(paths), len(files))
	}
	for i, p := range paths {
		if filepath.Base(p) != files[i].Name {
			t.Errorf("paths[%d] = %s, want name %s", i, p, files[i].Name)
		}
		got, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if string(got) != string(files[i].Data) {
			t.Errorf("%s = %q, want %q", p, got, files[i].Data)
		}
	}
}
