package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/simonhull/dawmark/internal/types"
)

const payload = "RIFF\x24\x00\x00\x00WAVEfmt payload bytes"

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := New(WithUserAgent("test-agent"))
	data, err := c.Fetch(context.Background(), srv.URL+"/a.wav?sig=1")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != payload {
		t.Errorf("data = %q", data)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestFetchRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "a.wav", time.Time{}, strings.NewReader(payload))
	}))
	defer srv.Close()

	data, err := New().FetchRange(context.Background(), srv.URL, 0, 12)
	if err != nil {
		t.Fatalf("FetchRange failed: %v", err)
	}
	if string(data) != payload[:12] {
		t.Errorf("data = %q, want %q", data, payload[:12])
	}
}

func TestFetchRange_ServerIgnoresRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	data, err := New().FetchRange(context.Background(), srv.URL, 4, 4)
	if err != nil {
		t.Fatalf("FetchRange failed: %v", err)
	}
	if string(data) != payload[4:8] {
		t.Errorf("data = %q, want %q", data, payload[4:8])
	}
}

func TestFetch_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/slow":
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		default:
			w.Write([]byte(payload))
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		url     string
		client  *Client
		wantErr error
	}{
		{"not found", context.Background(), srv.URL + "/missing?X-Amz-Signature=secret", New(), nil},
		{"timeout", ctx, srv.URL + "/slow", New(), context.DeadlineExceeded},
		{"too large", context.Background(), srv.URL + "/big", New(WithMaxSize(8)), errTooLarge},
		{"bad scheme", context.Background(), "ftp://x/y.wav", New(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.client.Fetch(tt.ctx, tt.url)
			var fe *types.FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("got %v, want *FetchError", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if strings.Contains(err.Error(), "secret") {
				t.Errorf("error leaks query string: %v", err)
			}
		})
	}
}

func TestFetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New()
	data, err := c.Fetch(context.Background(), "file://"+path)
	if err != nil || string(data) != payload {
		t.Fatalf("Fetch = %q, %v", data, err)
	}

	head, err := c.FetchRange(context.Background(), "file://"+path, 0, 4)
	if err != nil || string(head) != "RIFF" {
		t.Errorf("FetchRange = %q, %v", head, err)
	}

	short, err := c.FetchRange(context.Background(), "file://"+path, int64(len(payload)-2), 12)
	if err != nil || len(short) != 2 {
		t.Errorf("FetchRange past EOF = %q, %v", short, err)
	}
}
