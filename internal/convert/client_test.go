package convert

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simonhull/dawmark/internal/types"
)

var wav = []byte("RIFF\x04\x00\x00\x00WAVE")

func TestConvert_RawAudio(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != Endpoint || r.Method != http.MethodPost {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer k" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.Write(wav)
	}))
	defer srv.Close()

	markers := []types.Marker{{Time: 1.5, Label: "a", Color: types.RGB{R: 0xFF}}}
	req := NewRequest([]byte{1, 2, 3}, types.FormatMP3, "Mix.mp3", markers)

	out, err := New(srv.URL+"/", WithAPIKey("k")).Convert(context.Background(), req)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if string(out) != string(wav) {
		t.Errorf("out = %q", out)
	}
	if got.Format != "mp3" || got.FileName != "Mix.mp3" || string(got.Audio) != "\x01\x02\x03" {
		t.Errorf("request = %+v", got)
	}
	if len(got.Markers) != 1 || got.Markers[0] != (Marker{Time: 1.5, Label: "a", Color: "#FF0000"}) {
		t.Errorf("markers = %+v", got.Markers)
	}
}

func TestConvert_JSONEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(map[string]any{"audio": wav})
	}))
	defer srv.Close()

	out, err := New(srv.URL).Convert(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if string(out) != string(wav) {
		t.Errorf("out = %q", out)
	}
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name          string
		handler       http.HandlerFunc
		wantStatus    int
		wantTemporary bool
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(`{"error":"upstream down"}`))
			},
			wantStatus:    http.StatusBadGateway,
			wantTemporary: true,
		},
		{
			name: "bad request",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusBadRequest)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "envelope error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"error":"unsupported codec"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := New(srv.URL).Convert(context.Background(), Request{})
			if err == nil {
				t.Fatal("expected error")
			}
			var se *StatusError
			if tt.wantStatus == 0 {
				if errors.As(err, &se) {
					t.Errorf("unexpected StatusError %v", err)
				}
				return
			}
			if !errors.As(err, &se) {
				t.Fatalf("got %v, want *StatusError", err)
			}
			if se.Code != tt.wantStatus || se.Temporary() != tt.wantTemporary {
				t.Errorf("StatusError = %+v (temporary %v)", se, se.Temporary())
			}
		})
	}
}
