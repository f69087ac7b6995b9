package ringtone

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"chime/internal/model"
)

func TestEnhanceQuery(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"Gym session", "Gym session workout motivation music energetic songs"},
		{"Deep Study", "Deep Study focus study music concentration instrumental"},
		{"relax time", "relax time meditation relaxing music peaceful instrumental"},
		{"Wake up!", "Wake up! morning wake up music energetic songs"},
		{"Birthday reminder", "Birthday reminder birthday celebration party songs happy music"},
		{"bollywood hits", "bollywood hits bollywood hindi indian songs music"},
		{"pop anthems", "pop anthems english pop songs western music"},
		{"dentist", "dentist music songs"},
	}
	for _, tc := range cases {
		if got := EnhanceQuery(tc.query); got != tc.want {
			t.Errorf("EnhanceQuery(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}

func newTestResolver(t *testing.T, handler http.HandlerFunc) *YouTubeResolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewYouTubeResolverWithBaseURL("test-key", srv.URL)
}

func TestSearch(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/youtube/v3/search" {
			t.Errorf("unexpected path %q", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("key") != "test-key" || q.Get("type") != "video" || q.Get("maxResults") != "10" {
			t.Errorf("unexpected query params: %v", q)
		}
		if q.Get("q") != "Morning run morning wake up music energetic songs" {
			t.Errorf("query not enhanced: %q", q.Get("q"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [
			{"id": {"videoId": "abc"}, "snippet": {"title": "First", "thumbnails": {"medium": {"url": "http://t/m.jpg"}}}},
			{"id": {"videoId": "def"}, "snippet": {"title": "Second", "thumbnails": {"default": {"url": "http://t/d.jpg"}}}}
		]}`))
	})

	videos, err := r.Search(context.Background(), "Morning run")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}
	if videos[0].MediaID != "abc" || videos[0].Title != "First" || videos[0].ThumbnailURL != "http://t/m.jpg" {
		t.Errorf("unexpected first candidate: %+v", videos[0])
	}
	// Falls back to the default thumbnail when medium is missing.
	if videos[1].ThumbnailURL != "http://t/d.jpg" {
		t.Errorf("unexpected second thumbnail: %q", videos[1].ThumbnailURL)
	}
}

func TestSearchNoResults(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": []}`))
	})

	_, err := r.Search(context.Background(), "obscure")
	if model.ErrorCode(err) != model.ErrResolver {
		t.Fatalf("expected resolver error, got %v", err)
	}
}

func TestSearchStatusErrors(t *testing.T) {
	for _, status := range []int{400, 403, 500} {
		r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(status)
		})
		_, err := r.Search(context.Background(), "anything")
		if model.ErrorCode(err) != model.ErrResolver {
			t.Errorf("status %d: expected resolver error, got %v", status, err)
		}
	}
}

func TestSearchAPIErrorBody(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": {"message": "keyInvalid"}}`))
	})

	_, err := r.Search(context.Background(), "anything")
	if model.ErrorCode(err) != model.ErrResolver {
		t.Fatalf("expected resolver error, got %v", err)
	}
	if model.ErrorDescription(err) != "keyInvalid" {
		t.Errorf("error body not surfaced verbatim: %q", model.ErrorDescription(err))
	}
}

func TestSearchMissingKey(t *testing.T) {
	r := NewYouTubeResolver("")
	_, err := r.Search(context.Background(), "anything")
	if model.ErrorCode(err) != model.ErrResolver {
		t.Fatalf("expected resolver error, got %v", err)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	r := NewYouTubeResolver("key")
	_, err := r.Search(context.Background(), "  ")
	if model.ErrorCode(err) != model.ErrResolver {
		t.Fatalf("expected resolver error, got %v", err)
	}
}
