// Package ringtone resolves free-text alarm labels to playable media via the
// YouTube Data API v3.
package ringtone

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"

	"chime/internal/model"
)

// Video is one ranked search candidate.
type Video struct {
	MediaID      string `json:"mediaId"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Resolver turns a free-text query into ranked media candidates.
type Resolver interface {
	Search(ctx context.Context, query string) ([]Video, error)
}

const defaultBaseURL = "https://www.googleapis.com"

// YouTubeResolver implements Resolver against the YouTube Data API v3.
type YouTubeResolver struct {
	http   *resty.Client
	apiKey string
}

var _ Resolver = (*YouTubeResolver)(nil)

// NewYouTubeResolver returns a resolver using the given API key.
func NewYouTubeResolver(apiKey string) *YouTubeResolver {
	return NewYouTubeResolverWithBaseURL(apiKey, defaultBaseURL)
}

// NewYouTubeResolverWithBaseURL overrides the API host, for tests.
func NewYouTubeResolverWithBaseURL(apiKey, baseURL string) *YouTubeResolver {
	r := resty.New()
	r.SetBaseURL(baseURL)
	r.SetHeader("Accept", "application/json")
	return &YouTubeResolver{http: r, apiKey: apiKey}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Search queries for up to 10 candidate videos for query, enhanced with
// label-derived keywords. All failure modes map to resolver errors with
// user-readable descriptions.
func (r *YouTubeResolver) Search(ctx context.Context, query string) ([]Video, error) {
	if strings.TrimSpace(query) == "" {
		return nil, model.Errorf(model.ErrResolver, "query is required")
	}
	if r.apiKey == "" {
		return nil, model.Errorf(model.ErrResolver, "YouTube API key not configured; set youtube_api_key in the config or CHIME_YOUTUBE_API_KEY")
	}

	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"type":       "video",
			"q":          EnhanceQuery(query),
			"maxResults": "10",
			"key":        r.apiKey,
		}).
		SetResult(&searchResponse{}).
		Get("/youtube/v3/search")
	if err != nil {
		return nil, model.Errorf(model.ErrResolver, "search request failed: %v", err)
	}

	switch {
	case resp.StatusCode() == 400:
		return nil, model.Errorf(model.ErrResolver, "invalid API request; check your API key and that YouTube Data API v3 is enabled")
	case resp.StatusCode() == 403:
		return nil, model.Errorf(model.ErrResolver, "API quota exceeded or access forbidden; check your API key permissions")
	case resp.IsError():
		return nil, model.Errorf(model.ErrResolver, "YouTube API error: %d", resp.StatusCode())
	}

	result, ok := resp.Result().(*searchResponse)
	if !ok {
		return nil, model.Errorf(model.ErrResolver, "failed to parse search response")
	}
	if result.Error.Message != "" {
		return nil, model.Errorf(model.ErrResolver, "%s", result.Error.Message)
	}
	if len(result.Items) == 0 {
		return nil, model.Errorf(model.ErrResolver, "no videos found for this search; try a different label")
	}

	videos := make([]Video, 0, len(result.Items))
	for _, item := range result.Items {
		thumb := item.Snippet.Thumbnails.Medium.URL
		if thumb == "" {
			thumb = item.Snippet.Thumbnails.Default.URL
		}
		videos = append(videos, Video{
			MediaID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			ThumbnailURL: thumb,
		})
	}
	return videos, nil
}

// enhancement buckets keyed by substrings of the lowercased label.
var enhancements = []struct {
	keywords []string
	suffix   string
}{
	{[]string{"workout", "gym", "exercise"}, " workout motivation music energetic songs"},
	{[]string{"study", "focus", "work"}, " focus study music concentration instrumental"},
	{[]string{"meditation", "relax", "calm"}, " meditation relaxing music peaceful instrumental"},
	{[]string{"morning", "wake", "alarm"}, " morning wake up music energetic songs"},
	{[]string{"birthday", "celebration", "party"}, " birthday celebration party songs happy music"},
	{[]string{"bollywood", "hindi", "indian"}, " bollywood hindi indian songs music"},
	{[]string{"english", "pop", "western"}, " english pop songs western music"},
}

// EnhanceQuery appends contextual keywords derived from the alarm label so
// the search favors playable music over arbitrary matches.
func EnhanceQuery(query string) string {
	label := strings.ToLower(query)
	for _, e := range enhancements {
		for _, kw := range e.keywords {
			if strings.Contains(label, kw) {
				return query + e.suffix
			}
		}
	}
	return query + " music songs"
}
