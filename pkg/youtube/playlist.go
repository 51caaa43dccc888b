package youtube

import (
	"context"
	"fmt"

	"github.com/anonto42/lms/backend/internal/models"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const maxPlaylistItems = 50

// PlaylistClient lists the videos of a YouTube playlist through the Data API v3
type PlaylistClient struct {
	service *yt.Service
}

// NewPlaylistClient creates a client authenticated with an API key. Extra
// options are appended, which lets tests point it at a local endpoint.
func NewPlaylistClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*PlaylistClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube API key not configured")
	}
	service, err := yt.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &PlaylistClient{service: service}, nil
}

// PlaylistVideos returns the first page of playlist entries
func (c *PlaylistClient) PlaylistVideos(ctx context.Context, playlistID string) ([]models.Video, error) {
	resp, err := c.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(maxPlaylistItems).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube playlist %s: %w", playlistID, err)
	}

	videos := make([]models.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			continue
		}
		videos = append(videos, models.Video{
			VideoID:   item.Snippet.ResourceId.VideoId,
			Title:     item.Snippet.Title,
			Thumbnail: thumbnailURL(item.Snippet.Thumbnails),
		})
	}
	return videos, nil
}

func thumbnailURL(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.Medium != nil {
		return t.Medium.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}
