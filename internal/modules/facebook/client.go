package facebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the Graph API root used unless overridden (tests point
// this at a local server).
const DefaultBaseURL = "https://graph.facebook.com/v16.0"

// feedFields is the fixed field list requested from the feed endpoint.
const feedFields = "id,message,picture,attachments{media},comments{message,from,created_time},created_time"

// ErrMissingToken is returned before any network call when no access token
// is configured.
var ErrMissingToken = errors.New("access token is required")

// RemoteError is an API-level error carried in the response body.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "facebook api error: " + e.Message
}

// Client talks to the Graph API group feed endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Graph API client with the default endpoint and a 30s
// transport timeout.
func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchGroupFeed fetches up to limit posts from the group feed and
// normalizes them. One GET, no retries: a failed call is a failed run.
func (c *Client) FetchGroupFeed(ctx context.Context, groupID, token string, limit int) ([]Post, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	q := url.Values{}
	q.Set("access_token", token)
	q.Set("fields", feedFields)
	q.Set("limit", strconv.Itoa(limit))
	endpoint := fmt.Sprintf("%s/%s/feed?%s", c.BaseURL, url.PathEscape(groupID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch group feed: %w", err)
	}
	defer resp.Body.Close()

	var envelope feedEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}
	if envelope.Error != nil {
		return nil, &RemoteError{Message: envelope.Error.Message}
	}

	posts := make([]Post, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		posts = append(posts, normalize(raw))
	}
	return posts, nil
}

// normalize flattens a raw feed item. An attachment is either image-bearing
// or video-bearing; a post collects any number of images but has a single
// video slot, last write wins.
func normalize(raw rawPost) Post {
	post := Post{
		ID:          raw.ID,
		Message:     raw.Message,
		ImageURL:    raw.Picture,
		Images:      []string{},
		Comments:    []Comment{},
		CreatedTime: raw.CreatedTime,
	}

	if raw.Attachments != nil {
		for _, att := range raw.Attachments.Data {
			if att.Media == nil {
				continue
			}
			if att.Media.Image != nil && att.Media.Image.Src != "" {
				post.Images = append(post.Images, att.Media.Image.Src)
			} else if att.Media.PlayableURL != "" {
				post.VideoURL = att.Media.PlayableURL
			}
		}
	}

	if raw.Comments != nil {
		for _, rc := range raw.Comments.Data {
			comment := Comment{
				Message:     rc.Message,
				CreatedTime: rc.CreatedTime,
			}
			if rc.From != nil {
				comment.Author = rc.From.Name
			}
			post.Comments = append(post.Comments, comment)
		}
	}

	return post
}
