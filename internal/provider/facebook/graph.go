package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"social_media_auth/internal/provider"

	"go.uber.org/zap"
)

// The fields requested from /me; the normalizer needs name, email and picture.
const meFields = "id,name,email,picture"

// GraphError is an error body returned by the Graph API.
type GraphError struct {
	Status  int
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("graph api: status %d: %s (%s, code %d)", e.Status, e.Message, e.Type, e.Code)
}

// Profiler loads the signed in user's profile.
type Profiler interface {
	Me(ctx context.Context, accessToken string) (*provider.FacebookUserInfo, error)
}

// GraphClient calls the Facebook Graph API.
type GraphClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

var _ Profiler = (*GraphClient)(nil)

// NewGraphClient uses a client with a 15 second timeout when httpClient is nil.
func NewGraphClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *GraphClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &GraphClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
		logger:  logger.Named("GraphClient"),
	}
}

// Me fetches /me with the fields the profile needs.
func (g *GraphClient) Me(ctx context.Context, accessToken string) (*provider.FacebookUserInfo, error) {
	q := url.Values{"fields": {meFields}, "access_token": {accessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/me?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building graph request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling graph api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading graph response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var envelope struct {
			Error *GraphError `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
			envelope.Error.Status = resp.StatusCode
			return nil, envelope.Error
		}
		return nil, &GraphError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var user provider.FacebookUserInfo
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decoding graph response: %w", err)
	}
	g.logger.Debug("Fetched Graph profile", zap.String("user_id", user.ID), zap.Bool("has_picture", user.PictureURL() != ""))
	return &user, nil
}
