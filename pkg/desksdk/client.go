package desksdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the public endpoints and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSession wraps an access token obtained elsewhere.
func (c *SDKClient) NewSession(accessToken, userName string) *Session {
	return &Session{client: c, accessToken: accessToken, userName: userName}
}
