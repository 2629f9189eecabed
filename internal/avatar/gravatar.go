// avatar resolves a profile picture URL for an email via Gravatar.
package avatar

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const baseURL = "https://www.gravatar.com/avatar"

type Client struct {
	HTTP *http.Client
}

func NewClient() *Client {
	return &Client{HTTP: &http.Client{Timeout: 5 * time.Second}}
}

// URL builds the gravatar URL for email without any network call.
func URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("%s/%s", baseURL, hex.EncodeToString(sum[:]))
}

// Fetch returns the avatar URL for email if one exists. It probes with
// d=404 so that addresses without a gravatar return nil instead of the
// generated placeholder. Callers treat any error as "no avatar".
func (c *Client) Fetch(ctx context.Context, email string) (*string, error) {
	url := URL(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url+"?d=404", nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gravatar: status %d", res.StatusCode)
	}

	return &url, nil
}
