package chatkit

import (
	"fmt"
	"strings"
)

// ContentService resolves attachment content hosted by the provider.
type ContentService struct {
	client *Client
}

// PrivateURL returns the authenticated download URL for an attachment uid.
// An empty uid resolves to an empty URL; renderers treat that as "no link".
func (s *ContentService) PrivateURL(uid string) string {
	if uid == "" {
		return ""
	}
	return fmt.Sprintf("%s/blobs/%s/download", strings.TrimSuffix(s.client.cfg.APIEndpoint, "/"), uid)
}
