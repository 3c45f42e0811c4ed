package chatkit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DataService accesses the provider's custom-object store. Objects live in
// named classes (e.g. "Appointment", "Record") and are plain JSON documents;
// callers supply their own typed representations via out parameters.
type DataService struct {
	client *Client
}

// Get reads a single object by id into out.
func (s *DataService) Get(ctx context.Context, class, id string, out interface{}) error {
	return s.client.do(ctx, http.MethodGet, fmt.Sprintf("/data/%s/%s", class, id), nil, out)
}

// Update patches a single object by id. The patch is merged server-side; the
// full updated object is decoded into out when non-nil.
func (s *DataService) Update(ctx context.Context, class, id string, patch, out interface{}) error {
	return s.client.do(ctx, http.MethodPut, fmt.Sprintf("/data/%s/%s", class, id), patch, out)
}

// UpdateByCriteria patches every object in class matching the criteria.
// The provider applies the patch server-side and returns no objects.
func (s *DataService) UpdateByCriteria(ctx context.Context, class string, criteria map[string]string, patch interface{}) error {
	q := url.Values{}
	for k, v := range criteria {
		q.Set(k, v)
	}
	path := fmt.Sprintf("/data/%s/by_criteria", class)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return s.client.do(ctx, http.MethodPut, path, patch, nil)
}
