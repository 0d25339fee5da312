package registry

import "net/http"

// NewClientForTest exposes the custom cache path and http client constructor
// for testing purposes.
func NewClientForTest(baseURL, cachePath string, client *http.Client) (*Client, error) {
	return newClientWithPath(baseURL, cachePath, client)
}
