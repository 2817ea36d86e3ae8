package schemasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

// maxSchemaBytes caps the size of a remote schema document.
const maxSchemaBytes = 1 << 20

// Remote fetches a schema document over HTTP. Responses are cached in memory
// and revalidated with ETag/Last-Modified on repeated loads.
type Remote struct {
	client *http.Client
	url    string
}

// NewRemote creates a Remote source using an in-memory httpcache transport.
func NewRemote(url string) *Remote {
	return &Remote{
		client: &http.Client{
			Transport: httpcache.NewMemoryCacheTransport(),
			Timeout:   10 * time.Second,
		},
		url: url,
	}
}

// NewRemoteWithClient creates a Remote source with a caller-supplied client.
// This constructor is intended for testing.
func NewRemoteWithClient(client *http.Client, url string) *Remote {
	return &Remote{client: client, url: url}
}

// Load fetches and decodes the schema document.
func (r *Remote) Load(ctx context.Context) (model.FormSchema, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("build schema request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("fetch schema %s: %w", r.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.FormSchema{}, fmt.Errorf("fetch schema %s: unexpected status %d", r.url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSchemaBytes))
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("read schema %s: %w", r.url, err)
	}

	schema, err := Decode(data)
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("decode schema %s: %w", r.url, err)
	}
	return schema, nil
}
