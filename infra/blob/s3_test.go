package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu          sync.Mutex
	method      string
	path        string
	contentType string
	body        string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.method = r.Method
	f.path = r.URL.Path
	f.contentType = r.Header.Get("Content-Type")
	f.body = string(data)
	f.mu.Unlock()
	w.Header().Set("ETag", `"etag123"`)
	w.WriteHeader(http.StatusOK)
}

func TestUploadPathStyle(t *testing.T) {
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	u, err := New(context.Background(), Config{
		Bucket:          "exports",
		Endpoint:        srv.URL,
		PathStyle:       true,
		Prefix:          "/tower/daily/",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	})
	require.NoError(t, err)

	loc, err := u.Upload(context.Background(), "flights.csv", strings.NewReader("id,status\nFL-101,scheduled\n"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "s3://exports/tower/daily/flights.csv", loc)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, http.MethodPut, fake.method)
	assert.Equal(t, "/exports/tower/daily/flights.csv", fake.path)
	assert.Equal(t, "text/csv", fake.contentType)
	assert.Contains(t, fake.body, "FL-101,scheduled")
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	u := &Uploader{bucket: "b"}
	assert.Equal(t, "a.json", u.Key("a.json"))
	u.prefix = "x/y"
	assert.Equal(t, "x/y/a.json", u.Key("a.json"))
}
