package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves /api/embed by returning [len(text), index] for each input.
func newTestServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/embed":
			requests.Add(1)
			var req embedRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "all-minilm", req.Model)

			resp := embedResponse{}
			for i, text := range req.Input {
				resp.Embeddings = append(resp.Embeddings, []float64{float64(len(text)), float64(i)})
			}
			_ = json.NewEncoder(w).Encode(resp)
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models":[{"name":"all-minilm:latest"},{"name":"nomic-embed-text"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	s := NewEmbeddingService(Config{})

	assert.Equal(t, DefaultBaseURL, s.baseURL)
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.Equal(t, DefaultDimensions, s.Dimensions())
	assert.Equal(t, DefaultBatchSize, s.batchSize)
	assert.NoError(t, s.Close())
}

func TestEmbeddingService_Embed(t *testing.T) {
	var requests atomic.Int32
	server := newTestServer(t, &requests)
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL})

	vec, err := s.Embed(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, []float32{5, 0}, vec)
	assert.Equal(t, int32(1), requests.Load())
}

func TestEmbeddingService_EmbedBatch_SplitsAndPreservesOrder(t *testing.T) {
	var requests atomic.Int32
	server := newTestServer(t, &requests)
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL, BatchSize: 2})
	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}

	vecs, err := s.EmbedBatch(context.Background(), texts)

	require.NoError(t, err)
	require.Len(t, vecs, len(texts))
	for i, text := range texts {
		assert.Equal(t, float32(len(text)), vecs[i][0])
	}
	assert.Equal(t, int32(3), requests.Load())
}

func TestEmbeddingService_EmbedBatch_Empty(t *testing.T) {
	s := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1"})

	vecs, err := s.EmbedBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, vecs)
}

func TestEmbeddingService_Embed_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"model \"all-minilm\" not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL})

	_, err := s.Embed(context.Background(), "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "not found")
}

func TestEmbeddingService_Embed_LengthMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"embeddings":[]}`))
	}))
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL})

	_, err := s.Embed(context.Background(), "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "0 embeddings for 1 inputs")
}

func TestEmbeddingService_RateLimit(t *testing.T) {
	var requests atomic.Int32
	server := newTestServer(t, &requests)
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL, BatchSize: 1, RateLimit: 20})

	start := time.Now()
	_, err := s.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	// Burst of one: the second and third requests each wait ~50ms.
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestEmbeddingService_RateLimit_Cancelled(t *testing.T) {
	s := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1", RateLimit: 0.001})
	s.limiter.Allow() // Drain the single token.

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Embed(ctx, "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestEmbeddingService_Ping(t *testing.T) {
	var requests atomic.Int32
	server := newTestServer(t, &requests)
	defer server.Close()

	assert.NoError(t, NewEmbeddingService(Config{BaseURL: server.URL}).Ping(context.Background()))
	assert.NoError(t, NewEmbeddingService(Config{BaseURL: server.URL, Model: "nomic-embed-text"}).Ping(context.Background()))

	err := NewEmbeddingService(Config{BaseURL: server.URL, Model: "mxbai-embed-large"}).Ping(context.Background())
	assert.ErrorContains(t, err, "ollama pull mxbai-embed-large")

	down := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	assert.Error(t, down.Ping(context.Background()))
}
