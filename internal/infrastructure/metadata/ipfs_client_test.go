package metadata

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"nft_staker/internal/infrastructure/configloader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*ipfsClientImpl, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewIPFSClient(configloader.MetadataConfig{
		IPFSGateway:          srv.URL + "/ipfs",
		RequestTimeoutMillis: 2000,
		CacheTTLMinutes:      5,
		RateLimit:            100,
		Burst:                10,
	}, zap.NewNop())
	return c.(*ipfsClientImpl), &hits
}

func TestResolveURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"ipfs://QmHash/0", "https://gw.example/ipfs/QmHash/0"},
		{"ipfs://ipfs/QmHash/1", "https://gw.example/ipfs/QmHash/1"},
		{"https://cdn.example/0.json", "https://cdn.example/0.json"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveURI("https://gw.example/ipfs", tt.uri))
		})
	}
}

func TestFetch_GatewayAndCache(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ipfs/QmHash/0", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"name":"Adventurer #0","description":"first","image":"ipfs://QmImg/0.png","attributes":[{"trait_type":"Class","value":"Ranger"}]}`)
	})

	md, err := c.Fetch(context.Background(), big.NewInt(0), "ipfs://QmHash/0")
	require.NoError(t, err)
	assert.Equal(t, "Adventurer #0", md.Name)
	assert.Equal(t, "first", md.Description)
	assert.Equal(t, c.gateway+"QmImg/0.png", md.Image)
	assert.Equal(t, "ipfs://QmHash/0", md.URI)
	assert.Equal(t, int64(0), md.ID.Int64())
	require.Len(t, md.Attributes, 1)
	assert.Equal(t, "Class", md.Attributes[0].TraitType)

	again, err := c.Fetch(context.Background(), big.NewInt(0), "ipfs://QmHash/0")
	require.NoError(t, err)
	assert.Equal(t, md, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestFetch_NonOKStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not pinned", http.StatusNotFound)
	})

	_, err := c.Fetch(context.Background(), big.NewInt(3), "ipfs://QmMissing/3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_MalformedJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"name":`)
	})

	_, err := c.Fetch(context.Background(), big.NewInt(1), "ipfs://QmBroken/1")
	assert.Error(t, err)
}

func TestFetch_InlineDataURI(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	payload := base64.StdEncoding.EncodeToString([]byte(`{"name":"Onchain #5","image":"https://img.example/5.png"}`))

	md, err := c.Fetch(context.Background(), big.NewInt(5), "data:application/json;base64,"+payload)
	require.NoError(t, err)
	assert.Equal(t, "Onchain #5", md.Name)
	assert.Equal(t, "https://img.example/5.png", md.Image)
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestFetch_RejectsEmptyAndUnsupported(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {})

	_, err := c.Fetch(context.Background(), big.NewInt(1), "")
	assert.Error(t, err)

	_, err = c.Fetch(context.Background(), big.NewInt(1), "ar://arweave-tx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}
