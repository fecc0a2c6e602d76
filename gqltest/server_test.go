package gqltest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, s *Server, query string, header http.Header) (int, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"query": query})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, s.Endpoint(), bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))

	return res.StatusCode, out
}

func TestServerArticles(t *testing.T) {
	s := NewServer(Options{})
	defer s.Close()

	status, out := post(t, s, `{ articles(filter: {status: PUBLISHED}) { items { title } total } }`, nil)
	require.Equal(t, http.StatusOK, status)
	require.Nil(t, out["errors"])

	conn := out["data"].(map[string]interface{})["articles"].(map[string]interface{})
	assert.Equal(t, float64(2), conn["total"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"title": "Hello GraphQL"},
		map[string]interface{}{"title": "Migrations at scale"},
	}, conn["items"])

	assert.Len(t, s.Queries(), 1)
}

func TestServerPagination(t *testing.T) {
	s := NewServer(Options{})
	defer s.Close()

	_, out := post(t, s, `{ articles(filter: {}, filters: {limit: 1, offset: 1}) { items { id } } }`, nil)
	conn := out["data"].(map[string]interface{})["articles"].(map[string]interface{})
	assert.Equal(t, []interface{}{map[string]interface{}{"id": "2"}}, conn["items"])
}

func TestServerBroken(t *testing.T) {
	s := NewServer(Options{})
	defer s.Close()

	_, out := post(t, s, `{ broken }`, nil)
	errs, ok := out["errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrBackend.Error(), errs[0].(map[string]interface{})["message"])
}

func TestServerToken(t *testing.T) {
	s := NewServer(Options{Token: "secret"})
	defer s.Close()

	status, out := post(t, s, `{ posts { id } }`, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotNil(t, out["errors"])

	status, _ = post(t, s, `{ posts { id } }`, http.Header{"Authorization": {"Bearer secret"}})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Bearer secret", s.LastHeader().Get("Authorization"))
	assert.Len(t, s.Queries(), 1)
}

func TestServerJWT(t *testing.T) {
	secret := []byte("s3cr3t")
	s := NewServer(Options{JWTSecret: secret})
	defer s.Close()

	valid, err := SignToken(secret, time.Now().Add(time.Hour))
	require.NoError(t, err)
	expired, err := SignToken(secret, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	status, _ := post(t, s, `{ posts { id } }`, http.Header{"Authorization": {"Bearer " + valid}})
	assert.Equal(t, http.StatusOK, status)

	status, _ = post(t, s, `{ posts { id } }`, http.Header{"Authorization": {"Bearer " + expired}})
	assert.Equal(t, http.StatusUnauthorized, status)
}
