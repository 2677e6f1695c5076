package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpad/grid"
)

type fakeSource struct {
	vals   []float64
	clears int
}

func (f *fakeSource) Values() []float64 {
	out := make([]float64, len(f.vals))
	copy(out, f.vals)
	return out
}

func (f *fakeSource) Clear() { f.clears++ }

func TestVersionEndpoint(t *testing.T) {
	s := NewServer("1.7")
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/version")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1.7", body["version"])
}

func TestGridEndpoint(t *testing.T) {
	s := NewServer("1.0")
	vals := make([]float64, grid.Cells)
	vals[0] = 1
	vals[29] = 0.5
	s.SetSource(&fakeSource{vals: vals})

	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/grid")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string][]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body["values"], grid.Cells)
	assert.Equal(t, 1.0, body["values"][0])
	assert.Equal(t, 0.5, body["values"][29])
}

func TestGridEndpointBeforeMount(t *testing.T) {
	s := NewServer("1.0")
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/grid")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string][]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body["values"], grid.Cells)
	for i, v := range body["values"] {
		if v != 0 {
			t.Fatalf("values[%d] = %v before mount; want 0", i, v)
		}
	}
}

func TestClearEndpoint(t *testing.T) {
	s := NewServer("1.0")
	src := &fakeSource{vals: make([]float64, grid.Cells)}
	s.SetSource(src)

	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/clear", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1, src.clears)
}

func TestClearBeforeMountIsNoOp(t *testing.T) {
	s := NewServer("1.0")
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/clear", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	s := NewServer("1.0")
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/version", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/api/grid", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/clear")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
