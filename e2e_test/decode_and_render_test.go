//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/jsphweid/ireal/cmd"
	"github.com/jsphweid/ireal/db"
	"github.com/jsphweid/ireal/model"
	"github.com/stretchr/testify/assert"
)

type memoryStore struct {
	mu    sync.Mutex
	songs map[string]model.Song
}

func (m *memoryStore) PutCollection(c *model.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range c.Songs {
		m.songs[s.ID] = s
	}
	return nil
}

func (m *memoryStore) GetSong(id string) (model.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.songs[id]
	if !ok {
		return model.Song{}, db.ErrNotFound
	}
	return s, nil
}

var workURL string

func TestMain(m *testing.M) {
	data, err := os.ReadFile("../testdata/work.url")
	if err != nil {
		panic(err.Error())
	}
	workURL = strings.TrimSpace(string(data))
	cmd.LoadServeDeps(&memoryStore{songs: make(map[string]model.Song)}, nil)

	exitVal := m.Run()

	os.Exit(exitVal)
}

func createDecodeReqBody(url string) io.Reader {
	data, err := json.Marshal(model.DecodeRequestBody{URL: url})
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func do(req *http.Request) (*http.Response, []byte) {
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)
	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func TestDecodeThenGetSongE2E(t *testing.T) {
	resp, body := do(httptest.NewRequest(http.MethodPost, "/decode", createDecodeReqBody(workURL)))

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var decoded model.DecodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		panic(err.Error())
	}
	assert.Equal("", decoded.Title)
	assert.Empty(decoded.Failures)
	if !assert.Len(decoded.Songs, 1) {
		return
	}
	s := decoded.Songs[0]
	assert.Equal("Work", s.Title)
	assert.Equal("Monk Thelonious", s.Composer)
	assert.Len(s.Bars, 25)
	assert.Equal(model.BarResult{Beats: [][]string{{"Db7"}, {}, {}, {}}}, s.Bars[0])
	assert.Equal(model.BarResult{Beats: [][]string{{"Db7"}, {}, {}, {}}, Repeat: true}, s.Bars[1])
	assert.Equal([][]string{{"D7sus"}, {}, {"G7b5"}, {}}, s.Bars[8].Beats)

	resp, body = do(httptest.NewRequest(http.MethodGet, "/songs/"+s.ID, nil))
	assert.Equal(200, resp.StatusCode)

	var stored model.SongResult
	if err := json.Unmarshal(body, &stored); err != nil {
		panic(err.Error())
	}
	assert.Equal(s.ID, stored.ID)
	assert.Equal(s.Bars, stored.Bars)
	assert.True(strings.HasPrefix(stored.Chart, "|: [A] 4/4    Db7"))

	resp, _ = do(httptest.NewRequest(http.MethodGet, "/songs/nope", nil))
	assert.Equal(404, resp.StatusCode)
}

func TestRenderE2E(t *testing.T) {
	resp, body := do(httptest.NewRequest(http.MethodPost, "/render", createDecodeReqBody(workURL)))

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var rendered model.DecodeResponse
	if err := json.Unmarshal(body, &rendered); err != nil {
		panic(err.Error())
	}
	if !assert.Len(rendered.Songs, 1) {
		return
	}
	chart := rendered.Songs[0].Chart
	assert.Empty(rendered.Songs[0].Bars)
	assert.Equal(7, strings.Count(chart, "\n"))
	assert.Contains(chart, "|| [B]  D7sus         G7b5      |")
}
