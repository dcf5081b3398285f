package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/tinci/internal/database"
	"github.com/palemoky/tinci/internal/rhyme"
	"github.com/palemoky/tinci/internal/testutil"
	"github.com/palemoky/tinci/internal/tools"
)

func setupLookupRouter(t *testing.T, svc *tools.Service) *gin.Engine {
	t.Helper()

	router := testutil.SetupTestGin()
	lookup := NewLookupHandler(svc)
	router.GET("/jyutping", lookup.Jyutping)
	router.GET("/tone-pattern", lookup.TonePattern)
	router.GET("/rhymes", lookup.Rhymes)
	router.GET("/finals", lookup.Finals)
	router.GET("/finals/:final", lookup.CharactersByFinal)
	router.GET("/tone-systems", lookup.ToneSystems)

	toolsHandler := NewToolsHandler(svc)
	router.GET("/tools", toolsHandler.List)
	router.POST("/tools/:name", toolsHandler.Call)
	return router
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func errorCode(resp map[string]any) string {
	e, _ := resp["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestLookupHandler(t *testing.T) {
	router := setupLookupRouter(t, testutil.NewTestService(t))

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		checkResponse  func(*testing.T, map[string]any)
	}{
		{
			name:           "jyutping",
			target:         "/jyutping?" + url.Values{"text": {"你好"}}.Encode(),
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "nei5 hou2", resp["romanization"])
			},
		},
		{
			name:           "jyutping of blank text",
			target:         "/jyutping?" + url.Values{"text": {"  "}}.Encode(),
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "EMPTY_INPUT", errorCode(resp))
			},
		},
		{
			name:           "tone pattern with unknown system",
			target:         "/tone-pattern?" + url.Values{"text": {"你好"}, "system": {"9999"}}.Encode(),
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "INVALID_REQUEST", errorCode(resp))
			},
		},
		{
			name:           "tone pattern 1056",
			target:         "/tone-pattern?" + url.Values{"text": {"你好"}, "system": {"1056"}}.Encode(),
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "51", resp["pattern"])
				assert.Equal(t, "1056", resp["system"])
			},
		},
		{
			name:           "tone pattern of blank text",
			target:         "/tone-pattern?" + url.Values{"text": {""}}.Encode(),
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "EMPTY_INPUT", errorCode(resp))
			},
		},
		{
			name:           "rhymes with target group",
			target:         "/rhymes?" + url.Values{"character": {"來"}, "target_group": {"3"}, "limit": {"3"}}.Encode(),
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "oi", resp["final"])
				assert.EqualValues(t, 3, resp["count"])
				assert.EqualValues(t, 14, resp["total_count"])
				assert.Equal(t, "3", resp["target_group"])
			},
		},
		{
			name:           "rhymes of unknown character",
			target:         "/rhymes?" + url.Values{"character": {"龘"}}.Encode(),
			expectedStatus: http.StatusUnprocessableEntity,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "UNRESOLVED_CHARACTER", errorCode(resp))
			},
		},
		{
			name:           "rhymes with bad target tone",
			target:         "/rhymes?" + url.Values{"character": {"來"}, "target_tone": {"high"}}.Encode(),
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "INVALID_REQUEST", errorCode(resp))
			},
		},
		{
			name:           "rhymes with tone out of range",
			target:         "/rhymes?" + url.Values{"character": {"來"}, "target_tone": {"10"}}.Encode(),
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "INVALID_TONE", errorCode(resp))
			},
		},
		{
			name:           "rhymes with negative limit",
			target:         "/rhymes?" + url.Values{"character": {"來"}, "limit": {"-1"}}.Encode(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "finals",
			target:         "/finals",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.EqualValues(t, 16, resp["count"])
			},
		},
		{
			name:           "characters by final",
			target:         "/finals/yun?" + url.Values{"tone": {"1"}, "limit": {"2"}}.Encode(),
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.EqualValues(t, 2, resp["count"])
				assert.EqualValues(t, 16, resp["total_count"])
				assert.EqualValues(t, 1, resp["tone_filter"])
			},
		},
		{
			name:           "unknown final",
			target:         "/finals/zzz",
			expectedStatus: http.StatusNotFound,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "NOT_FOUND", errorCode(resp))
				details := resp["error"].(map[string]any)["details"]
				assert.Len(t, details, 16)
			},
		},
		{
			name:           "tone systems",
			target:         "/tone-systems",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "0243", resp["default"])
				assert.Contains(t, resp["systems"], "1056")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doRequest(t, router, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestRhymesStrictPolyphony(t *testing.T) {
	router := setupLookupRouter(t, testutil.NewTestService(t, rhyme.WithStrictPolyphony(true)))

	w, resp := doRequest(t, router, http.MethodGet, "/rhymes?"+url.Values{"character": {"好"}}.Encode(), "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "AMBIGUOUS_CHARACTER", errorCode(resp))
}

func TestToolsHandler(t *testing.T) {
	router := setupLookupRouter(t, testutil.NewTestService(t))

	w, resp := doRequest(t, router, http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, resp["count"])

	tests := []struct {
		name           string
		tool           string
		body           string
		expectedStatus int
		expectedCode   string
	}{
		{"jyutping", tools.ToolGetJyutping, `{"text": "你好"}`, http.StatusOK, ""},
		{"finals without body", tools.ToolListFinals, "", http.StatusOK, ""},
		{"rhymes", tools.ToolGetRhymingCharacters, `{"character": "來", "tone_filter": "same"}`, http.StatusOK, ""},
		{"unknown tool", "get_weather", `{}`, http.StatusNotFound, "NOT_FOUND"},
		{"unknown argument", tools.ToolGetTonePattern, `{"txt": "你好"}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"not json", tools.ToolGetTonePattern, `text=你好`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad group", tools.ToolGetRhymingCharacters, `{"character": "來", "target_group": "5"}`, http.StatusBadRequest, "INVALID_GROUP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doRequest(t, router, http.MethodPost, "/tools/"+tt.tool, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(resp))
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	svc := testutil.NewTestService(t)

	t.Run("without snapshot", func(t *testing.T) {
		router := testutil.SetupTestGin()
		router.GET("/health", HealthHandler(svc, nil))

		w, resp := doRequest(t, router, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", resp["status"])
		assert.EqualValues(t, 16, resp["finals"])
	})

	t.Run("with snapshot", func(t *testing.T) {
		db, _ := testutil.SetupTestDB(t)
		router := testutil.SetupTestGin()
		router.GET("/health", HealthHandler(svc, db))

		w, resp := doRequest(t, router, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", resp["status"])
	})

	t.Run("closed snapshot", func(t *testing.T) {
		db, _ := testutil.SetupTestDB(t)
		require.NoError(t, db.Close())
		router := testutil.SetupTestGin()
		router.GET("/health", HealthHandler(svc, db))

		w, resp := doRequest(t, router, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", resp["status"])
	})
}

type failingRepo struct {
	database.RepositoryInterface
}

func (failingRepo) GetStatistics() (*database.Statistics, error) {
	return nil, errors.New("disk I/O error")
}

func TestStatsHandler(t *testing.T) {
	_, repo := testutil.SetupTestDB(t)
	require.NoError(t, repo.ReplaceCorpus(testutil.DefaultCorpus(t), "test", 0, nil))

	router := testutil.SetupTestGin()
	router.GET("/stats", StatsHandler(repo))
	router.GET("/broken", StatsHandler(failingRepo{}))

	w, resp := doRequest(t, router, http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 16, resp["total_finals"])
	assert.Contains(t, resp, "entries_by_tone")

	w, resp = doRequest(t, router, http.MethodGet, "/broken", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(resp))
}
