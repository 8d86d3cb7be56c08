package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/canonpl-dev/canonpl/internal/canonical"
	"github.com/canonpl-dev/canonpl/internal/report"
	"github.com/canonpl-dev/canonpl/internal/source"
)

const testFlatDoc = `{
  "metadata": {},
  "accounts": [
    {
      "account": "400-000 Food Sales",
      "monthly_data": {"September 2025": {"current": 1000, "percent_of_income": 80}}
    },
    {
      "account": "Total Income",
      "monthly_data": {"September 2025": {"current": 1250, "percent_of_income": 100}}
    }
  ]
}`

const testNestedDoc = `{
  "sections": {
    "Income": {
      "400-000 Food Sales": {"Oct 2025": {"current": 1200, "percent": 77}},
      "Total": {"Oct 2025": {"current": 1550, "percent": 100}}
    },
    "COGS": {
      "Total": {"Oct 2025": {"current": 400, "percent": 26}}
    }
  }
}`

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	flatDoc, err := source.DecodeFlat(strings.NewReader(testFlatDoc))
	require.NoError(t, err)
	nestedDoc, err := source.DecodeNested(strings.NewReader(testNestedDoc))
	require.NoError(t, err)

	canon := canonical.NewService(source.NewFlatIndex(flatDoc), nestedDoc, canonical.Options{})
	gen := report.NewGenerator(canon, report.Config{Entity: "Test Kitchen"})
	return New(canon, gen, newTestLogger()).Router()
}

func doRequest(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetPL(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/pl")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		Income struct {
			ID       string `json:"id"`
			Children []struct {
				Name string `json:"name"`
			} `json:"children"`
		} `json:"income"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "income", body.Income.ID)
	require.NotEmpty(t, body.Income.Children)
	assert.Equal(t, "Food Sales", body.Income.Children[0].Name)
}

func TestGetValue(t *testing.T) {
	h := newTestServer(t)

	rec := doRequest(t, h, "/api/pl/value?account=Food+Sales&month=Sep+2025")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Account string `json:"account"`
		Month   string `json:"month"`
		Value   json.Number `json:"value"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Food Sales", body.Account)
	assert.Equal(t, "Sep 2025", body.Month)
	assert.Equal(t, "1000", body.Value.String())
}

func TestGetValue_DefaultsToOctober(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/pl/value?account=Food+Sales")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Month string      `json:"month"`
		Value json.Number `json:"value"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Oct 2025", body.Month)
	assert.Equal(t, "1200", body.Value.String())
}

func TestGetValue_UnknownAccountIsZero(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/pl/value?account=Nope")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Value json.Number `json:"value"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "0", body.Value.String())
}

func TestGetValue_MissingAccountParam(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/pl/value")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "Validation Failed", problem.Title)
	assert.Equal(t, http.StatusBadRequest, problem.Status)
}

func TestGetValue_BadMonth(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/pl/value?account=Food+Sales&month=October")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPercent(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/pl/percent?account=Food+Sales&month=Sep+2025")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Percent json.Number `json:"percent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "80", body.Percent.String())
}

func TestGetReport(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/report")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Title   string `json:"title"`
		Entity  string `json:"entity"`
		Metrics []struct {
			Label string `json:"label"`
			Value string `json:"value"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "P&L Comparison Report", body.Title)
	assert.Equal(t, "Test Kitchen", body.Entity)
	require.NotEmpty(t, body.Metrics)
	assert.Equal(t, "Total Revenue", body.Metrics[0].Label)
	assert.Equal(t, "$1,550.00", body.Metrics[0].Value)
}

func TestExportCSV(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/report/export.csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pl-comparison.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "Account")
}

func TestExportXLSX(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/report/export.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pl-comparison.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Comparison")
}

func TestNotFound(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
