package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/dbscanvas/internal/cache"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{
		Store:  cache.NewMemoryStore(0),
		Logger: hclog.NewNullLogger(),
	})
}

// uploadRequest builds a multipart POST with a PNG body and the given
// extra form fields.
func uploadRequest(t *testing.T, img image.Image, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", "test.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, img))

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/palette", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// halfAndHalf builds a dim x dim image split into two solid colours.
func halfAndHalf(dim int, left, right color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, dim, dim))
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			if x < dim/2 {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestIndexServesUploadForm(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/api/v1/palette"`)
}

func TestPaletteUpload(t *testing.T) {
	srv := newTestServer(t)
	img := halfAndHalf(60, color.RGBA{R: 210, A: 255}, color.RGBA{B: 210, A: 255})

	rec := httptest.NewRecorder()
	req := uploadRequest(t, img, map[string]string{
		"sample_dim":  "60",
		"min_samples": "20",
	})
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp paletteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Key)
	assert.Equal(t, 60*60, resp.TotalPoints)
	assert.Equal(t, 2, resp.ClustersFound)
	require.Len(t, resp.Swatches, 2)
	assert.InDelta(t, 50.0, resp.Swatches[0].Percentage, 0.01)
	assert.Empty(t, resp.Message)

	// Swatches arrive ranked: first count >= second count.
	assert.GreaterOrEqual(t, resp.Swatches[0].Count, resp.Swatches[1].Count)
}

func TestPaletteUploadInvalidEps(t *testing.T) {
	srv := newTestServer(t)
	img := halfAndHalf(20, color.RGBA{R: 210, A: 255}, color.RGBA{B: 210, A: 255})

	rec := httptest.NewRecorder()
	req := uploadRequest(t, img, map[string]string{"eps": "0"})
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "eps")
}

func TestPaletteUploadMalformedParam(t *testing.T) {
	srv := newTestServer(t)
	img := halfAndHalf(20, color.RGBA{R: 210, A: 255}, color.RGBA{B: 210, A: 255})

	rec := httptest.NewRecorder()
	req := uploadRequest(t, img, map[string]string{"min_samples": "plenty"})
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaletteUploadMissingFile(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("eps", "0.08"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/palette", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaletteUploadNotAnImage(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "test.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("definitely not pixels"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/palette", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaletteEmptyResultIsNotAnError(t *testing.T) {
	srv := newTestServer(t)
	img := halfAndHalf(20, color.RGBA{R: 210, A: 255}, color.RGBA{B: 210, A: 255})

	// min_samples larger than the point count: everything is noise.
	rec := httptest.NewRecorder()
	req := uploadRequest(t, img, map[string]string{
		"sample_dim":  "20",
		"min_samples": "500",
	})
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp paletteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Swatches)
	assert.Equal(t, 0, resp.ClustersFound)
	assert.Contains(t, resp.Message, "no colour clusters")
	assert.InDelta(t, 100.0, resp.NoisePercentage, 0.01)
}

func TestChartUnknownKey(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/palette/deadbeef/chart", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChartAfterUpload(t *testing.T) {
	srv := newTestServer(t)
	img := halfAndHalf(40, color.RGBA{R: 210, A: 255}, color.RGBA{B: 210, A: 255})

	rec := httptest.NewRecorder()
	req := uploadRequest(t, img, map[string]string{
		"sample_dim":  "40",
		"min_samples": "20",
	})
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp paletteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Key)

	chartRec := httptest.NewRecorder()
	chartReq := httptest.NewRequest(http.MethodGet, "/api/v1/palette/"+resp.Key+"/chart", nil)
	srv.Handler().ServeHTTP(chartRec, chartReq)

	require.Equal(t, http.StatusOK, chartRec.Code)
	assert.True(t, strings.Contains(chartRec.Header().Get("Content-Type"), "text/html"))
	for _, swatch := range resp.Swatches {
		assert.Contains(t, chartRec.Body.String(), swatch.Hex)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
