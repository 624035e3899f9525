package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jmylchreest/dbscanvas/internal/cache"
	"github.com/jmylchreest/dbscanvas/internal/cluster"
	"github.com/jmylchreest/dbscanvas/internal/colour"
	imageutil "github.com/jmylchreest/dbscanvas/internal/image"
	"github.com/jmylchreest/dbscanvas/internal/version"
)

// paletteResponse is the JSON body of a successful extraction.
type paletteResponse struct {
	Key             string              `json:"key"`
	TotalPoints     int                 `json:"total_points"`
	ClustersFound   int                 `json:"clusters_found"`
	NoisePercentage float64             `json:"noise_percentage"`
	Swatches        []colour.SwatchJSON `json:"swatches"`
	Message         string              `json:"message,omitempty"`
}

// writeJSON writes v as a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeJSONError writes a JSON error body with the given status.
func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Short(),
	})
}

// floatParam reads a float form/query value, falling back to def when
// absent.
func floatParam(r *http.Request, name string, def float64) (float64, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

// intParam reads an integer form/query value, falling back to def when
// absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

// handlePalette accepts a multipart image upload, clusters its sampled
// pixels (through the cache) and responds with the ranked palette.
// Configuration errors and malformed uploads yield 400; an empty palette
// is still a 200 with an explanatory message.
func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	eps, err := floatParam(r, "eps", cluster.DefaultEps)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	minSamples, err := intParam(r, "min_samples", cluster.DefaultMinSamples)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	minPercentage, err := floatParam(r, "min_percentage", colour.DefaultMinPercentage)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	sampleDim, err := intParam(r, "sample_dim", imageutil.DefaultSampleDim)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.extractPalette(w, r, eps, minSamples, minPercentage, sampleDim)
}

// extractPalette runs the pipeline for one upload.
func (s *Server) extractPalette(w http.ResponseWriter, r *http.Request, eps float64, minSamples int, minPercentage float64, sampleDim int) {
	config := colour.ExtractorConfig{
		Algorithm:     colour.AlgorithmDBSCAN,
		Eps:           eps,
		MinSamples:    minSamples,
		MinPercentage: minPercentage,
		SampleDim:     sampleDim,
		Workers:       1,
	}
	if err := config.Validate(); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "missing image upload: "+err.Error())
		return
	}
	defer file.Close()

	img, err := imageutil.Decode(file)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	points := imageutil.Samples(imageutil.Resize(img, sampleDim))
	key := cache.Key(points, eps, minSamples)

	entry, ok, err := s.store.Get(key)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		labels, err := cluster.Cluster(points, cluster.Params{Eps: eps, MinSamples: minSamples})
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, cluster.ErrInvalidConfig) {
				status = http.StatusBadRequest
			}
			s.writeJSONError(w, status, err.Error())
			return
		}
		entry = cache.Entry{
			TotalPoints: len(points),
			Summaries:   cluster.Aggregate(points, labels),
		}
		if err := s.store.Put(key, entry); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	swatches, err := colour.Rank(entry.Summaries, entry.TotalPoints, minPercentage)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, buildPaletteResponse(key, entry, swatches))
}

// buildPaletteResponse assembles the response body, including the noise
// share and a human-readable message for empty palettes.
func buildPaletteResponse(key string, entry cache.Entry, swatches []colour.Swatch) paletteResponse {
	clustered := 0
	for _, summary := range entry.Summaries {
		clustered += summary.Count
	}

	response := paletteResponse{
		Key:             key,
		TotalPoints:     entry.TotalPoints,
		ClustersFound:   len(entry.Summaries),
		NoisePercentage: 100 * float64(entry.TotalPoints-clustered) / float64(entry.TotalPoints),
		Swatches:        make([]colour.SwatchJSON, 0, len(swatches)),
	}
	for _, s := range swatches {
		response.Swatches = append(response.Swatches, colour.SwatchJSON{
			Hex:        s.Hex(),
			RGB:        s.RGB,
			Count:      s.Count,
			Percentage: s.Percentage,
		})
	}

	if len(swatches) == 0 {
		if len(entry.Summaries) == 0 {
			response.Message = "no colour clusters found"
		} else {
			response.Message = fmt.Sprintf("%d cluster(s) found, all below the minimum share", len(entry.Summaries))
		}
	}
	return response
}
