package server

import "net/http"

// indexHTML is the minimal upload form served at /. The API is the real
// surface; this page exists so the server is usable from a browser
// without any other tooling.
const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>dbscanvas</title>
  <style>
    body { font-family: sans-serif; max-width: 40rem; margin: 3rem auto; }
    label { display: block; margin: 0.5rem 0 0.1rem; }
    input[type=number] { width: 6rem; }
  </style>
</head>
<body>
  <h1>dbscanvas</h1>
  <p>Upload an image to extract its dominant colours.</p>
  <form method="post" action="/api/v1/palette" enctype="multipart/form-data">
    <label for="image">Image (JPEG, PNG, GIF, WebP)</label>
    <input type="file" id="image" name="image" accept="image/*" required>
    <label for="eps">Neighbourhood radius (eps)</label>
    <input type="number" id="eps" name="eps" value="0.08" min="0.01" max="0.30" step="0.01">
    <label for="min_samples">Minimum samples</label>
    <input type="number" id="min_samples" name="min_samples" value="60" min="10" max="500">
    <label for="min_percentage">Minimum share (%)</label>
    <input type="number" id="min_percentage" name="min_percentage" value="0.5" min="0.1" max="5.0" step="0.1">
    <label for="sample_dim">Sample grid size</label>
    <input type="number" id="sample_dim" name="sample_dim" value="150" min="100" max="300">
    <p><button type="submit">Extract palette</button></p>
  </form>
</body>
</html>
`

// handleIndex serves the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}
