// Package http exposes the showcase as a JSON API on a stdlib ServeMux.
//
// Routes mount under the configured base path (default /api):
//   - Listing: GET /listing?category=&type=&tag=
//   - Categories: GET /categories
//   - Details: GET /items/{kind}/{slug}, GET /blog/{slug}, GET /shop/{slug}
//   - Snapshot: POST /snapshot/refresh
//
// GET /healthz is mounted at the root. Unknown or mismatched detail links
// answer 303 See Other pointing at the listing root of their context.
package http
