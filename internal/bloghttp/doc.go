// Package bloghttp provides an optional read-only HTTP adapter over the
// archive.
//
// Routes mount under /blog by default:
//   - Entries: /entries, /entries/{id}, /entries/{collection}/{slug}
//   - Taxonomy: /tags, /categories
//   - Feed: /feed.json (JSON Feed 1.1 of visible entries)
//   - Contract: /schema (front-matter JSON schema)
//
// Host applications register the handlers on their own mux as needed.
package bloghttp
