// Package markup parses content files into documents: front-matter
// decoding, body rendering, and structure extraction (heading outline,
// fenced code listings, word counts). Discovery is filesystem-based and
// collection-aware, so posts keep their dated filenames and pages stay
// undated.
package markup
