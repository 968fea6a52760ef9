// Package archive maintains the queryable catalog of content entries, one
// per file in the content tree. Entries carry the front-matter contract
// fields plus structure counts, and are kept in memory or in SQL storage
// synchronized from the filesystem.
package archive
