package blog

import (
	"embed"
	"io/fs"
)

//go:embed data/content
var corpusFS embed.FS

// ContentFS returns the embedded sample corpus rooted at the content
// directory, so posts/ and pages/ sit at the top of the tree.
func ContentFS() (fs.FS, error) {
	return fs.Sub(corpusFS, "data/content")
}
