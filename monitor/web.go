package monitor

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/dh1tw/nolistfs"
)

//go:embed web
var webContents embed.FS

// webFS returns the embedded web UI without directory listings.
func webFS() http.FileSystem {
	sub, err := fs.Sub(webContents, "web")
	if err != nil {
		// the web directory is embedded at compile time
		panic(err)
	}
	return nolistfs.New(http.FS(sub))
}
