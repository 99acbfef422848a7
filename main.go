// Command following finds the albums of the artists in your music library which
// are missing from it.
//
// This file is only here to make installing with go install easier. The source
// lives in the src directory.
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/ironsmile/following/src"
)

// sqlFilesFS is the directory which contains SQL migrations for sql-migrate.
// If the embedded directory name changes, remember to change it in main() too.
//
//go:embed sqls
var sqlFilesFS embed.FS

func main() {
	sqls, err := fs.Sub(sqlFilesFS, "sqls")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading sqls subFS: %s\n", err)
		os.Exit(1)
	}

	src.Main(sqls)
}
