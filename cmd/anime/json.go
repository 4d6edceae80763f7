package anime

import (
	"github.com/rauko/anibridge/internal/artifact"
	"github.com/rauko/anibridge/internal/fileutil"
)

func writeArtifact(doc *artifact.Document, filename string, overwrite bool) error {
	_, err := fileutil.WriteJSONFile(doc, filename, overwrite)
	return err
}
