// Package media resolves what kind of story a picked file produces.
package media

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/unera-social/unera-tui/pkg/models"
)

// KindForMIME maps a media type onto a story kind: video/* becomes a
// video story, anything else an image story.
func KindForMIME(mime string) models.StoryKind {
	if strings.HasPrefix(mime, "video/") {
		return models.StoryVideo
	}
	return models.StoryImage
}

// KindForFile sniffs the file's media type and dispatches on it.
func KindForFile(path string) (models.StoryKind, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detecting media type of %s: %w", path, err)
	}
	return KindForMIME(mt.String()), nil
}
