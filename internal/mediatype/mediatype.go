// Package mediatype classifies template media by MIME type.
package mediatype

import "strings"

// Kind is the abstract media kind of a template.
type Kind string

const (
	// Unknown indicates an unsupported or unclassifiable MIME type.
	Unknown Kind = ""
	// Image is any still image format except GIF.
	Image Kind = "image"
	// Video is any video container format.
	Video Kind = "video"
	// GIF is an animated GIF, rendered through the video pipeline.
	GIF Kind = "gif"
)

// Classify maps a MIME type to a media kind.
// "image/gif" classifies as GIF before the generic image check so that
// animated templates take the video rendering path.
func Classify(mimeType string) Kind {
	if mimeType == "" {
		return Unknown
	}
	switch {
	case mimeType == "image/gif":
		return GIF
	case strings.HasPrefix(mimeType, "image"):
		return Image
	case strings.HasPrefix(mimeType, "video"):
		return Video
	}
	return Unknown
}

// Supported returns true if the kind can be rendered by the engine.
func (k Kind) Supported() bool {
	return k == Image || k == Video || k == GIF
}

// FileSuffix returns the file suffix used when staging a template of
// this kind on disk for the external encoder. Only video-pipeline
// kinds have a suffix.
func (k Kind) FileSuffix() (string, bool) {
	switch k {
	case Video:
		return ".mp4", true
	case GIF:
		return ".gif", true
	}
	return "", false
}

// FileExtension returns the substring after the last "/" of a MIME
// type, e.g. "video/mp4" yields "mp4". Malformed input yields a
// malformed extension; no validation is performed.
func FileExtension(mimeType string) string {
	if i := strings.LastIndex(mimeType, "/"); i >= 0 {
		return mimeType[i+1:]
	}
	return mimeType
}
