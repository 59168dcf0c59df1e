package core

import (
	"net/url"
	"strings"
)

// ThumbnailKind indicates where a thumbnail lives.
type ThumbnailKind string

const (
	ThumbnailNone   ThumbnailKind = ""
	ThumbnailLocal  ThumbnailKind = "local"
	ThumbnailRemote ThumbnailKind = "remote"
)

// Thumbnail references track artwork, either a bundled asset or a remote URI.
type Thumbnail struct {
	Kind ThumbnailKind `json:"kind,omitempty"`
	Ref  string        `json:"ref,omitempty"`
}

// ParseThumbnail classifies a reference. http and https URIs are remote,
// anything else non-empty is treated as a local asset path.
func ParseThumbnail(ref string) Thumbnail {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Thumbnail{}
	}
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return Thumbnail{Kind: ThumbnailRemote, Ref: ref}
	}
	return Thumbnail{Kind: ThumbnailLocal, Ref: ref}
}

// IsRemote returns true if the thumbnail must be fetched from a URI.
func (t Thumbnail) IsRemote() bool {
	return t.Kind == ThumbnailRemote
}

// IsZero returns true if there is no artwork.
func (t Thumbnail) IsZero() bool {
	return t.Kind == ThumbnailNone || t.Ref == ""
}
