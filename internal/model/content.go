package model

import (
	"fmt"
	"path"
	"strings"
)

// ContentType is the declared kind of a content item
type ContentType string

const (
	ContentTypeVideo ContentType = "video"
	ContentTypeImage ContentType = "image"
	ContentTypePDF   ContentType = "pdf"
	ContentTypeText  ContentType = "text"
)

// KnownContentTypes lists the content types the renderer understands
var KnownContentTypes = []ContentType{ContentTypeVideo, ContentTypeImage, ContentTypePDF, ContentTypeText}

// Normalize lower-cases and trims the type. Unknown values are kept as-is so
// the renderer can fall back on them.
func (ct ContentType) Normalize() ContentType {
	return ContentType(strings.ToLower(strings.TrimSpace(string(ct))))
}

// IsKnown reports whether the type is one of KnownContentTypes
func (ct ContentType) IsKnown() bool {
	n := ct.Normalize()
	for _, known := range KnownContentTypes {
		if n == known {
			return true
		}
	}
	return false
}

// ContentFile is a single file attached to a content item
type ContentFile struct {
	FileURL      string `json:"fileUrl"`
	MimeType     string `json:"mimeType"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

// AgeRange is the inclusive age bracket a content item targets
type AgeRange struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// Contains reports whether age falls within the range. A zero upper bound
// means the range is open-ended.
func (r AgeRange) Contains(age int) bool {
	if age < r.Lower {
		return false
	}
	return r.Upper == 0 || age <= r.Upper
}

// String formats the range as "6-9", "6+" or "" when unset
func (r AgeRange) String() string {
	switch {
	case r.Lower == 0 && r.Upper == 0:
		return ""
	case r.Upper == 0:
		return fmt.Sprintf("%d+", r.Lower)
	default:
		return fmt.Sprintf("%d-%d", r.Lower, r.Upper)
	}
}

// ContentItem is a single piece of viewable material with its files
type ContentItem struct {
	ID          string        `json:"_id"`
	Type        ContentType   `json:"type"`
	Heading     string        `json:"heading,omitempty"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description"`
	AgeRange    AgeRange      `json:"ageRange"`
	Files       []ContentFile `json:"files"`
}

// DisplayTitle returns heading, title, or the first file name in order of preference
func (ci *ContentItem) DisplayTitle() string {
	if h := strings.TrimSpace(ci.Heading); h != "" {
		return h
	}
	if t := strings.TrimSpace(ci.Title); t != "" {
		return t
	}
	if f, ok := ci.PrimaryFile(); ok {
		if f.OriginalName != "" {
			return f.OriginalName
		}
		return path.Base(f.FileURL)
	}
	return ""
}

// PrimaryFile returns the first attached file
func (ci *ContentItem) PrimaryFile() (ContentFile, bool) {
	if len(ci.Files) == 0 {
		return ContentFile{}, false
	}
	return ci.Files[0], true
}

// UserProfile is the signed-in child's profile as returned by the API
type UserProfile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Avatar string `json:"avatar"`
}
