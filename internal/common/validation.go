package common

import (
	"net/url"
	"strings"
)

const MaxReactionKindBytes = 32

func ValidateCoordinates(lat, lng *float64) error {
	if lat == nil || lng == nil {
		return Invalidf("location requires latitude and longitude")
	}
	if *lat < -90 || *lat > 90 {
		return Invalidf("latitude out of range")
	}
	if *lng < -180 || *lng > 180 {
		return Invalidf("longitude out of range")
	}
	return nil
}

// ValidateAttachmentURL only checks shape; the media itself is opaque.
func ValidateAttachmentURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Invalidf("attachment url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Invalidf("attachment url is malformed")
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return Invalidf("attachment url scheme %q not allowed", u.Scheme)
	}
	return nil
}

func ValidateReactionKind(kind string) error {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return Invalidf("reaction type is required")
	}
	if len(kind) > MaxReactionKindBytes {
		return Invalidf("reaction type is too long")
	}
	return nil
}
