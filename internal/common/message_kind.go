package common

import (
	"mime"
	"path"
	"strings"
)

// MessageKind is the content type of a chat message, stored in chats.type
type MessageKind string

const (
	MessageKindText     MessageKind = "text"
	MessageKindImage    MessageKind = "image"
	MessageKindVideo    MessageKind = "video"
	MessageKindAudio    MessageKind = "audio"
	MessageKindLocation MessageKind = "location"
)

// String returns the string representation
func (k MessageKind) String() string {
	return string(k)
}

// IsValid checks if the message kind is one of the known kinds
func (k MessageKind) IsValid() bool {
	switch k {
	case MessageKindText, MessageKindImage, MessageKindVideo, MessageKindAudio, MessageKindLocation:
		return true
	}
	return false
}

// IsMedia reports whether the kind carries an attachment reference.
func (k MessageKind) IsMedia() bool {
	return k == MessageKindImage || k == MessageKindVideo || k == MessageKindAudio
}

func DetectKind(mimeType string) MessageKind {
	lowerMimeType := strings.ToLower(mimeType)
	if strings.HasPrefix(lowerMimeType, "image/") {
		return MessageKindImage
	}
	if strings.HasPrefix(lowerMimeType, "video/") {
		return MessageKindVideo
	}
	if strings.HasPrefix(lowerMimeType, "audio/") {
		return MessageKindAudio
	}
	return MessageKindText
}

// extensions the stdlib mime table may not know on minimal hosts
var mediaExtensions = map[string]MessageKind{
	".mp4":  MessageKindVideo,
	".mov":  MessageKindVideo,
	".webm": MessageKindVideo,
	".mkv":  MessageKindVideo,
	".mp3":  MessageKindAudio,
	".m4a":  MessageKindAudio,
	".ogg":  MessageKindAudio,
	".wav":  MessageKindAudio,
	".aac":  MessageKindAudio,
}

// DetectKindFromURL guesses the kind of an attachment from its file extension.
func DetectKindFromURL(rawURL string) MessageKind {
	clean := rawURL
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	ext := strings.ToLower(path.Ext(clean))
	if ext == "" {
		return MessageKindText
	}
	if kind, ok := mediaExtensions[ext]; ok {
		return kind
	}
	return DetectKind(mime.TypeByExtension(ext))
}
