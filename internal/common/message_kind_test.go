package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageKind_String(t *testing.T) {
	assert.Equal(t, "text", MessageKindText.String())
	assert.Equal(t, "location", MessageKindLocation.String())
}

func TestMessageKind_IsValid(t *testing.T) {
	for _, k := range []MessageKind{MessageKindText, MessageKindImage, MessageKindVideo, MessageKindAudio, MessageKindLocation} {
		assert.True(t, k.IsValid(), "kind %s", k)
	}

	invalidKind := MessageKind("sticker")
	assert.False(t, invalidKind.IsValid())
	assert.False(t, MessageKind("").IsValid())
}

func TestMessageKind_IsMedia(t *testing.T) {
	assert.True(t, MessageKindImage.IsMedia())
	assert.True(t, MessageKindVideo.IsMedia())
	assert.True(t, MessageKindAudio.IsMedia())
	assert.False(t, MessageKindText.IsMedia())
	assert.False(t, MessageKindLocation.IsMedia())
}

func TestDetectKind(t *testing.T) {
	cases := []struct {
		input    string
		expected MessageKind
	}{
		{"image/jpeg", MessageKindImage},
		{"IMAGE/PNG", MessageKindImage},
		{"video/mp4", MessageKindVideo},
		{"Video/webm", MessageKindVideo},
		{"audio/ogg", MessageKindAudio},
		{"application/pdf", MessageKindText},
		{"", MessageKindText},
	}

	for _, testCase := range cases {
		result := DetectKind(testCase.input)
		assert.Equal(t, testCase.expected, result, "Failed for input: %s", testCase.input)
	}
}

func TestDetectKindFromURL(t *testing.T) {
	cases := []struct {
		input    string
		expected MessageKind
	}{
		{"https://cdn.example/u/1/photo.jpg", MessageKindImage},
		{"https://cdn.example/u/1/photo.PNG?sig=abc", MessageKindImage},
		{"/uploads/clip.mp4#t=10", MessageKindVideo},
		{"https://cdn.example/u/1/noext", MessageKindText},
		{"", MessageKindText},
	}

	for _, testCase := range cases {
		result := DetectKindFromURL(testCase.input)
		assert.Equal(t, testCase.expected, result, "Failed for input: %s", testCase.input)
	}
}
