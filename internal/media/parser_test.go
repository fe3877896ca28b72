package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		mediaId   string
		ok        bool
	}{
		{
			name:      "watch url",
			reference: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			mediaId:   "dQw4w9WgXcQ",
			ok:        true,
		},
		{
			name:      "watch url with extra params",
			reference: "https://www.youtube.com/watch?t=30&v=dQw4w9WgXcQ&feature=share",
			mediaId:   "dQw4w9WgXcQ",
			ok:        true,
		},
		{
			name:      "short url",
			reference: "https://youtu.be/dQw4w9WgXcQ",
			mediaId:   "dQw4w9WgXcQ",
			ok:        true,
		},
		{
			name:      "embed url",
			reference: "https://www.youtube.com/embed/dQw4w9WgXcQ",
			mediaId:   "dQw4w9WgXcQ",
			ok:        true,
		},
		{
			name:      "no scheme",
			reference: "youtube.com/watch?v=dQw4w9WgXcQ",
			mediaId:   "dQw4w9WgXcQ",
			ok:        true,
		},
		{
			name:      "free text",
			reference: "lofi hip hop radio",
			ok:        false,
		},
		{
			name:      "empty",
			reference: "",
			ok:        false,
		},
		{
			name:      "whitespace only",
			reference: "   ",
			ok:        false,
		},
		{
			name:      "id too short",
			reference: "https://youtu.be/short",
			ok:        false,
		},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mediaId, ok := parser.Parse(tt.reference)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.mediaId, mediaId)
		})
	}
}
