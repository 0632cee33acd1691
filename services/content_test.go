package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed  Title  ", "trimmed-title"},
		{"C++ & Go: a comparison!", "c-go-a-comparison"},
		{"أفضل أدوات الذكاء الاصطناعي", "أفضل-أدوات-الذكاء-الاصطناعي"},
		{"Multiple---dashes", "multiple-dashes"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}

func TestSlugifyLongArabicTitleStaysValidUTF8(t *testing.T) {
	// The Arabic letter is two bytes, so a byte-boundary cut at 200 would
	// leave a dangling lead byte.
	slug := Slugify("a" + strings.Repeat("م", 150))

	assert.True(t, utf8.ValidString(slug), "slug must stay valid UTF-8 after truncation")
	assert.LessOrEqual(t, len(slug), 200)
	assert.NotEmpty(t, slug)
}

func TestSlugifyLongASCIITitleTruncates(t *testing.T) {
	slug := Slugify(strings.Repeat("x", 300))

	assert.Equal(t, 200, len(slug))
	assert.True(t, utf8.ValidString(slug))
}

func TestSlugifyEmptyInputGetsRandomSlug(t *testing.T) {
	slug := Slugify("!!!")
	assert.NotEmpty(t, slug)
	assert.Len(t, slug, 8)
}
