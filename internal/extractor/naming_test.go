package extractor

import (
	"net/url"
	"strings"
	"testing"

	"github.com/aleister1102/pagecapture/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"logo.png", "logo.png"},
		{`a<b>c:d"e|f?g*h.png`, "a_b_c_d_e_f_g_h.png"},
		{`dir\file.css`, "dir_file.css"},
		{"tab\tname\x00.js", "tab_name_.js"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in))
	}
}

func TestSanitizeFilename_NeverLeavesIllegalCharacters(t *testing.T) {
	var b strings.Builder
	for r := rune(0); r < 128; r++ {
		b.WriteRune(r)
	}
	out := SanitizeFilename(b.String())
	assert.False(t, strings.ContainsAny(out, `<>:"/\|?*`))
	for _, r := range out {
		assert.False(t, r < 0x20, "control character %q survived", r)
	}
}

func TestClassify(t *testing.T) {
	tests := map[string]models.ResourceKind{
		"main.css":       models.ResourceKindStylesheet,
		"APP.JS":         models.ResourceKindScript,
		"a.jpg":          models.ResourceKindImage,
		"a.jpeg":         models.ResourceKindImage,
		"a.PNG":          models.ResourceKindImage,
		"a.gif":          models.ResourceKindImage,
		"a.bmp":          models.ResourceKindImage,
		"index.html":     models.ResourceKindHTML,
		"index.htm":      models.ResourceKindHTML,
		"image.svg":      models.ResourceKindUnknown,
		"README":         models.ResourceKindUnknown,
		"":               models.ResourceKindUnknown,
		"archive.css.gz": models.ResourceKindUnknown,
	}

	for name, want := range tests {
		assert.Equal(t, want, Classify(name), name)
	}
}

func TestDescribe_AnchorPathIsSanitizedPerSegment(t *testing.T) {
	ref := models.DocumentReference{
		Tag:   models.SourceTagAnchor,
		Value: "/a%3Ab/%2E%2E/c%7Cd.html",
		Base:  "https://example.com/",
	}

	d, err := Describe(Rule{Tag: models.SourceTagAnchor}, ref)
	require.NoError(t, err)
	assert.Equal(t, "c_d.html", d.FileName)
	assert.Equal(t, models.ResourceKindHTML, d.ResourceKind)

	for _, seg := range strings.Split(d.LocalPath, "/") {
		assert.NotEqual(t, "..", seg)
		assert.False(t, strings.ContainsAny(seg, `<>:"\|?*`))
	}
}

func TestResolveReference(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"relative", "img/a.png", "https://example.com/blog/img/a.png", false},
		{"root relative", "/a.png", "https://example.com/a.png", false},
		{"protocol relative", "//cdn.example.com/a.png", "https://cdn.example.com/a.png", false},
		{"fragment stripped", "a.png#frag", "https://example.com/blog/a.png", false},
		{"query kept", "a.png?v=1", "https://example.com/blog/a.png?v=1", false},
		{"data uri", "data:image/png;base64,AA", "", true},
		{"tel", "tel:123", "", true},
		{"bad escape", "%zz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveReference(pageURL, tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var resErr *models.ResolutionError
				assert.ErrorAs(t, err, &resErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAnchorLocalPath(t *testing.T) {
	u, err := url.Parse("https://example.com/docs/v1/intro.html")
	require.NoError(t, err)
	assert.Equal(t, "docs/v1/intro.html", anchorLocalPath(u, "intro.html"))
}
