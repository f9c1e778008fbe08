package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	for _, u := range []string{"http://example.com", "https://example.com/path#!/x"} {
		assert.NoError(t, ValidateURL(u), u)
	}
	for _, u := range []string{"ftp://example.com", "//example.com", "http:///", "not a url"} {
		assert.Error(t, ValidateURL(u), u)
	}
}

func TestOrigin(t *testing.T) {
	assert.Equal(t, "http://localhost:3000", Origin("http://localhost:3000/a/b?q=1#frag"))
	assert.Equal(t, "https://example.com", Origin("https://example.com"))
	assert.NotEqual(t, Origin("http://example.com/"), Origin("https://example.com/"))
	assert.NotEqual(t, Origin("http://example.com/"), Origin("http://example.com:8080/"))
}

func TestJoinHashRoute(t *testing.T) {
	assert.Equal(t, "http://x/page#!/sub", JoinHashRoute("http://x/page", "#!/sub"))
	assert.Equal(t, "http://x/page#!/other", JoinHashRoute("http://x/page#!/sub", "#!/other"))
	assert.Equal(t, "http://x/page?q=1#!/sub", JoinHashRoute("http://x/page?q=1#top", "#!/sub"))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"http://site/", "/a", "http://site/a"},
		{"http://site/a/b", "c", "http://site/a/c"},
		{"http://site/a/b", "../c", "http://site/c"},
		{"http://site/a", "https://other.com/x", "https://other.com/x"},
		{"http://site/a", "?page=2", "http://site/a?page=2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.base, tt.href), "%s + %s", tt.base, tt.href)
	}
}

func TestPageSlug(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://site/", "index"},
		{"http://site", "index"},
		{"http://site/users/list/", "users_list"},
		{"http://site/app#!/settings", "app__settings"},
		{"http://site/#!/", "index__"},
		{"http://site/#!", "index"},
		{"http://site/docs#intro", "docs_intro"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageSlug(tt.url), tt.url)
	}
}
