package serve

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stuartgen/stuart/vfs"
)

func testServer() *Server {
	var out = &vfs.OutputNode{Name: "root", Dir: true, Children: []*vfs.OutputNode{
		{Name: "index.html", Contents: []byte("home")},
		{Name: "about.html", Contents: []byte("about")},
		{Name: "root.html", Contents: []byte("layout")},
		{Name: "docs", Dir: true, Children: []*vfs.OutputNode{
			{Name: "index.html", Contents: []byte("docs home")},
		}},
		{Name: "style.css", Contents: []byte("body {}")},
	}}
	return &Server{out: out}
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	var rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestServeResolution(t *testing.T) {
	var s = testServer()

	assert.Equal(t, "home", get(t, s, "/").Body.String())
	assert.Equal(t, "about", get(t, s, "/about").Body.String())
	assert.Equal(t, "about", get(t, s, "/about/").Body.String())
	assert.Equal(t, "about", get(t, s, "/about.html").Body.String())
	assert.Equal(t, "docs home", get(t, s, "/docs/").Body.String())
	assert.Equal(t, "body {}", get(t, s, "/style.css").Body.String())
}

func TestServeNotFound(t *testing.T) {
	var s = testServer()
	assert.Equal(t, 404, get(t, s, "/missing").Code)
	assert.Equal(t, 404, get(t, s, "/root.html").Code, "layouts are never served")
}

func TestServeWithoutBuild(t *testing.T) {
	var s = &Server{}
	assert.Equal(t, 503, get(t, s, "/").Code)
}
