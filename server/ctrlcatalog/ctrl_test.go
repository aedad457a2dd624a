package ctrlcatalog

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	jd "github.com/josephburnett/jd/lib"
	"github.com/stretchr/testify/require"

	"go.bytecake.dev/pws/mockfs"
	"go.bytecake.dev/pws/server/ctrlbase"
	"go.bytecake.dev/pws/server/ctrlcatalog/spec"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func makeRouter(t *testing.T) (*mockfs.MockFS, http.Handler) {
	t.Helper()

	m := mockfs.New(t)
	base := &ctrlbase.Controller{DB: m.DB(), Partitions: m.Partitions()}

	r := mux.NewRouter()
	ctrlbase.AddRoutes(base, r, false)
	AddRoutes(New(base), r)
	return m, r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, h, http.MethodPost, path, body)
}

func upload(t *testing.T, h http.Handler, path, field string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "ignored"))
	fw, err := mw.CreateFormFile(field, "blob.bin")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func requireJSON(t *testing.T, rr *httptest.ResponseRecorder, code int, expectedJSON string) {
	t.Helper()

	body := rr.Body.String()
	require.Equal(t, code, rr.Code, body)
	require.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

	expected, err := jd.ReadJsonString(expectedJSON)
	require.NoError(t, err)
	actual, err := jd.ReadJsonString(body)
	require.NoError(t, err, body)
	if diff := expected.Diff(actual); len(diff) > 0 {
		t.Errorf("response json differs\n%s", diff.Render())
	}
}

func requireDetail(t *testing.T, rr *httptest.ResponseRecorder, code int, detail string) {
	t.Helper()
	requireJSON(t, rr, code, fmt.Sprintf(`{"detail": %q}`, detail))
}

func TestAlbum(t *testing.T) {
	t.Parallel()
	_, h := makeRouter(t)

	requireDetail(t, post(t, h, "/album/a1/define", `{"title": "Demo", "length": 300}`), http.StatusCreated, spec.MsgAlbumDefined)
	requireJSON(t, post(t, h, "/album/a1/info", ""), http.StatusOK, `{
		"album_id": "a1",
		"released_at": null,
		"title": "Demo",
		"length": 300,
		"artist_name": null,
		"cover_block_key": null,
		"music_ids": []
	}`)

	requireDetail(t, post(t, h, "/album/a1/modify", `{"length": 320, "artist_name": null}`), http.StatusOK, spec.MsgAlbumModified)
	requireJSON(t, post(t, h, "/album/a1/info", "{}"), http.StatusOK, `{
		"album_id": "a1",
		"released_at": null,
		"title": "Demo",
		"length": 320,
		"artist_name": null,
		"cover_block_key": null,
		"music_ids": []
	}`)

	requireDetail(t, post(t, h, "/album/a1/define", `{"title": "Other"}`), http.StatusGone, spec.MsgAlbumExists)
	requireJSON(t, post(t, h, "/album/a1/info", ""), http.StatusOK, `{
		"album_id": "a1",
		"released_at": null,
		"title": "Demo",
		"length": 320,
		"artist_name": null,
		"cover_block_key": null,
		"music_ids": []
	}`)

	requireDetail(t, post(t, h, "/album/a1/remove", ""), http.StatusCreated, spec.MsgAlbumRemoved)
	requireDetail(t, post(t, h, "/album/a1/info", ""), http.StatusNotFound, spec.MsgAlbumNotFound)
	requireDetail(t, post(t, h, "/album/a1/modify", `{"title": "x"}`), http.StatusNotFound, spec.MsgAlbumNotFound)
	requireDetail(t, post(t, h, "/album/a1/remove", ""), http.StatusNotFound, spec.MsgAlbumNotFound)

	// gone for good, so it can be defined again
	requireDetail(t, post(t, h, "/album/a1/define", ""), http.StatusCreated, spec.MsgAlbumDefined)
}

func TestMusic(t *testing.T) {
	t.Parallel()
	_, h := makeRouter(t)

	requireDetail(t, post(t, h, "/music/m1/define", `{"length": 10}`), http.StatusBadRequest, spec.MsgBadRequest)
	requireDetail(t, post(t, h, "/music/m1/info", ""), http.StatusNotFound, spec.MsgMusicNotFound)

	requireDetail(t, post(t, h, "/music/m1/define", `{"title": "One", "album_id": "a1", "length": 200}`), http.StatusCreated, spec.MsgMusicDefined)
	requireDetail(t, post(t, h, "/music/m1/define", `{"title": "One"}`), http.StatusGone, spec.MsgMusicExists)
	requireJSON(t, post(t, h, "/music/m1/info", ""), http.StatusOK, `{
		"music_id": "m1",
		"title": "One",
		"album_id": "a1",
		"length": 200
	}`)

	requireDetail(t, post(t, h, "/music/m1/modify", `{"title": ""}`), http.StatusBadRequest, spec.MsgBadRequest)
	requireDetail(t, post(t, h, "/music/m1/modify", `{"title": "Uno"}`), http.StatusOK, spec.MsgMusicModified)
	requireJSON(t, post(t, h, "/music/m1/info", ""), http.StatusOK, `{
		"music_id": "m1",
		"title": "Uno",
		"album_id": "a1",
		"length": 200
	}`)

	requireDetail(t, post(t, h, "/music/m1/remove", ""), http.StatusCreated, spec.MsgMusicRemoved)
	requireDetail(t, post(t, h, "/music/m1/remove", ""), http.StatusNotFound, spec.MsgMusicNotFound)
	requireDetail(t, post(t, h, "/music/m1/modify", `{"title": "x"}`), http.StatusNotFound, spec.MsgMusicNotFound)
}

func TestAlbumInfoListsMusic(t *testing.T) {
	t.Parallel()
	_, h := makeRouter(t)

	requireDetail(t, post(t, h, "/music/m2/define", `{"title": "Two", "album_id": "a1"}`), http.StatusCreated, spec.MsgMusicDefined)
	requireDetail(t, post(t, h, "/music/m1/define", `{"title": "One", "album_id": "a1"}`), http.StatusCreated, spec.MsgMusicDefined)
	requireDetail(t, post(t, h, "/music/m3/define", `{"title": "Three"}`), http.StatusCreated, spec.MsgMusicDefined)
	requireDetail(t, post(t, h, "/album/a1/define", `{"artist_name": "아티스트"}`), http.StatusCreated, spec.MsgAlbumDefined)

	requireJSON(t, post(t, h, "/album/a1/info", ""), http.StatusOK, `{
		"album_id": "a1",
		"released_at": null,
		"title": null,
		"length": null,
		"artist_name": "아티스트",
		"cover_block_key": null,
		"music_ids": ["m1", "m2"]
	}`)

	// removing the album leaves its music in place
	requireDetail(t, post(t, h, "/album/a1/remove", ""), http.StatusCreated, spec.MsgAlbumRemoved)
	requireJSON(t, post(t, h, "/music/m1/info", ""), http.StatusOK, `{
		"music_id": "m1",
		"title": "One",
		"album_id": "a1",
		"length": null
	}`)
}

func TestAlbumAndMusicShareIDs(t *testing.T) {
	t.Parallel()
	_, h := makeRouter(t)

	requireDetail(t, post(t, h, "/album/x/define", ""), http.StatusCreated, spec.MsgAlbumDefined)
	requireDetail(t, post(t, h, "/music/x/define", `{"title": "x"}`), http.StatusCreated, spec.MsgMusicDefined)
	requireDetail(t, post(t, h, "/album/x/remove", ""), http.StatusCreated, spec.MsgAlbumRemoved)
	requireDetail(t, post(t, h, "/music/x/remove", ""), http.StatusCreated, spec.MsgMusicRemoved)
}

func TestBadBody(t *testing.T) {
	t.Parallel()
	_, h := makeRouter(t)

	for _, tc := range []struct {
		path string
		body string
	}{
		{"/album/a/define", `{"titel": "typo"}`},
		{"/album/a/define", `{"length": "300"}`},
		{"/album/a/define", `{"length": -1}`},
		{"/album/a/define", `{"title": 5}`},
		{"/album/a/define", `{"title": "x"`},
		{"/album/a/define", `["title"]`},
		{"/music/m/define", `{"title": "x", "length": 1.5}`},
		{"/music/m/define", `{"title": null}`},
		{"/music/m/define", `{"title": "x"} {"title": "y"}`},
	} {
		t.Run(tc.path+" "+tc.body, func(t *testing.T) {
			requireDetail(t, post(t, h, tc.path, tc.body), http.StatusBadRequest, spec.MsgBadRequest)
		})
	}

	// nothing was created along the way
	requireDetail(t, post(t, h, "/album/a/info", ""), http.StatusNotFound, spec.MsgAlbumNotFound)
	requireDetail(t, post(t, h, "/music/m/info", ""), http.StatusNotFound, spec.MsgMusicNotFound)
}

func TestPartition(t *testing.T) {
	t.Parallel()
	m, h := makeRouter(t)

	data := make([]byte, 512*1024)
	_, err := rand.Read(data)
	require.NoError(t, err)

	requireDetail(t, upload(t, h, "/partition/p1/write", "file", data), http.StatusCreated, spec.MsgPartitionWritten)
	requireDetail(t, upload(t, h, "/partition/p1/write", "file", []byte("other")), http.StatusGone, spec.MsgPartitionExists)

	rr := do(t, h, http.MethodGet, "/partition/p1/read", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/octet-stream", rr.Header().Get("Content-Type"))
	require.Equal(t, data, rr.Body.Bytes())

	onDisk, err := os.ReadFile(m.PartitionPath("p1"))
	require.NoError(t, err)
	require.Equal(t, data, onDisk)

	requireDetail(t, post(t, h, "/partition/p1/remove", ""), http.StatusCreated, spec.MsgPartitionRemoved)
	requireDetail(t, post(t, h, "/partition/p1/remove", ""), http.StatusGone, spec.MsgPartitionNotFound)
	requireDetail(t, do(t, h, http.MethodGet, "/partition/p1/read", ""), http.StatusNotFound, spec.MsgPartitionNotFound)

	// empty partitions are fine
	requireDetail(t, upload(t, h, "/partition/empty/write", "file", nil), http.StatusCreated, spec.MsgPartitionWritten)
	rr = do(t, h, http.MethodGet, "/partition/empty/read", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, rr.Body.Bytes())
}

func TestPartitionBadRequest(t *testing.T) {
	t.Parallel()
	m, h := makeRouter(t)

	requireDetail(t, upload(t, h, "/partition/p1/write", "blob", []byte("x")), http.StatusBadRequest, spec.MsgBadRequest)
	requireDetail(t, post(t, h, "/partition/p1/write", "not multipart"), http.StatusBadRequest, spec.MsgBadRequest)

	requireDetail(t, upload(t, h, "/partition/.tmp-p1/write", "file", []byte("x")), http.StatusBadRequest, spec.MsgBadRequest)
	requireDetail(t, do(t, h, http.MethodGet, "/partition/.tmp-p1/read", ""), http.StatusBadRequest, spec.MsgBadRequest)
	requireDetail(t, post(t, h, "/partition/.tmp-p1/remove", ""), http.StatusBadRequest, spec.MsgBadRequest)

	ids, err := m.Partitions().List()
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestSearch(t *testing.T) {
	t.Parallel()
	_, h := makeRouter(t)

	requireDetail(t, post(t, h, "/query/search", `{"target-keyword": "demo"}`), http.StatusNotImplemented, spec.MsgNotImplemented)
	requireDetail(t, post(t, h, "/query/search", `{"target-types": ["album", "music"], "target-keyword": "demo", "batch-size": 20, "offset": 40}`), http.StatusNotImplemented, spec.MsgNotImplemented)

	requireDetail(t, post(t, h, "/query/search", ""), http.StatusBadRequest, spec.MsgBadRequest)
	requireDetail(t, post(t, h, "/query/search", `{"target-keyword": "demo", "target-types": ["genre"]}`), http.StatusBadRequest, spec.MsgBadRequest)
	requireDetail(t, post(t, h, "/query/search", `{"target-keyword": "demo", "batch-size": 0}`), http.StatusBadRequest, spec.MsgBadRequest)
}

func TestRecommended(t *testing.T) {
	t.Parallel()
	_, h := makeRouter(t)

	for _, kind := range []string{"music", "artist", "album"} {
		requireDetail(t, post(t, h, "/recommended/x/"+kind, ""), http.StatusNotImplemented, spec.MsgNotImplemented)
	}
	require.Equal(t, http.StatusNotFound, post(t, h, "/recommended/x/playlist", "").Code)
}

func TestMethods(t *testing.T) {
	t.Parallel()
	_, h := makeRouter(t)

	require.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/album/a/info", "").Code)
	require.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPost, "/partition/p/read", "").Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/ping", "").Code)
}

func TestPreflight(t *testing.T) {
	t.Parallel()
	_, h := makeRouter(t)

	for _, path := range []string{
		"/album/x/define",
		"/music/x/modify",
		"/partition/x/read",
		"/partition/x/write",
		"/query/search",
		"/recommended/x/album",
	} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, path)
		require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"), path)
		require.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost, path)
		require.Empty(t, rr.Body.String(), path)
	}

	// a preflight must not run the handler
	requireDetail(t, post(t, h, "/album/x/info", ""), http.StatusNotFound, spec.MsgAlbumNotFound)
}

func TestInternalError(t *testing.T) {
	t.Parallel()
	m, h := makeRouter(t)

	require.NoError(t, m.DB().Close())
	requireDetail(t, post(t, h, "/album/a/info", ""), http.StatusInternalServerError, spec.MsgInternal)
}
