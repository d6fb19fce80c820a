package remote

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/sozarusac/callaudio/internal/logging"
	"github.com/sozarusac/callaudio/internal/profile"
	"github.com/sozarusac/callaudio/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

// fakeFileInfo implements os.FileInfo for listing tests.
type fakeFileInfo struct {
	name  string
	size  int64
	dir   bool
	mtime time.Time
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return f.size }
func (f fakeFileInfo) Mode() os.FileMode  { return 0 }
func (f fakeFileInfo) ModTime() time.Time { return f.mtime }
func (f fakeFileInfo) IsDir() bool        { return f.dir }
func (f fakeFileInfo) Sys() any           { return nil }

func mt(day int) time.Time {
	return time.Date(2025, 10, day, 13, 49, 28, 0, time.UTC)
}

func TestMapEntriesDropsDotEntries(t *testing.T) {
	infos := []os.FileInfo{
		fakeFileInfo{name: ".", dir: true, mtime: mt(16)},
		fakeFileInfo{name: "..", dir: true, mtime: mt(16)},
		fakeFileInfo{name: "a.gsm", size: 10, mtime: mt(16)},
	}

	entries := mapEntries(infos, ListOptions{})

	require.Len(t, entries, 1)
	assert.Equal(t, "a.gsm", entries[0].Name)
	assert.Equal(t, "2025-10-16", entries[0].Date)
	assert.Equal(t, "13:49:28", entries[0].Time)
}

func TestMapEntriesNameFilterIsCaseInsensitive(t *testing.T) {
	infos := []os.FileInfo{
		fakeFileInfo{name: "022606358444-8007.GSM", mtime: mt(16)},
		fakeFileInfo{name: "unrelated.wav", mtime: mt(16)},
	}

	entries := mapEntries(infos, ListOptions{Search: "606358444"})

	require.Len(t, entries, 1)
	assert.Equal(t, "022606358444-8007.GSM", entries[0].Name)
}

func TestMapEntriesDateRange(t *testing.T) {
	infos := []os.FileInfo{
		fakeFileInfo{name: "old.gsm", mtime: mt(10)},
		fakeFileInfo{name: "mid.gsm", mtime: mt(15)},
		fakeFileInfo{name: "new.gsm", mtime: mt(20)},
	}

	entries := mapEntries(infos, ListOptions{DateFrom: "2025-10-12", DateTo: "2025-10-16"})
	require.Len(t, entries, 1)
	assert.Equal(t, "mid.gsm", entries[0].Name)

	// An unparseable bound is ignored rather than rejecting entries.
	entries = mapEntries(infos, ListOptions{DateFrom: "not-a-date"})
	assert.Len(t, entries, 3)
}

func TestSortEntriesDirectoriesFirstThenName(t *testing.T) {
	entries := mapEntries([]os.FileInfo{
		fakeFileInfo{name: "zeta.gsm", mtime: mt(16)},
		fakeFileInfo{name: "Alpha.gsm", mtime: mt(16)},
		fakeFileInfo{name: "sub", dir: true, mtime: mt(16)},
	}, ListOptions{})

	sortEntries(entries)

	require.Len(t, entries, 3)
	assert.Equal(t, "sub", entries[0].Name)
	assert.Equal(t, "Alpha.gsm", entries[1].Name)
	assert.Equal(t, "zeta.gsm", entries[2].Name)
}

func TestBuildZipSkipsFailedMembers(t *testing.T) {
	c := NewClient(profile.ServerProfile{ID: "154"}, testLogger())

	contents := map[string][]byte{
		"a.gsm": []byte("first"),
		"c.gsm": []byte("third"),
	}
	read := func(name string) ([]byte, error) {
		data, ok := contents[name]
		if !ok {
			return nil, errors.New("no such file")
		}
		return data, nil
	}

	data, err := c.buildZip(context.Background(), []string{"a.gsm", "b.gsm", "c.gsm"}, read)
	require.NoError(t, err, "one failed member must not fail the archive")

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, contents[f.Name], got)
	}
}

func TestBuildZipAllMembersFail(t *testing.T) {
	c := NewClient(profile.ServerProfile{ID: "154"}, testLogger())

	read := func(name string) ([]byte, error) { return nil, errors.New("no such file") }

	data, err := c.buildZip(context.Background(), []string{"a.gsm", "b.gsm"}, read)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Empty(t, zr.File, "archive finalizes empty when every member fails")
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyConnectErr(t *testing.T) {
	assert.ErrorIs(t, classifyConnectErr(timeoutErr{}), shared.ErrorTimeout)
	assert.ErrorIs(t, classifyConnectErr(context.DeadlineExceeded), shared.ErrorTimeout)
	assert.ErrorIs(t, classifyConnectErr(fmt.Errorf("ssh: handshake Timeout waiting for reply")), shared.ErrorTimeout)
	assert.ErrorIs(t, classifyConnectErr(errors.New("connection refused")), shared.ErrorRemoteUnavailable)
	assert.ErrorIs(t, classifyConnectErr(errors.New("ssh: unable to authenticate")), shared.ErrorRemoteUnavailable)
}
