package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListReportsSortedPDFsOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"h2_2024.pdf", "h1_2024.pdf", "notes.txt", "H1_2025.PDF"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.pdf.d"), 0755))

	files, err := listReports(dir)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "H1_2025.PDF"),
		filepath.Join(dir, "h1_2024.pdf"),
		filepath.Join(dir, "h2_2024.pdf"),
	}
	assert.Equal(t, want, files)
}

func TestListReportsEmptyDir(t *testing.T) {
	files, err := listReports(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListReportsMissingDir(t *testing.T) {
	_, err := listReports(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
