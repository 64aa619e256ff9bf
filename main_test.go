package main

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/docbookgen/internal/docbook"
	"go.abhg.dev/docbookgen/internal/iotest"
	"gopkg.in/yaml.v3"
)

func TestMainCmd_help(t *testing.T) {
	t.Parallel()

	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run(context.Background(), []string{"-h"})
	assert.Zero(t, exitCode, "-h should have zero status code")
}

func TestMainCmd_helpTopic(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: &buff,
	}).Run(context.Background(), []string{"-h", "model"})
	assert.Zero(t, exitCode)
	assert.Contains(t, buff.String(), "The documentation model is a YAML file")
}

func TestMainCmd_version(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	exitCode := (&mainCmd{
		Stdout: &buff,
		Stderr: iotest.Writer(t),
	}).Run(context.Background(), []string{"-version"})
	assert.Zero(t, exitCode, "-version should have zero status code")

	assert.Contains(t, buff.String(), "docbookgen")
	assert.Contains(t, buff.String(), _version)
}

func TestMainCmd_unknownFlag(t *testing.T) {
	t.Parallel()

	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run(context.Background(), []string{"--this-flag-does-not-exist"})
	assert.NotZero(t, exitCode, "unknown flag should have non-zero status code")
}

func TestMainCmd_noModel(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: &buff,
	}).Run(context.Background(), nil)
	assert.NotZero(t, exitCode)
	assert.Contains(t, buff.String(), "Please provide exactly one model file.")
}

func TestMainCmd_modelDoesNotExist(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: &buff,
	}).Run(context.Background(), []string{
		"-out", t.TempDir(),
		filepath.Join(t.TempDir(), "does-not-exist.yaml"),
	})
	assert.NotZero(t, exitCode)
	assert.Contains(t, buff.String(), "no such file or directory")
}

func TestMainCmd_badLanguage(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: &buff,
	}).Run(context.Background(), []string{
		"-out", t.TempDir(),
		"-lang", "not a language",
		"testdata/qtcore.yaml",
	})
	assert.NotZero(t, exitCode)
	assert.Contains(t, buff.String(), "natural language")
}

func TestMainCmd_generate(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	manifest := filepath.Join(t.TempDir(), "images.yaml")
	metrics := filepath.Join(t.TempDir(), "metrics.prom")

	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run(context.Background(), []string{
		"-out", outDir,
		"-project", "Qt",
		"-build-version", "6.8.0",
		"-image-dir", "testdata/images",
		"-examples", "testdata/examples",
		"-manifest", manifest,
		"-metrics", metrics,
		"-debug",
		"testdata/qtcore.yaml",
	})
	require.Zero(t, exitCode, "expected success")

	fsys := os.DirFS(outDir)
	gotFiles := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		got, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		gotFiles[path] = string(got)
		t.Logf("Found file %v", path)
		return nil
	})
	require.NoError(t, err)

	if body, ok := gotFiles["qobject.xml"]; assert.True(t, ok, "qobject.xml") {
		assert.True(t, strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`),
			"document must start with an XML declaration")
		assert.Contains(t, body, "<db:article")
		assert.Contains(t, body, `version="5.2"`)
		assert.Contains(t, body, "QObject is the heart of the object model.")
		assert.Contains(t, body, "Schedules this object for deletion.")
		assert.Contains(t, body, `fileref="images/logo.png"`)
	}

	if body, ok := gotFiles["overview.xml"]; assert.True(t, ok, "overview.xml") {
		assert.Contains(t, body, "Object Model Overview")
		assert.Contains(t, body, `xlink:href="qobject.xml"`)
	}

	assert.Contains(t, gotFiles, "qtcore-module.xml")
	assert.Contains(t, gotFiles, "widgets-clock-example.xml")
	assert.Contains(t, gotFiles, "images/logo.png")

	var sawSource bool
	for _, body := range gotFiles {
		if strings.Contains(body, "app.exec()") {
			sawSource = true
		}
	}
	assert.True(t, sawSource, "example source must be included in a page")

	t.Run("manifest", func(t *testing.T) {
		bs, err := os.ReadFile(manifest)
		require.NoError(t, err)

		var got docbook.ImageManifest
		require.NoError(t, yaml.Unmarshal(bs, &got))
		assert.Equal(t, []string{"images/logo.png"}, got.Paths())
	})

	t.Run("metrics", func(t *testing.T) {
		bs, err := os.ReadFile(metrics)
		require.NoError(t, err)
		assert.Contains(t, string(bs), `docbookgen_documents_total{kind="class"} 1`)
		assert.Contains(t, string(bs), "docbookgen_generate_duration_seconds")
	})
}

func TestMainCmd_generateSubdirs(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run(context.Background(), []string{
		"-out", outDir,
		"-subdirs",
		"-image-dir", "testdata/images",
		"testdata/qtcore.yaml",
	})
	require.Zero(t, exitCode, "expected success")

	body, err := os.ReadFile(filepath.Join(outDir, "qtcore", "qobject.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(body), `fileref="../images/logo.png"`)
}
