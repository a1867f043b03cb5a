package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestProvision_RejectsPathTraversal(t *testing.T) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)
	writer, err := zipWriter.Create("../escaped.txt")
	gt.NoError(t, err)
	_, err = writer.Write([]byte("outside"))
	gt.NoError(t, err)
	gt.NoError(t, zipWriter.Close())

	f := newFixture(t)
	f.downloader.downloadFunc = serveBytes(buf.Bytes())

	_, err = f.provisioner().Provision(context.Background(), f.cfg)
	gt.Error(t, err)

	assertNotExist(t, filepath.Join(filepath.Dir(f.cfg.DestinationDir), "escaped.txt"))
	assertNotExist(t, f.cfg.DownloadPath)
	gt.Equal(t, len(f.runner.runCalls), 0)
}

func TestProvision_ExtractsDirectoryEntries(t *testing.T) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)
	_, err := zipWriter.Create("licenses/")
	gt.NoError(t, err)
	writer, err := zipWriter.Create("licenses/LICENSE")
	gt.NoError(t, err)
	_, err = writer.Write([]byte("MIT"))
	gt.NoError(t, err)
	gt.NoError(t, zipWriter.Close())

	f := newFixture(t)
	f.downloader.downloadFunc = serveBytes(buf.Bytes())

	report, err := f.provisioner().Provision(context.Background(), f.cfg)
	gt.NoError(t, err)
	gt.Equal(t, report.Download.Files, []string{"licenses/", "licenses/LICENSE"})
	gt.Equal(t, report.Download.Size, int64(3))
	gt.Equal(t, report.Download.Downloaded, int64(buf.Len()))
	gt.Equal(t, report.Download.SourceURL, f.cfg.SourceURL)
}
