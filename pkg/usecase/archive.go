package usecase

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/winstrap/pkg/domain/model"
)

// ErrUnsafeArchivePath is returned for zip entries that would land outside the destination
var ErrUnsafeArchivePath = goerr.New("archive entry escapes destination directory")

// fetchAndUnpack downloads url to archivePath, extracts it into destDir and
// removes archivePath whether or not extraction succeeded
func (uc *provisioner) fetchAndUnpack(ctx context.Context, url, archivePath, destDir string) (*model.DownloadResult, error) {
	logger := ctxlog.From(ctx)

	uc.console.Info("Downloading file...")

	file, err := os.Create(archivePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create archive file", goerr.V("path", archivePath))
	}
	defer func() {
		if err := os.Remove(archivePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Failed to remove archive", "path", archivePath, "error", err)
		}
	}()

	written, err := uc.downloader.Download(ctx, url, file)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download archive", goerr.V("url", url))
	}

	logger.Info("Downloaded archive", "url", url, "path", archivePath, "size_bytes", written)

	uc.console.Info("Extracting files...")

	result, err := extractZip(ctx, archivePath, destDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract archive", goerr.V("path", archivePath), goerr.V("dest_dir", destDir))
	}
	result.SourceURL = url
	result.Downloaded = written

	logger.Info("Extracted archive",
		"dest_dir", destDir,
		"file_count", len(result.Files),
		"total_size_bytes", result.Size,
	)

	uc.console.Success("Extraction complete!")

	return result, nil
}

// extractZip extracts every entry of the archive at archivePath into destDir,
// overwriting existing files
func extractZip(ctx context.Context, archivePath, destDir string) (*model.DownloadResult, error) {
	logger := ctxlog.From(ctx)

	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		// OpenReader may hand back an open reader together with zip.ErrInsecurePath
		if zipReader != nil {
			_ = zipReader.Close()
		}
		return nil, goerr.Wrap(err, "failed to open zip archive")
	}
	defer zipReader.Close()

	var extractedFiles []string
	var totalSize int64

	for _, file := range zipReader.File {
		if err := extractFile(file, destDir); err != nil {
			return nil, goerr.Wrap(err, "failed to extract file", goerr.V("name", file.Name))
		}
		logger.Debug("Extracted entry", "name", file.Name)

		extractedFiles = append(extractedFiles, file.Name)
		totalSize += int64(file.UncompressedSize64)
	}

	return &model.DownloadResult{
		ArchivePath: archivePath,
		DestDir:     destDir,
		Files:       extractedFiles,
		Size:        totalSize,
	}, nil
}

// extractFile extracts a single file from ZIP to the destination directory
func extractFile(file *zip.File, destDir string) error {
	root := filepath.Clean(destDir)
	destPath := filepath.Join(root, file.Name)
	if destPath != root && !strings.HasPrefix(destPath, root+string(os.PathSeparator)) {
		return goerr.Wrap(ErrUnsafeArchivePath, "invalid file path detected",
			goerr.V("file", file.Name),
			goerr.V("dest", destPath),
		)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create parent directories", goerr.V("dir", filepath.Dir(destPath)))
	}

	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open file in zip")
	}
	defer rc.Close()

	perm := file.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file", goerr.V("path", destPath))
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return goerr.Wrap(err, "failed to copy file content", goerr.V("path", destPath))
	}

	return nil
}
