package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/winstrap/pkg/domain/model"
)

// Downloader fetches a remote resource
type Downloader interface {
	// Download streams the body of url into w and returns the number of bytes written
	Download(ctx context.Context, url string, w io.Writer) (int64, error)
}

// CommandRunner executes external programs
type CommandRunner interface {
	// Run executes cmd and waits for it. A non-zero exit is reported in the result,
	// not as an error. The error is set only when the program could not be run.
	Run(ctx context.Context, cmd model.Command) (*model.CommandResult, error)

	// Start launches cmd without waiting for it to finish
	Start(ctx context.Context, cmd model.Command) error
}

// ReleaseResolver looks up release assets
type ReleaseResolver interface {
	// ResolveAsset returns the download URL of the referenced asset
	ResolveAsset(ctx context.Context, ref *model.ReleaseRef) (string, error)
}
