package interfaces

import (
	"context"

	"github.com/m-mizutani/winstrap/pkg/domain/model"
)

// ProvisionUseCase defines the provisioning pipeline
type ProvisionUseCase interface {
	// Provision runs precondition check, fetch-and-unpack, tool checks and script launches in order
	Provision(ctx context.Context, cfg *model.ProvisionConfig) (*model.ProvisionReport, error)

	// EnsureTool probes a tool and installs it when the probe fails
	EnsureTool(ctx context.Context, tool model.ToolSpec, workDir string) (*model.ToolStatus, error)
}
