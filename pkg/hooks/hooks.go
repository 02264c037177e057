// Package hooks is the surface the host package manager drives: one
// entry point per lifecycle event. Hooks return nothing to the host;
// every fault is contained and reported through the log, never
// escalated to abort the host's run.
package hooks

import (
	"github.com/rs/zerolog"

	"github.com/heyaikeedo/apub/pkg/installer"
	"github.com/heyaikeedo/apub/pkg/logging"
	"github.com/heyaikeedo/apub/pkg/placement"
	"github.com/heyaikeedo/apub/pkg/types"
)

// Plugin receives package lifecycle events. Packages whose type is
// not one of the recognized kinds are ignored entirely at every hook.
type Plugin struct {
	orch   *placement.Orchestrator
	logger zerolog.Logger
}

// New creates a Plugin driving the given orchestrator.
func New(orch *placement.Orchestrator) *Plugin {
	return &Plugin{
		orch:   orch,
		logger: logging.GetLogger("hooks"),
	}
}

// PostInstall places the package's declared public assets.
func (p *Plugin) PostInstall(pkg types.Package) {
	if !p.recognized(pkg, "post-install") {
		return
	}
	if err := p.orch.Install(pkg); err != nil {
		p.logger.Error().Err(err).Str("package", pkg.Name).Msg("post-install placement failed")
	}
}

// PostUpdate removes the previous version's assets and places the
// current ones.
func (p *Plugin) PostUpdate(pkg types.Package) {
	if !p.recognized(pkg, "post-update") {
		return
	}
	if err := p.orch.Update(pkg); err != nil {
		p.logger.Error().Err(err).Str("package", pkg.Name).Msg("post-update placement failed")
	}
}

// PreUninstall removes everything recorded for the package while its
// metadata is still available.
func (p *Plugin) PreUninstall(pkg types.Package) {
	if !p.recognized(pkg, "pre-uninstall") {
		return
	}
	if err := p.orch.Uninstall(pkg); err != nil {
		p.logger.Error().Err(err).Str("package", pkg.Name).Msg("pre-uninstall removal failed")
	}
}

func (p *Plugin) recognized(pkg types.Package, event string) bool {
	if installer.Supports(pkg.Type) {
		return true
	}
	p.logger.Trace().
		Str("package", pkg.Name).
		Str("type", pkg.Type).
		Str("event", event).
		Msg("unrecognized package type, ignoring")
	return false
}
