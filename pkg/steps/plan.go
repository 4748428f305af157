package steps

import (
	"github.com/arthur-debert/dotstrap/pkg/registry"
)

// Plan holds the install and uninstall sequences
type Plan struct {
	Install   registry.Registry[Step]
	Uninstall registry.Registry[Step]
}

// NewPlan registers all steps. Order matters: it is both the execution
// order and the order of the RC addon sections.
func NewPlan() *Plan {
	p := &Plan{
		Install:   registry.New[Step](),
		Uninstall: registry.New[Step](),
	}

	for _, step := range []Step{
		headerStep(),
		macOSStep(),
		repoBinStep(),
		configSymlinksStep(),
		pixiStep(),
		terminalStep(),
		essentialsStep(),
		tmuxStep(),
		goodiesStep(),
		staticAddonStep(),
		rcAddonStep(p.Install),
	} {
		registry.MustRegister(p.Install, step.Name, step)
	}

	registry.MustRegister(p.Uninstall, "config-symlinks", removeConfigSymlinksStep())

	return p
}
