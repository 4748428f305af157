package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/steps"
)

// UpdateConfig (re)creates the config symlinks
func (b *Bootstrap) UpdateConfig(ctx context.Context) error {
	pairs, err := b.env.Symlinks.Update()
	if err != nil {
		return err
	}
	b.infof("Linked %d config entries into %s", len(pairs), b.env.Paths.UserConfigHome())
	return nil
}

// RemoveConfig removes the config symlinks
func (b *Bootstrap) RemoveConfig(ctx context.Context) error {
	pairs, err := b.env.Symlinks.Remove()
	if err != nil {
		return err
	}
	b.infof("Removed links for %d config entries from %s", len(pairs), b.env.Paths.UserConfigHome())
	return nil
}

// GenerateRC writes the addon without running any install work
func (b *Bootstrap) GenerateRC(ctx context.Context) (string, error) {
	path, err := steps.WriteAddon(b.env, b.plan.Install)
	if err != nil {
		return "", err
	}
	b.infof("Generated %s", path)
	return path, nil
}

// AddonContent returns what GenerateRC would write
func (b *Bootstrap) AddonContent() string {
	return steps.BuildAddon(b.env, b.plan.Install).String()
}

// AddonMarkdown wraps the addon in a fenced shell block for rendering
func (b *Bootstrap) AddonMarkdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", b.env.Paths.GeneratedAddonPath())
	sb.WriteString("```sh\n")
	sb.WriteString(b.AddonContent())
	sb.WriteString("```\n")
	return sb.String()
}

// ShowConfig renders the effective configuration
func (b *Bootstrap) ShowConfig(format string) (string, error) {
	return b.env.Config.Render(format)
}

// StepInfo describes a registered step
type StepInfo struct {
	Phase       string
	Name        string
	Description string
	Runs        bool
	WritesRC    bool
}

// Steps lists install then uninstall steps in execution order
func (b *Bootstrap) Steps() []StepInfo {
	var out []StepInfo
	add := func(phase string, items []steps.Step) {
		for _, s := range items {
			out = append(out, StepInfo{
				Phase:       phase,
				Name:        s.Name,
				Description: s.Description,
				Runs:        s.Run != nil,
				WritesRC:    s.RC != nil,
			})
		}
	}
	add("install", b.plan.Install.Items())
	add("uninstall", b.plan.Uninstall.Items())
	return out
}
