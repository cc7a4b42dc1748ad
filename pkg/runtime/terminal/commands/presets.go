package commands

import (
	"fmt"

	"github.com/imd-care/care-reports/pkg/adapters"
	"github.com/spf13/cobra"
)

type PresetsCmd struct {
	env *Env
}

func NewPresetsCmd(env *Env) *cobra.Command {
	pc := &PresetsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Inspect saved filter presets",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the filter presets of the preset file",
		RunE:  pc.list,
	})
	return cmd
}

func (pc *PresetsCmd) list(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	reg, err := pc.env.Presets()
	if err != nil {
		return err
	}

	names, err := reg.GetProfiles(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No presets found in %s\n", pc.env.PresetsPath)
		return nil
	}

	for _, name := range names {
		p, err := reg.GetPreset(ctx, name)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tinvalid: %v\n", name, err)
			continue
		}
		view := adapters.MapPresetToApi(p.Name, p.Filter, p.Tab)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\ttab=%s specialty=%s from=%s to=%s search=%q\n",
			view.Name, view.Tab, view.Specialty, view.From, view.To, view.Search)
	}
	return nil
}
