package commands

import (
	"fmt"

	"github.com/imd-care/care-reports/pkg/store/jsonfile"
	"github.com/imd-care/care-reports/pkg/store/records"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type RecordsCmd struct {
	env *Env
}

func NewRecordsCmd(env *Env) *cobra.Command {
	rc := &RecordsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage the local record database",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import <fixture.json>",
		Short: "Import admissions, consultations and appointments from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.importFixture,
	})
	return cmd
}

func (rc *RecordsCmd) importFixture(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	set, err := jsonfile.Load(args[0])
	if err != nil {
		return err
	}

	store, db, err := rc.env.OpenStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := records.Import(ctx, db, store, set); err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}

	zerolog.Ctx(ctx).Info().
		Str("db", rc.env.DBPath).
		Int("admissions", len(set.Admissions)).
		Int("consultations", len(set.Consultations)).
		Int("appointments", len(set.Appointments)).
		Msg("records imported")
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d admissions, %d consultations, %d appointments\n",
		len(set.Admissions), len(set.Consultations), len(set.Appointments))
	return nil
}
