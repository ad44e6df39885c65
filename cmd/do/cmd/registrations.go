package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/slatesocial/site/internal/db"
	"github.com/slatesocial/site/internal/repository"
	"github.com/spf13/cobra"
)

func RegistrationsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "registrations",
		Aliases: []string{"regs"},
		Short:   "List the most recent beta registrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer db.Close(database)

			if err := db.RunMigrations(database.DB, cfg.DBDriver); err != nil {
				return err
			}

			repo := repository.NewRegistrationRepository(database)
			total, err := repo.Count()
			if err != nil {
				return err
			}
			regs, err := repo.List(limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tNAME\tGYM\tEMAIL")
			for _, r := range regs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", humanize.Time(r.CreatedAt), r.FullName, r.GymName, r.Email)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\nshowing %d of %s registrations\n", len(regs), humanize.Comma(int64(total)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of registrations to show")
	return cmd
}
