package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/trucar/domain"
)

func (c *cli) adminCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:   "admin",
		Short: "Platform administration (administrators only)",
	},
		c.adminUsersCmd(),
		c.adminActivateCmd(),
	)
}

func (c *cli) adminUsersCmd() *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users of every organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Admin
			if err := store.Fetch(cmd.Context()); err != nil {
				return err
			}

			t := table{title: "Usuários", headers: []string{"ID", "Nome", "E-mail", "Perfil", "Organização", "Setor", "Ativo"}}
			for _, u := range store.Items() {
				if demo && !u.IsDemo() {
					continue
				}
				org, sector := "-", domain.SectorUnset
				if u.Organization != nil {
					org = u.Organization.Name
					sector = u.Organization.Sector
				}
				t.add(itoa(u.ID), u.FullName, u.Email, string(u.Role), org, sectorName(sector), yesNo(u.IsActive))
			}
			t.render(c.out())
			return nil
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "only demo accounts waiting for activation")
	return cmd
}

func (c *cli) adminActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <user-id>",
		Short: "Turn a demo account into an active customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := intArg(args, 0, "user id")
			if err != nil {
				return err
			}
			u, err := c.app.Admin.Activate(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "User #%d (%s): %s\n", u.ID, u.Email, u.Role)
			return nil
		},
	}
}
