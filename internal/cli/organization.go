package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

func (c *cli) usersCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:   "users",
		Short: "Manage the members of your organization",
	},
		c.userListCmd(),
		c.userAddCmd(),
		c.userUpdateCmd(),
		c.userRemoveCmd(),
		c.userStatsCmd(),
	)
}

func (c *cli) userListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Users
			if err := store.Fetch(cmd.Context()); err != nil {
				return err
			}
			t := table{title: "Membros", headers: []string{"ID", "Nome", "E-mail", "Perfil", "Ativo"}}
			for _, u := range store.Items() {
				t.add(itoa(u.ID), u.FullName, u.Email, string(u.Role), yesNo(u.IsActive))
			}
			t.render(c.out())
			return nil
		},
	}
}

func (c *cli) userAddCmd() *cobra.Command {
	var req transport.UserCreateRequest
	var role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Invite a member; the password is asked for when not given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				pw, err := c.opts.Prompter.Password("Senha inicial")
				if err != nil {
					return err
				}
				req.Password = pw
			}
			req.Role = domain.Role(role)
			req.AvatarURL = optString(cmd, "avatar")
			u, err := c.app.Users.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "User #%d (%s): %s\n", u.ID, u.Email, u.Role)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.FullName, "name", "", "full name")
	f.StringVar(&req.Email, "email", "", "e-mail used to log in")
	f.StringVar(&req.Password, "password", "", "initial password")
	f.StringVar(&role, "role", string(domain.RoleDriver), "driver, active_customer or demo_customer")
	f.String("avatar", "", "avatar URL")
	return cmd
}

func (c *cli) userUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change member fields; only the flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := intArg(args, 0, "user id")
			if err != nil {
				return err
			}
			req := transport.UserUpdateRequest{
				FullName:  optString(cmd, "name"),
				Email:     optString(cmd, "email"),
				Password:  optString(cmd, "password"),
				IsActive:  optBool(cmd, "active"),
				AvatarURL: optString(cmd, "avatar"),
			}
			if role := optString(cmd, "role"); role != nil {
				r := domain.Role(*role)
				req.Role = &r
			}
			u, err := c.app.Users.Update(cmd.Context(), userID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "User #%d (%s): %s, active %s\n", u.ID, u.Email, u.Role, yesNo(u.IsActive))
			return nil
		},
	}

	f := cmd.Flags()
	f.String("name", "", "full name")
	f.String("email", "", "e-mail")
	f.String("password", "", "new password")
	f.String("role", "", "driver, active_customer or demo_customer")
	f.Bool("active", true, "whether the member can log in")
	f.String("avatar", "", "avatar URL")
	return cmd
}

func (c *cli) userRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a member",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := intArg(args, 0, "user id")
			if err != nil {
				return err
			}
			ok, err := c.confirmed(cmd, fmt.Sprintf("Excluir usuário #%d?", userID))
			if err != nil || !ok {
				return err
			}
			return c.app.Users.Delete(cmd.Context(), userID)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *cli) userStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <id>",
		Short: "Show a member's activity summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := intArg(args, 0, "user id")
			if err != nil {
				return err
			}
			stats, err := c.app.Users.FetchStats(cmd.Context(), userID)
			if err != nil {
				return err
			}
			d := details{title: fmt.Sprintf("Usuário #%d", userID)}
			d.add("Jornadas", itoa(stats.TotalJourneys))
			d.add("Manutenções", itoa(stats.MaintenanceRequestsCount))
			d.add(stats.PrimaryMetricLabel, decimal(stats.PrimaryMetricValue)+" "+stats.PrimaryMetricUnit)
			if stats.AvgKmPerLiter != nil {
				d.add("Média km/l", num(stats.AvgKmPerLiter))
				d.add("Média da frota km/l", num(stats.FleetAvgKmPerLiter))
				d.add("Custo por km", num(stats.AvgCostPerKm))
			}
			d.render(c.out())

			if len(stats.PerformanceByVehicle) > 0 {
				t := table{title: "Por " + c.app.Terms.VehicleNoun(), headers: []string{c.app.Terms.VehicleNoun(), stats.PrimaryMetricUnit}}
				for _, p := range stats.PerformanceByVehicle {
					t.add(p.VehicleInfo, decimal(p.Value))
				}
				t.render(c.out())
			}
			return nil
		},
	}
}

func (c *cli) implementsCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:   "implements",
		Short: "Manage implements that journeys can carry",
	},
		c.implementListCmd(),
		c.implementAddCmd(),
		c.implementUpdateCmd(),
		c.implementRemoveCmd(),
	)
}

func (c *cli) implementListCmd() *cobra.Command {
	var available bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List implements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Implements
			fetch := store.FetchAll
			if available {
				fetch = store.FetchAvailable
			}
			if err := fetch(cmd.Context()); err != nil {
				return err
			}
			t := table{title: "Implementos", headers: []string{"ID", "Nome", "Marca", "Modelo", "Ano", "Identificador", "Status"}}
			for _, i := range store.Items() {
				t.add(itoa(i.ID), i.Name, i.Brand, i.Model, itoa(i.Year), str(i.Identifier), i.Status)
			}
			t.render(c.out())
			return nil
		},
	}
	cmd.Flags().BoolVar(&available, "available", false, "only implements free to join a journey")
	return cmd
}

func (c *cli) implementAddCmd() *cobra.Command {
	var req transport.ImplementRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an implement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Identifier = optString(cmd, "identifier")
			return c.app.Implements.Create(cmd.Context(), req)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "name")
	f.StringVar(&req.Brand, "brand", "", "brand")
	f.StringVar(&req.Model, "model", "", "model")
	f.IntVar(&req.Year, "year", 0, "model year")
	f.String("identifier", "", "identifier")
	return cmd
}

func (c *cli) implementUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change implement fields; only the flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args, 0, "implement id")
			if err != nil {
				return err
			}
			return c.app.Implements.Update(cmd.Context(), id, transport.ImplementUpdateRequest{
				Name:       optString(cmd, "name"),
				Brand:      optString(cmd, "brand"),
				Model:      optString(cmd, "model"),
				Year:       optInt(cmd, "year"),
				Identifier: optString(cmd, "identifier"),
			})
		},
	}

	f := cmd.Flags()
	f.String("name", "", "name")
	f.String("brand", "", "brand")
	f.String("model", "", "model")
	f.Int("year", 0, "model year")
	f.String("identifier", "", "identifier")
	return cmd
}

func (c *cli) implementRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an implement",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args, 0, "implement id")
			if err != nil {
				return err
			}
			ok, err := c.confirmed(cmd, fmt.Sprintf("Excluir implemento #%d?", id))
			if err != nil || !ok {
				return err
			}
			return c.app.Implements.Delete(cmd.Context(), id)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *cli) notificationsCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox"},
		Short:   "Read your alerts",
	},
		c.notificationListCmd(),
		c.notificationReadCmd(),
		c.notificationCountCmd(),
	)
}

func (c *cli) notificationListCmd() *cobra.Command {
	var unread bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts, newest as sent by the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Notifications
			if err := store.Fetch(cmd.Context()); err != nil {
				return err
			}
			t := table{
				title:   fmt.Sprintf("Notificações (%d não lidas)", store.UnreadCount()),
				headers: []string{"ID", "Data", "Tipo", "Mensagem", "Lida"},
			}
			for _, n := range store.Items() {
				if unread && n.IsRead {
					continue
				}
				t.add(itoa(n.ID), datetime(n.CreatedAt), n.NotificationType, n.Message, yesNo(n.IsRead))
			}
			t.render(c.out())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&unread, "unread", "u", false, "only unread alerts")
	return cmd
}

func (c *cli) notificationReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark an alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args, 0, "notification id")
			if err != nil {
				return err
			}
			store := c.app.Notifications
			if err := store.Fetch(cmd.Context()); err != nil {
				return err
			}
			if err := store.MarkRead(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "%d unread\n", store.UnreadCount())
			return nil
		},
	}
}

func (c *cli) notificationCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of unread alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.app.Notifications.FetchUnreadCount(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out(), n)
			return nil
		},
	}
}

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Short:   "Show the fleet summary",
		Args:    cobra.NoArgs,
		PreRunE: c.requireLogin,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := c.app.Dashboard.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			noun := c.app.Terms.VehicleNounPlural()
			d := details{title: "Resumo da frota"}
			d.add(noun, itoa(summary.KPIs.TotalVehicles))
			d.add("Disponíveis", itoa(summary.KPIs.AvailableVehicles))
			d.add("Em uso", itoa(summary.KPIs.InUseVehicles))
			d.add("Em manutenção", itoa(summary.KPIs.MaintenanceVehicles))
			d.render(c.out())

			if summary.Limited() {
				fmt.Fprintln(c.out(), "Demo account: activate the plan to see journeys, mileage and upcoming maintenance.")
				return nil
			}
			if len(summary.ActiveJourneys) > 0 {
				c.renderJourneys("Jornadas em andamento", summary.ActiveJourneys)
			}
			if len(summary.UpcomingMaintenances) > 0 {
				t := table{title: "Próximas manutenções", headers: []string{c.app.Terms.VehicleNoun(), "Data", "Km"}}
				for _, m := range summary.UpcomingMaintenances {
					t.add(m.VehicleInfo, date(m.DueDate), num(m.DueKm))
				}
				t.render(c.out())
			}
			return nil
		},
	}
}
