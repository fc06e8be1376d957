package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastygo/trucar/domain"
)

var errLoginFailed = errors.New("login failed")

func (c *cli) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Long: `Sign in with e-mail and password. Missing values are asked for
interactively; the password is never echoed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if email == "" {
				if email, err = c.opts.Prompter.Input("E-mail", "voce@empresa.com.br"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = c.opts.Prompter.Password("Senha"); err != nil {
					return err
				}
			}

			sessions := c.app.Sessions
			if !sessions.Login(cmd.Context(), domain.Credentials{Email: email, Password: password}) {
				return errLoginFailed
			}
			fmt.Fprintf(c.out(), "Logged in as %s (%s).\n", userName(sessions.User()), sectorName(sessions.Sector()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account e-mail")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out(), "Logged out.")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Short:   "Show the current user and session",
		Args:    cobra.NoArgs,
		PreRunE: c.requireLogin,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := c.app.Sessions.Snapshot()
			u := s.User

			d := details{title: "Sessão"}
			d.add("Usuário", userName(u))
			d.add("E-mail", u.Email)
			d.add("Perfil", string(u.Role))
			if u.Organization != nil {
				d.add("Organização", u.Organization.Name)
			}
			d.add("Setor", sectorName(u.Sector()))
			d.add("Administrador", yesNo(u.IsSuperuser))
			if s.IsImpersonating() {
				d.add("Personificado por", userName(s.OriginalUser))
			}
			if s.ExpiresAt != nil {
				expires := s.ExpiresAt.Local().Format("2006-01-02 15:04")
				if s.IsExpired(time.Now()) {
					expires += " (expirado)"
				}
				d.add("Token expira", expires)
			}
			d.render(c.out())
			return nil
		},
	}
}

func (c *cli) termsCmd() *cobra.Command {
	var sector string

	cmd := &cobra.Command{
		Use:   "terms",
		Short: "Show the vocabulary used for the current (or a given) sector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			strategy := c.app.Terms.Strategy()
			if sector != "" {
				parsed, ok := domain.ParseSector(sector)
				if !ok {
					return fmt.Errorf("unknown sector %q", sector)
				}
				strategy = domain.StrategyFor(parsed)
			}

			d := details{title: "Terminologia: " + sectorName(strategy.Sector)}
			d.add("Veículo", strategy.VehicleNoun+" / "+strategy.VehicleNounPlural)
			d.add("Jornada", strategy.JourneyNoun+" / "+strategy.JourneyNounPlural)
			d.add("Distância", strategy.DistanceUnit)
			d.add("Consumo", strategy.FuelUnit())
			d.add("Identificação", strategy.PlateOrIdentifierLabel)
			d.add("Medidor", strategy.OdometerLabel)
			d.add("Página de veículos", strategy.VehiclePageTitle)
			d.add("Página de jornadas", strategy.JourneyPageTitle)
			d.add("Histórico", strategy.JourneyHistoryTitle)
			d.add("Iniciar", strategy.StartJourneyButtonLabel)
			d.add("Adicionar", strategy.AddVehicleButtonLabel)
			d.render(c.out())
			return nil
		},
	}

	cmd.Flags().StringVar(&sector, "sector", "", "agronegocio, servicos, frete or construcao_civil")
	return cmd
}

func (c *cli) impersonateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "impersonate <user-id>",
		Short:   "Act as another user (administrators only)",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.requireLogin,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := intArg(args, 0, "user id")
			if err != nil {
				return err
			}
			route, err := c.app.Admin.Impersonate(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Now acting as %s. Next: %s\n", userName(c.app.Sessions.User()), route)
			return nil
		},
	}
}

func (c *cli) unimpersonateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unimpersonate",
		Short: "Return to the administrator session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			route, err := c.app.Sessions.StopImpersonation(cmd.Context())
			if err != nil {
				return err
			}
			if c.app.Sessions.IsAuthenticated() {
				fmt.Fprintf(c.out(), "Back as %s. Next: %s\n", userName(c.app.Sessions.User()), route)
			} else {
				fmt.Fprintf(c.out(), "No impersonation in progress, logged out. Next: %s\n", route)
			}
			return nil
		},
	}
}

func sectorName(s domain.Sector) string {
	switch s {
	case domain.SectorAgriculture:
		return "Agronegócio"
	case domain.SectorServices:
		return "Serviços"
	case domain.SectorFreight:
		return "Frete"
	case domain.SectorConstruction:
		return "Construção civil"
	default:
		return "não definido"
	}
}
