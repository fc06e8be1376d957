package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

func (c *cli) maintenanceCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:     "maintenance",
		Aliases: []string{"m"},
		Short:   "Report and follow maintenance requests",
	},
		c.maintenanceListCmd(),
		c.maintenanceShowCmd(),
		c.maintenanceCreateCmd(),
		c.maintenanceStatusCmd(),
		c.maintenanceCommentCmd(),
	)
}

func (c *cli) maintenanceListCmd() *cobra.Command {
	var filter transport.MaintenanceFilter
	var open bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List maintenance requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Maintenance
			if err := store.Fetch(cmd.Context(), filter); err != nil {
				return err
			}
			items := store.Items()
			if open {
				items = store.Open()
			}

			t := table{
				title:   "Manutenções",
				headers: []string{"ID", c.app.Terms.VehicleNoun(), "Categoria", "Status", "Solicitante", "Aberta em", "Problema"},
			}
			for _, m := range items {
				t.add(itoa(m.ID), vehicleName(m.Vehicle), string(m.Category), string(m.Status),
					userName(m.Reporter), datetime(m.CreatedAt), m.ProblemDescription)
			}
			t.render(c.out())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&filter.Search, "search", "s", "", "search text")
	f.IntVar(&filter.VehicleID, "vehicle", 0, "vehicle id")
	f.IntVar(&filter.Limit, "limit", 0, "maximum number of requests")
	f.BoolVar(&open, "open", false, "hide rejected and completed requests")
	return cmd
}

func (c *cli) maintenanceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a request with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := intArg(args, 0, "request id")
			if err != nil {
				return err
			}
			m, err := c.app.Maintenance.Get(cmd.Context(), requestID)
			if err != nil {
				return err
			}

			d := details{title: fmt.Sprintf("Solicitação #%d", m.ID)}
			d.add(c.app.Terms.VehicleNoun(), vehicleName(m.Vehicle))
			d.add("Categoria", string(m.Category))
			d.add("Status", string(m.Status))
			d.add("Solicitante", userName(m.Reporter))
			d.add("Aprovador", userName(m.Approver))
			d.add("Problema", m.ProblemDescription)
			d.add("Notas do gestor", str(m.ManagerNotes))
			d.render(c.out())

			comments := m.Comments
			if len(comments) == 0 {
				if comments, err = c.app.Maintenance.Comments(cmd.Context(), requestID); err != nil {
					return err
				}
			}
			t := table{title: "Comentários", headers: []string{"Quando", "Autor", "Comentário", "Anexo"}}
			for _, cm := range comments {
				t.add(datetime(cm.CreatedAt), userName(cm.User), cm.CommentText, str(cm.FileURL))
			}
			fmt.Fprintln(c.out())
			t.render(c.out())
			return nil
		},
	}
}

func (c *cli) maintenanceCreateCmd() *cobra.Command {
	var req transport.MaintenanceCreateRequest
	var category string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Report a problem with a vehicle",
		Long: `Report a problem with a vehicle. When the API cannot be reached the
request is kept in the local outbox and sent by "trucar sync".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Category = domain.MaintenanceCategory(category)
			m, err := c.app.Maintenance.Create(cmd.Context(), req)
			if errors.Is(err, domain.ErrDeferred) {
				fmt.Fprintln(c.out(), "Queued for delivery.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Request #%d: %s\n", m.ID, m.Status)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&req.VehicleID, "vehicle", 0, "vehicle id")
	f.StringVar(&category, "category", string(domain.MaintenanceMechanical), "Mecânica, Elétrica, Funilaria or Outro")
	f.StringVarP(&req.ProblemDescription, "description", "d", "", "what is wrong")
	return cmd
}

func (c *cli) maintenanceStatusCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "status <id>",
		Short: "Approve, reject or progress a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := intArg(args, 0, "request id")
			if err != nil {
				return err
			}
			req := transport.MaintenanceStatusRequest{
				Status:       domain.MaintenanceStatus(status),
				ManagerNotes: optString(cmd, "notes"),
			}
			m, err := c.app.Maintenance.UpdateStatus(cmd.Context(), requestID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Request #%d: %s\n", m.ID, m.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Pendente, Aprovado, Rejeitado, Em Progresso or Concluído")
	cmd.Flags().String("notes", "", "manager notes")
	return cmd
}

func (c *cli) maintenanceCommentCmd() *cobra.Command {
	var req transport.MaintenanceCommentRequest

	cmd := &cobra.Command{
		Use:   "comment <id>",
		Short: "Add a comment to a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := intArg(args, 0, "request id")
			if err != nil {
				return err
			}
			req.FileURL = optString(cmd, "file-url")
			cm, err := c.app.Maintenance.AddComment(cmd.Context(), requestID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Comment #%d added.\n", cm.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.CommentText, "text", "t", "", "comment text")
	cmd.Flags().String("file-url", "", "link to an attachment")
	return cmd
}
