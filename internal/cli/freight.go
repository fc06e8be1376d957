package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

func (c *cli) freightCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:     "freight",
		Aliases: []string{"orders"},
		Short:   "Dispatch and run freight orders",
	},
		c.freightListCmd(),
		c.freightShowCmd(),
		c.freightCreateCmd(),
		c.freightStatusCmd(),
		c.freightClaimCmd(),
		c.freightCompleteStopCmd(),
	)
}

func (c *cli) freightListCmd() *cobra.Command {
	var open, mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List freight orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Freight
			title := "Ordens de frete"
			var err error
			switch {
			case mine:
				title = "Minhas ordens pendentes"
				err = store.FetchMyPending(cmd.Context())
			case open:
				title = "Ordens em aberto"
				err = store.FetchOpen(cmd.Context())
			default:
				err = store.Fetch(cmd.Context())
			}
			if err != nil {
				return err
			}

			t := table{title: title, headers: []string{"ID", "Status", "Cliente", c.app.Terms.VehicleNoun(), "Motorista", "Paradas", "Próxima parada"}}
			for _, o := range store.Items() {
				clientName := "-"
				if o.Client != nil {
					clientName = o.Client.Name
				}
				next := "-"
				if stop := o.NextStop(); stop != nil {
					next = string(stop.Type) + ": " + stop.Address
				}
				t.add(itoa(o.ID), string(o.Status), clientName, vehicleName(o.Vehicle), userName(o.Driver), itoa(len(o.StopPoints)), next)
			}
			t.render(c.out())
			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "orders nobody has claimed yet")
	cmd.Flags().BoolVar(&mine, "mine", false, "orders assigned to the current driver")
	return cmd
}

func (c *cli) freightShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an order with its stops",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := intArg(args, 0, "order id")
			if err != nil {
				return err
			}
			store := c.app.Freight
			if err := store.Fetch(cmd.Context()); err != nil {
				return err
			}
			o, ok := store.Find(orderID)
			if !ok {
				return domain.ErrFreightNotFound
			}

			d := details{title: fmt.Sprintf("Ordem #%d", o.ID)}
			d.add("Status", string(o.Status))
			if o.Client != nil {
				d.add("Cliente", o.Client.Name)
			}
			d.add("Descrição", str(o.Description))
			d.add(c.app.Terms.VehicleNoun(), vehicleName(o.Vehicle))
			d.add("Motorista", userName(o.Driver))
			d.add("Início previsto", date(o.ScheduledStartTime))
			d.add("Fim previsto", date(o.ScheduledEndTime))
			d.render(c.out())

			t := table{title: "Paradas", headers: []string{"ID", "#", "Tipo", "Status", "Endereço", "Previsto", "Chegada"}}
			for _, s := range o.StopPoints {
				arrival := "-"
				if s.ActualArrivalTime != nil {
					arrival = datetime(*s.ActualArrivalTime)
				}
				t.add(itoa(s.ID), itoa(s.SequenceOrder), string(s.Type), string(s.Status), s.Address, datetime(s.ScheduledTime), arrival)
			}
			fmt.Fprintln(c.out())
			t.render(c.out())
			return nil
		},
	}
}

func (c *cli) freightCreateCmd() *cobra.Command {
	var req transport.FreightOrderCreateRequest
	var stops []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order for a client",
		Long: `Create an order for a client. Each --stop is "Type;Address;Scheduled time",
for example --stop "Coleta;Rua A, 10, Campinas;2026-11-03T08:00:00".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.StopPoints = req.StopPoints[:0]
			for i, raw := range stops {
				stop, err := parseStop(raw, i+1)
				if err != nil {
					return err
				}
				req.StopPoints = append(req.StopPoints, stop)
			}
			req.Description = optString(cmd, "description")
			req.ScheduledStartTime = optString(cmd, "start")
			req.ScheduledEndTime = optString(cmd, "end")
			o, err := c.app.Freight.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Order #%d: %s, %d stops\n", o.ID, o.Status, len(o.StopPoints))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&req.ClientID, "client", 0, "client id")
	f.StringArrayVar(&stops, "stop", nil, `stop point "Type;Address;Scheduled time" (repeatable)`)
	f.String("description", "", "description")
	f.String("start", "", "scheduled start")
	f.String("end", "", "scheduled end")
	return cmd
}

func parseStop(raw string, seq int) (transport.StopPointRequest, error) {
	parts := strings.SplitN(raw, ";", 3)
	if len(parts) != 3 {
		return transport.StopPointRequest{}, fmt.Errorf("stop %d: want \"Type;Address;Scheduled time\", got %q", seq, raw)
	}
	return transport.StopPointRequest{
		SequenceOrder: seq,
		Type:          domain.StopPointType(strings.TrimSpace(parts[0])),
		Address:       strings.TrimSpace(parts[1]),
		ScheduledTime: strings.TrimSpace(parts[2]),
	}, nil
}

func (c *cli) freightStatusCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "status <id>",
		Short: "Move an order through its workflow",
		Long: `Move an order through its workflow: Pendente → Em Trânsito → Entregue,
or to Cancelado from either open state. Delivered and canceled orders are final.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := intArg(args, 0, "order id")
			if err != nil {
				return err
			}
			store := c.app.Freight
			// Load the order so illegal transitions are refused before any request.
			if err := store.Fetch(cmd.Context()); err != nil {
				return err
			}
			next := domain.FreightStatus(status)
			o, err := store.Update(cmd.Context(), orderID, transport.FreightOrderUpdateRequest{Status: &next})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Order #%d: %s\n", o.ID, o.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Em Trânsito, Entregue or Cancelado")
	return cmd
}

func (c *cli) freightClaimCmd() *cobra.Command {
	var vehicleID int

	cmd := &cobra.Command{
		Use:   "claim <id>",
		Short: "Take an open order with one of the fleet's vehicles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := intArg(args, 0, "order id")
			if err != nil {
				return err
			}
			store := c.app.Freight
			if err := store.FetchOpen(cmd.Context()); err != nil {
				return err
			}
			o, err := store.Claim(cmd.Context(), orderID, vehicleID)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Order #%d claimed with %s.\n", o.ID, vehicleName(o.Vehicle))
			return nil
		},
	}

	cmd.Flags().IntVar(&vehicleID, "vehicle", 0, "vehicle id")
	return cmd
}

func (c *cli) freightCompleteStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete-stop <stop-id>",
		Short: "Mark a stop point as reached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stopID, err := intArg(args, 0, "stop id")
			if err != nil {
				return err
			}
			s, err := c.app.Freight.CompleteStop(cmd.Context(), stopID)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Stop #%d: %s\n", s.ID, s.Status)
			return nil
		},
	}
}

func (c *cli) clientsCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:   "clients",
		Short: "Manage freight clients",
	},
		c.clientListCmd(),
		c.clientAddCmd(),
		c.clientRemoveCmd(),
	)
}

func (c *cli) clientListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Clients
			if err := store.Fetch(cmd.Context()); err != nil {
				return err
			}
			t := table{title: "Clientes", headers: []string{"ID", "Nome", "Contato", "Telefone", "E-mail", "Cidade"}}
			for _, cl := range store.Items() {
				city := str(cl.AddressCity)
				if cl.AddressState != nil {
					city += "/" + *cl.AddressState
				}
				t.add(itoa(cl.ID), cl.Name, str(cl.ContactPerson), str(cl.Phone), str(cl.Email), city)
			}
			t.render(c.out())
			return nil
		},
	}
}

func (c *cli) clientAddCmd() *cobra.Command {
	var req transport.ClientRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.ContactPerson = optString(cmd, "contact")
			req.Phone = optString(cmd, "phone")
			req.Email = optString(cmd, "email")
			req.CEP = optString(cmd, "cep")
			req.AddressStreet = optString(cmd, "street")
			req.AddressNumber = optString(cmd, "number")
			req.AddressNeighborhood = optString(cmd, "neighborhood")
			req.AddressCity = optString(cmd, "city")
			req.AddressState = optString(cmd, "state")
			cl, err := c.app.Clients.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Client #%d: %s\n", cl.ID, cl.Name)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "company name")
	f.String("contact", "", "contact person")
	f.String("phone", "", "phone")
	f.String("email", "", "e-mail")
	f.String("cep", "", "postal code")
	f.String("street", "", "street")
	f.String("number", "", "street number")
	f.String("neighborhood", "", "neighborhood")
	f.String("city", "", "city")
	f.String("state", "", "two-letter state code")
	return cmd
}

func (c *cli) clientRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a client",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := intArg(args, 0, "client id")
			if err != nil {
				return err
			}
			ok, err := c.confirmed(cmd, fmt.Sprintf("Excluir cliente #%d?", clientID))
			if err != nil || !ok {
				return err
			}
			return c.app.Clients.Delete(cmd.Context(), clientID)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *cli) documentsCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Keep licenses, insurance and inspections up to date",
	},
		c.documentListCmd(),
		c.documentUploadCmd(),
		c.documentRemoveCmd(),
	)
}

func (c *cli) documentListCmd() *cobra.Command {
	var expiringDays int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Documents
			if err := store.Fetch(cmd.Context()); err != nil {
				return err
			}
			items := store.Items()
			title := "Documentos"
			if expiringDays > 0 {
				items = store.ExpiringBy(time.Now().AddDate(0, 0, expiringDays))
				title = fmt.Sprintf("Documentos vencendo em %d dias", expiringDays)
			}

			t := table{title: title, headers: []string{"ID", "Tipo", "Vencimento", "Titular", "Arquivo"}}
			for _, doc := range items {
				expiry := doc.ExpiryDate.Date()
				if doc.ExpiryDate.Before(time.Now()) {
					expiry = negativeStyle.Render(expiry)
				}
				t.add(itoa(doc.ID), doc.DocumentType, expiry, str(doc.OwnerInfo), doc.FileURL)
			}
			t.render(c.out())
			return nil
		},
	}
	cmd.Flags().IntVar(&expiringDays, "expiring", 0, "only documents expiring within this many days")
	return cmd
}

func (c *cli) documentUploadCmd() *cobra.Command {
	var doc transport.DocumentUpload
	var path string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a document for a vehicle or a driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readFile(path)
			if err != nil {
				return err
			}
			doc.File = data
			doc.FileName = filepath.Base(path)
			uploaded, err := c.app.Documents.Upload(cmd.Context(), doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Document #%d: %s, expires %s\n", uploaded.ID, uploaded.DocumentType, uploaded.ExpiryDate.Date())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&doc.DocumentType, "type", "", "document type, e.g. CNH, CRLV, Seguro")
	f.StringVar(&doc.ExpiryDate, "expiry", "", "expiry date (YYYY-MM-DD)")
	f.IntVar(&doc.VehicleID, "vehicle", 0, "vehicle id")
	f.IntVar(&doc.DriverID, "driver", 0, "driver id")
	f.StringVar(&doc.Notes, "notes", "", "notes")
	f.StringVarP(&path, "file", "f", "", "file to upload")
	return cmd
}

func (c *cli) documentRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID, err := intArg(args, 0, "document id")
			if err != nil {
				return err
			}
			ok, err := c.confirmed(cmd, fmt.Sprintf("Excluir documento #%d?", docID))
			if err != nil || !ok {
				return err
			}
			return c.app.Documents.Delete(cmd.Context(), docID)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("missing --file")
	}
	return os.ReadFile(path)
}
