package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

func (c *cli) fuelCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:     "fuel",
		Aliases: []string{"fuel-logs"},
		Short:   "Record fuel fill-ups",
	},
		c.fuelListCmd(),
		c.fuelAddCmd(),
		c.fuelRemoveCmd(),
		c.fuelSyncCmd(),
	)
}

func (c *cli) fuelListCmd() *cobra.Command {
	var suspicious bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fuel logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.FuelLogs
			if err := store.Fetch(cmd.Context()); err != nil {
				return err
			}
			items := store.Items()
			if suspicious {
				items = store.Suspicious()
			}

			t := table{
				title:   "Abastecimentos",
				headers: []string{"ID", "Data", c.app.Terms.VehicleNoun(), c.app.Terms.OdometerLabel(), "Litros", "Total", "R$/l", "Verificação"},
			}
			for _, f := range items {
				vehicle := itoa(f.VehicleID)
				if f.Vehicle != nil {
					vehicle = f.Vehicle.DisplayName()
				}
				t.add(itoa(f.ID), datetime(f.Timestamp), vehicle, decimal(f.Odometer), decimal(f.Liters),
					money(f.TotalCost), money(f.PricePerLiter()), string(f.VerificationStatus))
			}
			t.render(c.out())
			return nil
		},
	}
	cmd.Flags().BoolVar(&suspicious, "suspicious", false, "only logs the provider could not match")
	return cmd
}

func (c *cli) fuelAddCmd() *cobra.Command {
	var req transport.FuelLogRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a fill-up",
		Long: `Record a fill-up. When the API cannot be reached the log is kept in the
local outbox and sent by "trucar sync".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.ReceiptPhotoURL = optString(cmd, "receipt-url")
			f, err := c.app.FuelLogs.Create(cmd.Context(), req)
			if errors.Is(err, domain.ErrDeferred) {
				fmt.Fprintln(c.out(), "Queued for delivery.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Fuel log #%d: %s l, %s\n", f.ID, decimal(f.Liters), money(f.TotalCost))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&req.VehicleID, "vehicle", 0, "vehicle id")
	fl.Float64Var(&req.Odometer, "odometer", 0, "odometer reading")
	fl.Float64Var(&req.Liters, "liters", 0, "liters filled")
	fl.Float64Var(&req.TotalCost, "cost", 0, "total paid")
	fl.String("receipt-url", "", "link to the receipt photo")
	return cmd
}

func (c *cli) fuelRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a fuel log",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logID, err := intArg(args, 0, "fuel log id")
			if err != nil {
				return err
			}
			ok, err := c.confirmed(cmd, fmt.Sprintf("Excluir abastecimento #%d?", logID))
			if err != nil || !ok {
				return err
			}
			return c.app.FuelLogs.Delete(cmd.Context(), logID)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *cli) fuelSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile fuel logs with the fuel card provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.FuelLogs.Sync(cmd.Context())
			return err
		},
	}
}

func (c *cli) partsCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:     "parts",
		Aliases: []string{"inventory"},
		Short:   "Manage the parts inventory",
	},
		c.partListCmd(),
		c.partAddCmd(),
		c.partRemoveCmd(),
	)
}

func (c *cli) partListCmd() *cobra.Command {
	var filter transport.PartFilter
	var category string
	var low bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List parts and stock levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter.Category = domain.PartCategory(category)
			store := c.app.Parts
			if err := store.Fetch(cmd.Context(), filter); err != nil {
				return err
			}
			items := store.Items()
			if low {
				items = store.LowStock()
			}

			t := table{title: "Estoque", headers: []string{"ID", "Nome", "Categoria", "Marca", "Código", "Estoque", "Mínimo", "Local"}}
			for _, p := range items {
				stock := itoa(p.Stock)
				if p.IsLowStock() {
					stock = warningStyle.Render(stock)
				}
				t.add(itoa(p.ID), p.Name, string(p.Category), str(p.Brand), str(p.PartNumber), stock, itoa(p.MinimumStock), str(p.Location))
			}
			t.render(c.out())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&category, "category", "", "Peça, Pneu, Fluído, Consumível or Outro")
	f.StringVarP(&filter.Search, "search", "s", "", "search text")
	f.BoolVar(&low, "low", false, "only parts at or below the minimum stock")
	return cmd
}

func (c *cli) partAddCmd() *cobra.Command {
	var req transport.PartRequest
	var category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a part",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Category = domain.PartCategory(category)
			req.PartNumber = optString(cmd, "number")
			req.Brand = optString(cmd, "brand")
			req.Location = optString(cmd, "location")
			req.InitialQuantity = optInt(cmd, "quantity")
			req.Value = optFloat(cmd, "value")
			req.LifespanKm = optFloat(cmd, "lifespan-km")
			p, err := c.app.Parts.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Part #%d: %s (%d in stock)\n", p.ID, p.Name, p.Stock)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "part name")
	f.StringVar(&category, "category", string(domain.PartPiece), "Peça, Pneu, Fluído, Consumível or Outro")
	f.IntVar(&req.MinimumStock, "min-stock", 0, "minimum stock before an alert")
	f.Int("quantity", 0, "initial quantity")
	f.String("number", "", "part number")
	f.String("brand", "", "brand")
	f.String("location", "", "storage location")
	f.Float64("value", 0, "unit value")
	f.Float64("lifespan-km", 0, "expected lifespan in km (tires)")
	return cmd
}

func (c *cli) partRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a part",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partID, err := intArg(args, 0, "part id")
			if err != nil {
				return err
			}
			ok, err := c.confirmed(cmd, fmt.Sprintf("Excluir peça #%d?", partID))
			if err != nil || !ok {
				return err
			}
			return c.app.Parts.Delete(cmd.Context(), partID)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *cli) tiresCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:   "tires",
		Short: "Track tires per vehicle position",
	},
		c.tireLayoutCmd(),
		c.tireHistoryCmd(),
		c.tireInstallCmd(),
		c.tireRemoveCmd(),
	)
}

func (c *cli) tireLayoutCmd() *cobra.Command {
	var currentKm float64
	var critical bool

	cmd := &cobra.Command{
		Use:   "layout <vehicle-id>",
		Short: "Show installed tires and their wear",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := intArg(args, 0, "vehicle id")
			if err != nil {
				return err
			}
			store := c.app.Tires
			layout, err := store.FetchLayout(cmd.Context(), vehicleID)
			if err != nil {
				return err
			}
			tires := layout.Tires
			if critical {
				tires = store.Critical(currentKm)
			}

			title := fmt.Sprintf("Pneus do %s #%d", c.app.Terms.VehicleNoun(), vehicleID)
			if layout.AxleConfiguration != nil {
				title += " (" + *layout.AxleConfiguration + ")"
			}
			t := table{title: title, headers: []string{"ID", "Posição", "Pneu", "Instalado em", "Km instalação", "Desgaste"}}
			for i := range tires {
				tr := tires[i]
				name := "-"
				if tr.Part != nil {
					name = tr.Part.Name
				}
				wear, pct := tr.Wear(currentKm)
				t.add(itoa(tr.ID), tr.PositionCode, name, datetime(tr.InstallationDate), decimal(tr.InstallKm), wearLabel(wear, pct))
			}
			t.render(c.out())
			return nil
		},
	}

	cmd.Flags().Float64Var(&currentKm, "km", 0, "current odometer used to compute wear")
	cmd.Flags().BoolVar(&critical, "critical", false, "only tires at 90% of their lifespan or more")
	return cmd
}

func wearLabel(wear domain.TireWear, pct float64) string {
	label := fmt.Sprintf("%.0f%%", pct)
	switch wear {
	case domain.TireCritical:
		return negativeStyle.Render(label)
	case domain.TireWarning:
		return warningStyle.Render(label)
	default:
		return label
	}
}

func (c *cli) tireHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <vehicle-id>",
		Short: "List tires ever installed on a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := intArg(args, 0, "vehicle id")
			if err != nil {
				return err
			}
			history, err := c.app.Tires.FetchHistory(cmd.Context(), vehicleID)
			if err != nil {
				return err
			}
			t := table{title: "Histórico de pneus", headers: []string{"ID", "Posição", "Instalado", "Removido", "Km rodados", "Ativo"}}
			for _, tr := range history {
				t.add(itoa(tr.ID), tr.PositionCode, datetime(tr.InstallationDate), date(tr.RemovalDate), decimal(tr.KmRun), yesNo(tr.IsActive))
			}
			t.render(c.out())
			return nil
		},
	}
}

func (c *cli) tireInstallCmd() *cobra.Command {
	var req transport.TireInstallRequest

	cmd := &cobra.Command{
		Use:   "install <vehicle-id>",
		Short: "Install a tire from stock at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := intArg(args, 0, "vehicle id")
			if err != nil {
				return err
			}
			req.InstallEngineHours = optFloat(cmd, "hours")
			tr, err := c.app.Tires.Install(cmd.Context(), vehicleID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Tire #%d installed at %s.\n", tr.ID, tr.PositionCode)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&req.PartID, "part", 0, "tire part id")
	f.StringVar(&req.PositionCode, "position", "", "position code, e.g. 1E or 2DI")
	f.Float64Var(&req.InstallKm, "km", 0, "odometer at installation")
	f.Float64("hours", 0, "engine hours at installation")
	return cmd
}

func (c *cli) tireRemoveCmd() *cobra.Command {
	var req transport.TireRemoveRequest

	cmd := &cobra.Command{
		Use:   "remove <tire-id>",
		Short: "Remove an installed tire",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tireID, err := intArg(args, 0, "tire id")
			if err != nil {
				return err
			}
			req.RemovalEngineHours = optFloat(cmd, "hours")
			tr, err := c.app.Tires.Remove(cmd.Context(), tireID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Tire #%d removed after %s km.\n", tr.ID, decimal(tr.KmRun))
			return nil
		},
	}

	cmd.Flags().Float64Var(&req.RemovalKm, "km", 0, "odometer at removal")
	cmd.Flags().Float64("hours", 0, "engine hours at removal")
	return cmd
}

func (c *cli) costsCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:   "costs",
		Short: "Track vehicle costs",
	},
		c.costListCmd(),
		c.costAddCmd(),
	)
}

func (c *cli) costListCmd() *cobra.Command {
	var filter transport.CostFilter

	cmd := &cobra.Command{
		Use:   "list [vehicle-id]",
		Short: "List costs of one vehicle, or of the fleet within a period",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := c.app.Costs
			if len(args) == 1 {
				vehicleID, err := intArg(args, 0, "vehicle id")
				if err != nil {
					return err
				}
				if err := store.FetchByVehicle(cmd.Context(), vehicleID); err != nil {
					return err
				}
			} else if err := store.Fetch(cmd.Context(), filter); err != nil {
				return err
			}

			t := table{title: "Custos", headers: []string{"ID", c.app.Terms.VehicleNoun(), "Data", "Tipo", "Valor", "Notas"}}
			for _, cost := range store.Items() {
				t.add(itoa(cost.ID), itoa(cost.VehicleID), cost.Date.Date(), string(cost.CostType), money(cost.Amount), str(cost.Notes))
			}
			t.render(c.out())

			totals := store.Totals()
			if len(totals) == 0 {
				return nil
			}
			types := make([]string, 0, len(totals))
			for k := range totals {
				types = append(types, string(k))
			}
			sort.Strings(types)
			fmt.Fprintln(c.out())
			d := details{title: "Totais"}
			for _, k := range types {
				d.add(k, money(totals[domain.CostType(k)]))
			}
			d.render(c.out())
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.StartDate, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.EndDate, "to", "", "end date (YYYY-MM-DD)")
	return cmd
}

func (c *cli) costAddCmd() *cobra.Command {
	var req transport.CostRequest
	var costType string

	cmd := &cobra.Command{
		Use:   "add <vehicle-id>",
		Short: "Record a cost for a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := intArg(args, 0, "vehicle id")
			if err != nil {
				return err
			}
			req.CostType = domain.CostType(costType)
			req.Notes = optString(cmd, "notes")
			cost, err := c.app.Costs.Create(cmd.Context(), vehicleID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "Cost #%d: %s %s\n", cost.ID, cost.CostType, money(cost.Amount))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&costType, "type", string(domain.CostOther), "Manutenção, Combustível, Pedágio, Seguro, Pneu, Peças e Componentes, Multa or Outros")
	f.Float64Var(&req.Amount, "amount", 0, "amount")
	f.StringVar(&req.Date, "date", "", "date (YYYY-MM-DD)")
	f.String("notes", "", "notes")
	return cmd
}
