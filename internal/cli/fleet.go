package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

func (c *cli) vehiclesCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:     "vehicles",
		Aliases: []string{"vehicle", "v"},
		Short:   "List and manage the fleet",
	},
		c.vehicleListCmd(),
		c.vehicleShowCmd(),
		c.vehicleAddCmd(),
		c.vehicleUpdateCmd(),
		c.vehicleRemoveCmd(),
	)
}

func (c *cli) vehicleListCmd() *cobra.Command {
	var filter transport.VehicleFilter
	var available bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vehicles one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Vehicles
			if err := store.Fetch(cmd.Context(), filter); err != nil {
				return err
			}
			items := store.Items()
			if available {
				items = store.Available()
			}

			terms := c.app.Terms
			t := table{
				title:   fmt.Sprintf("%s (%d)", terms.VehiclePageTitle(), store.TotalItems()),
				headers: []string{"ID", terms.VehicleNoun(), terms.PlateOrIdentifierLabel(), "Ano", "Status", terms.OdometerLabel()},
			}
			for _, v := range items {
				meter := v.CurrentKm
				if terms.DistanceUnit() != "km" && v.CurrentEngineHours != nil {
					meter = v.CurrentEngineHours
				}
				t.add(itoa(v.ID), v.Brand+" "+v.Model, str(firstSet(v.LicensePlate, v.Identifier)), itoa(v.Year), string(v.Status), num(meter))
			}
			t.render(c.out())
			return nil
		},
	}

	cmd.Flags().IntVar(&filter.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&filter.RowsPerPage, "rows", 8, "rows per page")
	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "filter by brand, model or plate")
	cmd.Flags().BoolVar(&available, "available", false, "only show vehicles available for a journey")
	return cmd
}

func (c *cli) vehicleShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := intArg(args, 0, "vehicle id")
			if err != nil {
				return err
			}
			v, err := c.app.Vehicles.Get(cmd.Context(), vehicleID)
			if err != nil {
				return err
			}
			terms := c.app.Terms
			d := details{title: v.DisplayName()}
			d.add("ID", itoa(v.ID))
			d.add("Ano", itoa(v.Year))
			d.add("Status", string(v.Status))
			d.add(terms.PlateOrIdentifierLabel(), str(firstSet(v.LicensePlate, v.Identifier)))
			d.add("Km atual", num(v.CurrentKm))
			d.add("Horas de motor", num(v.CurrentEngineHours))
			d.add("Próxima manutenção", date(v.NextMaintenanceDate))
			d.add("Manutenção em (km)", num(v.NextMaintenanceKm))
			d.add("Telemetria", str(v.TelemetryDeviceID))
			d.add("Observações", str(v.MaintenanceNotes))
			d.render(c.out())
			return nil
		},
	}
}

func (c *cli) vehicleAddCmd() *cobra.Command {
	var req transport.VehicleCreateRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a vehicle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.LicensePlate = optString(cmd, "plate")
			req.Identifier = optString(cmd, "identifier")
			req.TelemetryDeviceID = optString(cmd, "telemetry")
			req.CurrentKm = optFloat(cmd, "km")
			req.CurrentEngineHours = optFloat(cmd, "hours")
			req.NextMaintenanceDate = optString(cmd, "next-maintenance")
			req.NextMaintenanceKm = optFloat(cmd, "next-maintenance-km")
			v, err := c.app.Vehicles.Add(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "%s #%d: %s\n", c.app.Terms.VehicleNoun(), v.ID, v.DisplayName())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Brand, "brand", "", "brand")
	f.StringVar(&req.Model, "model", "", "model")
	f.IntVar(&req.Year, "year", 0, "model year")
	f.String("plate", "", "license plate")
	f.String("identifier", "", "identifier for machines without a plate")
	f.String("telemetry", "", "telemetry device id")
	f.Float64("km", 0, "current odometer")
	f.Float64("hours", 0, "current engine hours")
	f.String("next-maintenance", "", "next maintenance date (YYYY-MM-DD)")
	f.Float64("next-maintenance-km", 0, "next maintenance odometer")
	return cmd
}

func (c *cli) vehicleUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change vehicle fields; only the flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := intArg(args, 0, "vehicle id")
			if err != nil {
				return err
			}
			req := transport.VehicleUpdateRequest{
				Brand:               optString(cmd, "brand"),
				Model:               optString(cmd, "model"),
				Year:                optInt(cmd, "year"),
				LicensePlate:        optString(cmd, "plate"),
				Identifier:          optString(cmd, "identifier"),
				CurrentKm:           optFloat(cmd, "km"),
				CurrentEngineHours:  optFloat(cmd, "hours"),
				NextMaintenanceDate: optString(cmd, "next-maintenance"),
				NextMaintenanceKm:   optFloat(cmd, "next-maintenance-km"),
				MaintenanceNotes:    optString(cmd, "notes"),
			}
			if status := optString(cmd, "status"); status != nil {
				s := domain.VehicleStatus(*status)
				req.Status = &s
			}
			v, err := c.app.Vehicles.Update(cmd.Context(), vehicleID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "%s #%d: %s\n", c.app.Terms.VehicleNoun(), v.ID, v.Status)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("brand", "", "brand")
	f.String("model", "", "model")
	f.Int("year", 0, "model year")
	f.String("status", "", "Disponível, Em uso or Em manutenção")
	f.String("plate", "", "license plate")
	f.String("identifier", "", "identifier")
	f.Float64("km", 0, "current odometer")
	f.Float64("hours", 0, "current engine hours")
	f.String("next-maintenance", "", "next maintenance date (YYYY-MM-DD)")
	f.Float64("next-maintenance-km", 0, "next maintenance odometer")
	f.String("notes", "", "maintenance notes")
	return cmd
}

func (c *cli) vehicleRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a vehicle",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := intArg(args, 0, "vehicle id")
			if err != nil {
				return err
			}
			ok, err := c.confirmed(cmd, fmt.Sprintf("Excluir %s #%d?", c.app.Terms.VehicleNoun(), vehicleID))
			if err != nil || !ok {
				return err
			}
			return c.app.Vehicles.Delete(cmd.Context(), vehicleID)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *cli) journeysCmd() *cobra.Command {
	return c.group(&cobra.Command{
		Use:     "journeys",
		Aliases: []string{"journey", "j"},
		Short:   "Start, end and review journeys",
	},
		c.journeyListCmd(),
		c.journeyActiveCmd(),
		c.journeyStartCmd(),
		c.journeyEndCmd(),
		c.journeyRemoveCmd(),
	)
}

func (c *cli) journeyListCmd() *cobra.Command {
	var filter transport.JourneyFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journeys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Journeys.Fetch(cmd.Context(), filter); err != nil {
				return err
			}
			c.renderJourneys(c.app.Terms.JourneyHistoryTitle(), c.app.Journeys.Items())
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&filter.DriverID, "driver", 0, "driver id")
	f.IntVar(&filter.VehicleID, "vehicle", 0, "vehicle id")
	f.StringVar(&filter.DateFrom, "from", "", "start date (YYYY-MM-DD)")
	f.StringVar(&filter.DateTo, "to", "", "end date (YYYY-MM-DD)")
	return cmd
}

func (c *cli) journeyActiveCmd() *cobra.Command {
	var mine bool

	cmd := &cobra.Command{
		Use:   "active",
		Short: "List journeys in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Journeys
			if err := store.FetchActive(cmd.Context()); err != nil {
				return err
			}
			items := store.Active()
			if mine {
				items = nil
				if j, ok := store.CurrentUserActive(); ok {
					items = []domain.Journey{*j}
				}
			}
			c.renderJourneys(c.app.Terms.JourneyPageTitle(), items)
			return nil
		},
	}
	cmd.Flags().BoolVar(&mine, "mine", false, "only the journey of the current user")
	return cmd
}

func (c *cli) renderJourneys(title string, items []domain.Journey) {
	terms := c.app.Terms
	t := table{
		title:   title,
		headers: []string{"ID", terms.VehicleNoun(), "Motorista", "Início", "Fim", terms.OdometerLabel(), "Destino"},
	}
	for _, j := range items {
		end := "em andamento"
		if j.EndTime != nil {
			end = datetime(*j.EndTime)
		}
		meter := decimal(j.StartMileage)
		if j.EndMileage != nil {
			meter += " → " + decimal(*j.EndMileage)
		}
		t.add(itoa(j.ID), vehicleName(j.Vehicle), userName(j.Driver), datetime(j.StartTime), end, meter, str(j.DestinationAddress))
	}
	t.render(c.out())
}

func (c *cli) journeyStartCmd() *cobra.Command {
	var req transport.JourneyStartRequest

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a journey with a vehicle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.TripType = domain.JourneyFreeRoam
			if req.DestinationAddress != "" {
				req.TripType = domain.JourneySpecificDestination
			}
			req.StartEngineHours = optFloat(cmd, "hours")
			req.ImplementID = optInt(cmd, "implement")
			j, err := c.app.Journeys.Start(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "%s #%d started at %s\n", c.app.Terms.JourneyNoun(), j.ID, datetime(j.StartTime))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&req.VehicleID, "vehicle", 0, "vehicle id")
	f.Float64Var(&req.StartMileage, "km", 0, "odometer at start")
	f.Float64("hours", 0, "engine hours at start")
	f.StringVar(&req.DestinationAddress, "destination", "", "destination address (free roam when omitted)")
	f.StringVar(&req.TripDescription, "description", "", "what the trip is for")
	f.Int("implement", 0, "implement id attached to the machine")
	return cmd
}

func (c *cli) journeyEndCmd() *cobra.Command {
	var req transport.JourneyEndRequest

	cmd := &cobra.Command{
		Use:   "end <id>",
		Short: "End a journey and record the final odometer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journeyID, err := intArg(args, 0, "journey id")
			if err != nil {
				return err
			}
			req.EndEngineHours = optFloat(cmd, "hours")
			v, err := c.app.Journeys.End(cmd.Context(), journeyID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out(), "%s: %s (%s %s)\n", v.DisplayName(), v.Status, c.app.Terms.OdometerLabel(), num(v.CurrentKm))
			return nil
		},
	}

	cmd.Flags().Float64Var(&req.EndMileage, "km", 0, "odometer at the end")
	cmd.Flags().Float64("hours", 0, "engine hours at the end")
	return cmd
}

func (c *cli) journeyRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a journey",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journeyID, err := intArg(args, 0, "journey id")
			if err != nil {
				return err
			}
			ok, err := c.confirmed(cmd, fmt.Sprintf("Excluir %s #%d?", c.app.Terms.JourneyNoun(), journeyID))
			if err != nil || !ok {
				return err
			}
			return c.app.Journeys.Delete(cmd.Context(), journeyID)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}

func firstSet(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}
