// Package cli is the trucar command line: a cobra command tree over the
// session manager and the resource stores.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/trucar/internal/config"
	"github.com/fastygo/trucar/pkg/logger"
)

var errNotLoggedIn = errors.New("not logged in, run `trucar login` first")

// Options replace the process defaults, for tests and embedding.
type Options struct {
	Stdout     io.Writer
	Stderr     io.Writer
	LoadConfig func() (*config.Config, error)
	Prompter   Prompter
	// Dial replaces the TCP dialer of the API client.
	Dial fasthttp.DialFunc
}

type cli struct {
	opts Options
	app  *App

	apiURL   string
	storage  string
	logLevel string
}

// ExecuteContext runs the command line against os.Args.
func ExecuteContext(ctx context.Context) error {
	return Run(ctx, Options{}, os.Args[1:])
}

// Run executes one command and releases every resource it opened.
func Run(ctx context.Context, opts Options, args []string) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.Prompter == nil {
		opts.Prompter = huhPrompter{}
	}

	c := &cli{opts: opts}
	root := c.rootCommand()
	root.SetArgs(args)
	defer c.close()
	return root.ExecuteContext(ctx)
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "trucar",
		Short: "TruCar fleet management from the terminal",
		Long: `trucar talks to the TruCar backend on behalf of a manager, a driver or an
administrator. The session is kept in local storage between invocations and
the vocabulary (vehicle, journey, odometer) follows the organization's sector.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return c.bootstrap(cmd.Context())
		},
	}
	root.SetOut(c.opts.Stdout)
	root.SetErr(c.opts.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&c.apiURL, "api-url", "", "API base URL (overrides TRUCAR_API_URL)")
	pf.StringVar(&c.storage, "storage", "", "session storage: bolt, redis or postgres (overrides STORAGE_DRIVER)")
	pf.StringVar(&c.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.termsCmd(),
		c.impersonateCmd(),
		c.unimpersonateCmd(),
		c.vehiclesCmd(),
		c.journeysCmd(),
		c.maintenanceCmd(),
		c.fuelCmd(),
		c.partsCmd(),
		c.tiresCmd(),
		c.costsCmd(),
		c.freightCmd(),
		c.clientsCmd(),
		c.documentsCmd(),
		c.usersCmd(),
		c.implementsCmd(),
		c.notificationsCmd(),
		c.dashboardCmd(),
		c.adminCmd(),
		c.syncCmd(),
	)
	return root
}

func (c *cli) bootstrap(ctx context.Context) error {
	cfg, err := c.opts.LoadConfig()
	if err != nil {
		return err
	}
	if c.apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(c.apiURL, "/")
	}
	if c.logLevel != "" {
		cfg.Logger.Level = c.logLevel
	}
	if c.storage != "" {
		driver := strings.ToLower(c.storage)
		switch driver {
		case config.StorageBolt, config.StorageRedis, config.StoragePostgres:
			cfg.Storage.Driver = driver
		default:
			return fmt.Errorf("unknown storage driver %q", c.storage)
		}
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Output:   c.opts.Stderr,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	app, err := Bootstrap(ctx, cfg, Dependencies{
		Logger:   zapLogger,
		Notifier: noticePrinter{w: c.opts.Stderr},
		Dial:     c.opts.Dial,
	})
	if err != nil {
		return err
	}
	c.app = app
	return nil
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	if err := c.app.Close(context.Background()); err != nil {
		c.app.Logger.Warn("shutdown incomplete", zap.Error(err))
	}
	_ = c.app.Logger.Sync()
}

func (c *cli) requireLogin(*cobra.Command, []string) error {
	if c.app == nil || !c.app.Sessions.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

// group attaches children to parent, each requiring a session.
func (c *cli) group(parent *cobra.Command, children ...*cobra.Command) *cobra.Command {
	for _, child := range children {
		child.PreRunE = c.requireLogin
		parent.AddCommand(child)
	}
	return parent
}

func (c *cli) out() io.Writer {
	return c.opts.Stdout
}

// confirmed asks before a destructive action unless --yes was given.
func (c *cli) confirmed(cmd *cobra.Command, message string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	return c.opts.Prompter.Confirm(message)
}

func intArg(args []string, i int, name string) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing %s", name)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, args[i])
	}
	return n, nil
}

func optString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func optFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func optInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func optBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}
