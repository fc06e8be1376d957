package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errOutboxDisabled = errors.New("outbox is disabled (OUTBOX_ENABLED=false)")

func (c *cli) syncCmd() *cobra.Command {
	var watch, list bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Send submissions queued while the API was unreachable",
		Long: `Fuel logs and maintenance requests created while the API could not be
reached are kept in a local outbox. sync sends them once; with --watch it keeps
checking connectivity and drains the outbox on a schedule until interrupted.`,
		Args:    cobra.NoArgs,
		PreRunE: c.requireLogin,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.app
			if app.Outbox == nil {
				return errOutboxDisabled
			}

			if list {
				items, err := app.Outbox.Pending(app.Config.Outbox.MaxSize)
				if err != nil {
					return err
				}
				t := table{title: "Fila de envio", headers: []string{"ID", "Tipo", "Criado em", "Tentativas", "Último erro"}}
				for _, item := range items {
					t.add(item.ID, item.Command(), item.Timestamp.Local().Format("2006-01-02 15:04"), itoa(item.Retries), item.LastError)
				}
				t.render(c.out())
				return nil
			}

			if watch {
				app.StartBackground()
				fmt.Fprintf(c.out(), "Watching the outbox every %s (%d queued). Press Ctrl+C to stop.\n",
					app.Config.Outbox.SyncInterval, app.Outbox.Size())
				<-cmd.Context().Done()
				return nil
			}

			status := app.Monitor.Refresh(cmd.Context())
			if !status.API {
				fmt.Fprintf(c.out(), "API unreachable (%s); %d item(s) stay queued.\n", status.APIError, status.OutboxSize)
				return nil
			}
			report, err := app.Outbox.Drain(cmd.Context())
			if err != nil {
				return err
			}
			if report.Expired > 0 {
				fmt.Fprintf(c.out(), "Discarded %d submission(s) older than %s.\n", report.Expired, app.Config.Outbox.MaxAge)
			}
			if report.Skipped {
				fmt.Fprintf(c.out(), "Nothing sent; %d item(s) stay queued.\n", app.Outbox.Size())
				return nil
			}
			fmt.Fprintf(c.out(), "Sent %d, retrying %d, dropped %d; %d still queued.\n",
				report.Sent, report.Requeued, report.Dropped, app.Outbox.Size())
			if report.Held > 0 {
				fmt.Fprintf(c.out(), "%d item(s) belong to another account and wait for its next login.\n", report.Held)
			}
			if report.Interrupted {
				fmt.Fprintln(c.out(), "Replay stopped early; remaining items will be retried on the next sync.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep draining on a schedule until interrupted")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "show queued submissions without sending them")
	return cmd
}
