package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const defaultPickTimeout = 30 * time.Second

func newPickCommand(opts *globalOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose the custom click position with the next mouse click",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := openSession(opts, sessionOptions{})
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := sess.Close(); closeErr != nil && err == nil {
					err = closeErr
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			fmt.Fprintln(cmd.OutOrStdout(), sess.translator.T("pick_hint"))
			point, err := sess.controller.PickPosition(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", sess.translator.T("position_custom"), point)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", defaultPickTimeout, "give up after this long")
	return cmd
}
