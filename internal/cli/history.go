package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/store"
)

func newHistoryCmd(o *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored readings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			readings, err := st.Readings().List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			return o.printHistory(cmd.OutOrStdout(), readings)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", store.DefaultListLimit, "Max results")
	return cmd
}

func newShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			rd, err := st.Readings().GetByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("show %s: %w", args[0], err)
			}

			if o.format == formatText {
				var res app.Result
				if err := json.Unmarshal(rd.Payload, &res); err != nil {
					return fmt.Errorf("decode reading: %w", err)
				}
				return writeText(cmd.OutOrStdout(), &res)
			}

			var buf bytes.Buffer
			if err := json.Indent(&buf, rd.Payload, "", "  "); err != nil {
				return fmt.Errorf("decode reading: %w", err)
			}
			buf.WriteByte('\n')
			_, err = buf.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

func newRmCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stored reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Readings().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("rm %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
