package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/gorm-bookings/pricing"
)

func QuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [bookable-id]",
		Short: "Price a booking range for a bookable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid bookable id %q", args[0])
			}

			startsFlag, _ := cmd.Flags().GetString("starts")
			endsFlag, _ := cmd.Flags().GetString("ends")
			timezone, _ := cmd.Flags().GetString("timezone")
			asJSON, _ := cmd.Flags().GetBool("json")

			startsAt, err := time.Parse(time.RFC3339, startsFlag)
			if err != nil {
				return fmt.Errorf("invalid --starts: %v", err)
			}
			var endsAt *time.Time
			if endsFlag != "" {
				t, err := time.Parse(time.RFC3339, endsFlag)
				if err != nil {
					return fmt.Errorf("invalid --ends: %v", err)
				}
				endsAt = &t
			}

			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			q, err := a.bookings.Quote(cmd.Context(), uint(id), startsAt, endsAt, timezone)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(q)
			}
			printEquation(cmd, q.Equation)
			return nil
		},
	}

	cmd.Flags().String("starts", "", "Range start (RFC3339)")
	cmd.Flags().String("ends", "", "Range end (RFC3339); defaults to one day after start")
	cmd.Flags().String("timezone", "", "IANA timezone the range is evaluated in")
	cmd.Flags().Bool("json", false, "Print the quote as JSON")
	_ = cmd.MarkFlagRequired("starts")

	return cmd
}

func printEquation(cmd *cobra.Command, eq pricing.PriceEquation) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-16s %s %s per %s\n", "Base price", eq.BasePrice, eq.Currency, eq.Unit)
	fmt.Fprintf(out, "%-16s %d\n", "Units", eq.TotalUnits)
	fmt.Fprintf(out, "%-16s %s\n", "Subtotal", eq.Subtotal)
	for _, o := range eq.OverridesUsed {
		fmt.Fprintf(out, "%-16s %s %s-%s %s%%\n", "Override", o.Weekday, o.StartsAt, o.EndsAt, o.Percentage)
	}
	for _, r := range eq.RatesApplied {
		fmt.Fprintf(out, "%-16s %s%d %s%%\n", "Rate", r.Operator, r.Amount, r.Percentage)
	}
	fmt.Fprintf(out, "%-16s %s\n", "Adjustment", eq.Adjustment)
	fmt.Fprintf(out, "%-16s %s %s\n", "Total", eq.TotalPrice, eq.Currency)
}
