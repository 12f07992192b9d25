package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/wealthwise/wealthwise/pkg/deposit"
	"github.com/wealthwise/wealthwise/pkg/models"
)

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Value a fixed deposit as of today",
	RunE: func(cmd *cobra.Command, _ []string) error {
		principal, _ := cmd.Flags().GetFloat64("principal")
		rate, _ := cmd.Flags().GetFloat64("rate")
		tenure, _ := cmd.Flags().GetInt("tenure")
		completed, _ := cmd.Flags().GetInt("completed")
		payout, _ := cmd.Flags().GetString("payout")
		maturityStr, _ := cmd.Flags().GetString("maturity")
		tds, _ := cmd.Flags().GetFloat64("tds")

		maturityDate, err := time.Parse("2006-01-02", maturityStr)
		if err != nil {
			return fmt.Errorf("invalid --maturity date: %w", err)
		}

		d := models.Deposit{
			Principal:    decimal.NewFromFloat(principal),
			AnnualRate:   decimal.NewFromFloat(rate),
			TenureMonths: tenure,
			Payout:       models.PayoutFrequency(payout),
			MaturityDate: maturityDate,
			TDSDeducted:  decimal.NewFromFloat(tds),
		}

		today := time.Now()
		if completed >= 0 {
			d.CompletedMonths = completed
		} else {
			d.CompletedMonths = deposit.DeriveCompletedMonths(d, today)
		}

		v := deposit.Valuate(d, today)

		fmt.Printf("Current value:    %s\n", v.CurrentValue.StringFixed(2))
		fmt.Printf("Interest earned:  %s\n", v.InterestEarned.StringFixed(2))
		fmt.Printf("Progress:         %s%%\n", v.ProgressPercent.StringFixed(1))
		if v.IsMatured {
			fmt.Println(okStyle.Render("Matured"))
		} else {
			fmt.Printf("Days to maturity: %d\n", v.DaysUntilMaturity)
			if v.NextInterestDate != nil {
				fmt.Printf("Next payout:      %s\n", v.NextInterestDate.Format("2006-01-02"))
			}
		}
		return nil
	},
}

func init() {
	depositCmd.Flags().Float64("principal", 0, "Principal amount")
	depositCmd.Flags().Float64("rate", 0, "Annual interest rate (percent)")
	depositCmd.Flags().Int("tenure", 12, "Tenure in months")
	depositCmd.Flags().Int("completed", -1, "Completed months (default: derived from maturity date)")
	depositCmd.Flags().String("payout", string(models.PayoutMaturity), "Payout frequency (monthly|quarterly|annually|maturity)")
	depositCmd.Flags().String("maturity", "", "Maturity date (YYYY-MM-DD)")
	depositCmd.Flags().Float64("tds", 0, "TDS already deducted")

	_ = depositCmd.MarkFlagRequired("principal")
	_ = depositCmd.MarkFlagRequired("rate")
	_ = depositCmd.MarkFlagRequired("maturity")
}
