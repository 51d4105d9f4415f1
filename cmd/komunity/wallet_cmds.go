package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/core/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04"

func newWalletCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Check your balance and move money",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return a.requireMain()
		},
	}
	cmd.AddCommand(
		newBalanceCommand(a),
		newHistoryCommand(a),
		newRecipientsCommand(a),
		newTopUpCommand(a),
		newSendCommand(a),
		newContributeCommand(a),
	)
	return cmd
}

func newBalanceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show your wallet balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.wallet.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, domain.FormatCurrency(a.wallet.Balance().Amount))
			return nil
		},
	}
}

func newHistoryCommand(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List wallet transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.wallet.Refresh(ctx); err != nil {
				return err
			}
			for more := all; more; {
				var err error
				if more, err = a.wallet.LoadMoreHistory(ctx); err != nil {
					return err
				}
			}
			printHistory(a.out, a.wallet.History())
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page instead of only the first")
	return cmd
}

func printHistory(out io.Writer, txns []domain.Transaction) {
	if len(txns) == 0 {
		fmt.Fprintln(out, "No transactions yet.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tSTATUS\tWITH")
	for _, t := range txns {
		sign := "-"
		if t.Type.IsIncoming() {
			sign = "+"
		}
		fmt.Fprintf(w, "%s\t%s\t%s%s\t%s\t%s\n",
			t.Timestamp.Local().Format(timeLayout), t.Type, sign, domain.FormatCurrency(t.Amount), t.Status, t.CounterpartyName)
	}
	w.Flush()
}

func newRecipientsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recipients",
		Short: "List members you can send money to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recipients, err := a.wallet.Recipients(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "USER\tNAME")
			for _, r := range recipients {
				fmt.Fprintf(w, "%d\t%s\n", r.UserID, r.FullName)
			}
			return w.Flush()
		},
	}
}

func newTopUpCommand(a *app) *cobra.Command {
	var form dto.TopUpForm
	cmd := &cobra.Command{
		Use:   "topup",
		Short: "Add money to your wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.wallet.TopUp(cmd.Context(), form); err != nil {
				return a.reported(err)
			}
			fmt.Fprintln(a.out, domain.FormatCurrency(a.wallet.Balance().Amount))
			return nil
		},
	}
	cmd.Flags().StringVarP(&form.Amount, "amount", "a", "", "amount to add")
	cmd.Flags().StringVar(&form.VoucherReference, "voucher", "", "voucher reference (generated when omitted)")
	return cmd
}

func newSendCommand(a *app) *cobra.Command {
	var (
		to   int64
		form dto.SendForm
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send money to a member of one of your groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.refreshFor(ctx, services.OpSendMoney); err != nil {
				return err
			}
			if to != 0 {
				recipients, err := a.wallet.Recipients(ctx)
				if err != nil {
					return a.present(ctx, services.OpSendMoney, err)
				}
				for i := range recipients {
					if recipients[i].UserID == to {
						form.Recipient = &recipients[i]
						break
					}
				}
				if form.Recipient == nil {
					return fmt.Errorf("user %d is not an active member of any of your groups", to)
				}
			}
			if err := a.wallet.SendMoney(ctx, form); err != nil {
				return a.reported(err)
			}
			fmt.Fprintln(a.out, domain.FormatCurrency(a.wallet.Balance().Amount))
			return nil
		},
	}
	cmd.Flags().Int64Var(&to, "to", 0, "recipient user ID (see `wallet recipients`)")
	cmd.Flags().StringVarP(&form.Amount, "amount", "a", "", "amount to send")
	cmd.Flags().StringVar(&form.Note, "note", "", "optional note for the recipient")
	return cmd
}

func newContributeCommand(a *app) *cobra.Command {
	var (
		fundID int64
		form   dto.ContributeForm
	)
	cmd := &cobra.Command{
		Use:   "contribute",
		Short: "Contribute to a memorial fund",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.refreshFor(ctx, services.OpContribute); err != nil {
				return err
			}
			if fundID != 0 {
				fund, err := a.findFund(ctx, services.OpContribute, fundID)
				if err != nil {
					return err
				}
				form.Fund = &fund
			}
			if err := a.wallet.ContributeToDeceased(ctx, form); err != nil {
				return a.reported(err)
			}
			fmt.Fprintln(a.out, domain.FormatCurrency(a.wallet.Balance().Amount))
			return nil
		},
	}
	cmd.Flags().Int64Var(&fundID, "fund", 0, "fund ID (see `funds list`)")
	cmd.Flags().StringVarP(&form.Amount, "amount", "a", "", "amount to contribute")
	return cmd
}

// refreshFor loads the balance the local pre-checks compare against.
func (a *app) refreshFor(ctx context.Context, op services.Operation) error {
	if err := a.wallet.Refresh(ctx); err != nil {
		return a.present(ctx, op, err)
	}
	return nil
}

func (a *app) findFund(ctx context.Context, op services.Operation, fundID int64) (domain.DeceasedFund, error) {
	if err := a.wallet.RefreshFunds(ctx); err != nil {
		return domain.DeceasedFund{}, a.present(ctx, op, err)
	}
	for _, f := range a.wallet.Funds() {
		if f.FundID == fundID {
			return f, nil
		}
	}
	return domain.DeceasedFund{}, fmt.Errorf("fund %d not found in your groups", fundID)
}

func newFundsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funds",
		Short: "Memorial funds in your groups",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return a.requireMain()
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List memorial funds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.wallet.RefreshFunds(cmd.Context()); err != nil {
				return err
			}
			printFunds(a.out, a.wallet.Funds())
			return nil
		},
	}

	disburse := &cobra.Command{
		Use:   "disburse FUND_ID",
		Short: "Pay a fund's balance out to its beneficiary (group admins)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fundID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || fundID <= 0 {
				return fmt.Errorf("invalid fund ID %q", args[0])
			}
			fund, err := a.findFund(ctx, services.OpDisburse, fundID)
			if err != nil {
				return err
			}
			if _, err := a.wallet.DisburseFund(ctx, fund); err != nil {
				return a.reported(err)
			}
			return nil
		},
	}

	cmd.AddCommand(list, disburse)
	return cmd
}

func printFunds(out io.Writer, funds []domain.DeceasedFund) {
	if len(funds) == 0 {
		fmt.Fprintln(out, "No memorial funds.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMEMBER\tGROUP\tRAISED\tBALANCE\tBENEFICIARY\tSTATUS")
	for _, f := range funds {
		beneficiary := "-"
		if f.Beneficiary != nil {
			beneficiary = f.Beneficiary.FullName
		}
		status := "open"
		switch {
		case f.Disbursed:
			status = "disbursed"
		case !f.AcceptsContributions():
			status = "closed"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", f.FundID, f.Deceased.FullName, f.GroupName,
			domain.FormatCurrency(f.TotalRaised), domain.FormatCurrency(f.Balance()), beneficiary, status)
	}
	w.Flush()
}
