package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgertools/ofx"
)

const defaultDownloadDays = 30

type options struct {
	configPath string
	username   string
	password   string
}

func (o *options) client() (*ofx.Client, error) {
	conn, err := ofx.LoadConnection(o.configPath)
	if err != nil {
		return nil, err
	}
	return conn.NewClient(o.username, o.password), nil
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          "ofx",
		Short:        "Query financial institutions over the OFX protocol",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "connection.yaml", "institution connection file")
	rootCmd.PersistentFlags().StringVarP(&opts.username, "username", "u", "", "institution login")
	rootCmd.PersistentFlags().StringVarP(&opts.password, "password", "p", "", "institution password")

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newProbeCommand(opts))
	rootCmd.AddCommand(newAcctInfoCommand(opts))
	rootCmd.AddCommand(newStmtCommand(opts))
	rootCmd.AddCommand(newCCStmtCommand(opts))
	rootCmd.AddCommand(newInvStmtCommand(opts))
	return rootCmd
}

func newParseCommand() *cobra.Command {
	var lenient bool
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an OFX file and print its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			mode := ofx.FailFast
			if lenient {
				mode = ofx.Lenient
			}
			result, err := ofx.ParseWithOptions(data, ofx.ParseOptions{Mode: mode})
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lenient, "lenient", false, "record bad entries instead of failing")
	return cmd
}

func newProbeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Request the institution profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			result, err := client.QueryProfile(cmd.Context())
			if err != nil {
				return err
			}
			printSignon(result)
			return nil
		},
	}
}

func newAcctInfoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "acctinfo",
		Short: "List accounts known to the institution",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			result, err := client.QueryAccountList(cmd.Context(), time.Time{})
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		},
	}
}

func newStmtCommand(opts *options) *cobra.Command {
	var (
		accountID   string
		routing     string
		accountType string
		days        int
	)
	cmd := &cobra.Command{
		Use:   "stmt",
		Short: "Query bank account statements",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			start := time.Now().AddDate(0, 0, -days)
			result, err := client.QueryBankStatements(cmd.Context(), routing, accountID, accountType, start)
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&accountID, "account", "a", "", "account id to query")
	cmd.Flags().StringVarP(&routing, "routing-number", "r", "", "routing number of the bank")
	cmd.Flags().StringVarP(&accountType, "account-type", "t", "CHECKING", "account type (eg CHECKING, MONEYMRKT)")
	cmd.Flags().IntVar(&days, "days", defaultDownloadDays, "number of days to download")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("routing-number")
	return cmd
}

func newCCStmtCommand(opts *options) *cobra.Command {
	var (
		accountID string
		days      int
	)
	cmd := &cobra.Command{
		Use:   "ccstmt",
		Short: "Query credit card statements",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			start := time.Now().AddDate(0, 0, -days)
			result, err := client.QueryCreditCardStatements(cmd.Context(), accountID, start)
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&accountID, "account", "a", "", "account id to query")
	cmd.Flags().IntVar(&days, "days", defaultDownloadDays, "number of days to download")
	cmd.MarkFlagRequired("account")
	return cmd
}

func newInvStmtCommand(opts *options) *cobra.Command {
	var (
		accountID string
		brokerID  string
		days      int
	)
	cmd := &cobra.Command{
		Use:   "invstmt",
		Short: "Query brokerage statements",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			start := time.Now().AddDate(0, 0, -days)
			result, err := client.QueryInvestmentStatements(cmd.Context(), brokerID, accountID, start)
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&accountID, "account", "a", "", "account id to query")
	cmd.Flags().StringVarP(&brokerID, "broker", "b", "", "broker id")
	cmd.Flags().IntVar(&days, "days", defaultDownloadDays, "number of days to download")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("broker")
	return cmd
}

func printSignon(result *ofx.ParseResult) {
	if result.Signon == nil {
		fmt.Println("no sign-on response")
		return
	}
	fmt.Printf("code=%d severity=%s org=%s fid=%s\n",
		result.Signon.Code, result.Signon.Severity, result.Signon.Org, result.Signon.FID)
}

func printResult(result *ofx.ParseResult) {
	printSignon(result)
	for _, account := range result.Accounts {
		fmt.Printf("account %s kind=%s type=%s routing=%s broker=%s\n",
			account.ID, account.Kind, account.AccountType, account.RoutingNumber, account.BrokerID)
		if account.Statement != nil {
			for _, txn := range account.Statement.Transactions {
				fmt.Printf("  %s %s %s %s %q\n",
					txn.Date.Format("2006-01-02"), txn.Type, txn.Amount, txn.ID, txn.Payee)
			}
			for _, entry := range account.Statement.DiscardedEntries {
				fmt.Printf("  discarded: %s\n", entry.Error)
			}
		}
		if account.InvestmentStatement != nil {
			for _, position := range account.InvestmentStatement.Positions {
				fmt.Printf("  position %s units=%s price=%s value=%s\n",
					position.Security, position.Units, position.UnitPrice, position.MarketValue)
			}
			for _, txn := range account.InvestmentStatement.Transactions {
				fmt.Printf("  %s %s units=%s total=%s\n", txn.Type, txn.Security, txn.Units, txn.Total)
			}
		}
	}
	for _, security := range result.Securities {
		fmt.Printf("security %s %q ticker=%s\n", security.UniqueID, security.Name, security.Ticker)
	}
}
