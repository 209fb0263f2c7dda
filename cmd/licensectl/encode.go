package main

import (
	"github.com/spf13/cobra"

	"licensing/internal/licensee/codec"
	"licensing/internal/licensee/models"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode licensee registration fields into contract account data",
	Example: `  licensectl encode --wallet 0x52908400098527886e0f7030069857d2e4169ee7 \
    --name "Jane Doe" --dob 1990-05-17T00:00:00Z --email jane@example.com \
    --nationality Singaporean --country Singapore`,
	Args: cobra.NoArgs,
	RunE: encodeCmdRun,
}

type encodeFlags struct {
	wallet      string
	name        string
	dob         string
	address     string
	email       string
	phone       string
	company     string
	nationality string
	country     string
}

var encodeArgs encodeFlags

func init() {
	encodeCmd.Flags().StringVar(&encodeArgs.wallet, "wallet", "", "Wallet address of the licensee.")
	encodeCmd.Flags().StringVar(&encodeArgs.name, "name", "", "Full name.")
	encodeCmd.Flags().StringVar(&encodeArgs.dob, "dob", "", "Date of birth as an RFC3339 timestamp.")
	encodeCmd.Flags().StringVar(&encodeArgs.address, "address", "", "Home or company address.")
	encodeCmd.Flags().StringVar(&encodeArgs.email, "email", "", "Email address.")
	encodeCmd.Flags().StringVar(&encodeArgs.phone, "phone", "", "Phone number.")
	encodeCmd.Flags().StringVar(&encodeArgs.company, "company", "", "Company name, omitted when empty.")
	encodeCmd.Flags().StringVar(&encodeArgs.nationality, "nationality", "", "Nationality.")
	encodeCmd.Flags().StringVar(&encodeArgs.country, "country", "", "Country of application.")
	_ = encodeCmd.MarkFlagRequired("wallet")
	_ = encodeCmd.MarkFlagRequired("dob")
	rootCmd.AddCommand(encodeCmd)
}

func encodeCmdRun(cmd *cobra.Command, _ []string) error {
	var company *string
	if encodeArgs.company != "" {
		company = &encodeArgs.company
	}

	data, err := codec.Encode(models.RegistrationParams{
		WalletAddress:        encodeArgs.wallet,
		Name:                 encodeArgs.name,
		DateOfBirth:          encodeArgs.dob,
		Address:              encodeArgs.address,
		EmailAddress:         encodeArgs.email,
		PhoneNumber:          encodeArgs.phone,
		Company:              company,
		Nationality:          encodeArgs.nationality,
		CountryOfApplication: encodeArgs.country,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, models.Raw{Data: data, Usable: false})
}
