// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/canonical/autocrm/internal/types"
	"github.com/canonical/autocrm/pkg/client"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Browse and manage companies",
}

var listCompaniesCmd = &cobra.Command{
	Use:   "list",
	Short: "List verified companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newClientEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		companies, err := e.api.ListCompanies(cmd.Context())
		if err != nil {
			return err
		}

		return render(cmd, companies, func(w io.Writer) {
			table(w, "NAME\tINDUSTRY\tWEBSITE\tID", func(w io.Writer) {
				for _, c := range companies {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, orDash(c.Industry), orDash(c.Website), c.ID)
				}
			})
		})
	},
}

var registerCompanyCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the company you administer",
	RunE: withClient(types.RoleCompanyAdmin, "/company/register", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		in := client.NewCompany{}
		in.Name, _ = cmd.Flags().GetString("name")
		in.Industry, _ = cmd.Flags().GetString("industry")
		in.Description, _ = cmd.Flags().GetString("description")
		in.Website, _ = cmd.Flags().GetString("website")
		in.SupportEmail, _ = cmd.Flags().GetString("support-email")
		in.Phone, _ = cmd.Flags().GetString("phone")
		in.Country, _ = cmd.Flags().GetString("country")

		company, err := e.api.RegisterCompany(cmd.Context(), in)
		if err != nil {
			return err
		}

		return render(cmd, company, func(w io.Writer) {
			fmt.Fprintf(w, "Registered %s (%s), pending verification\n", company.Name, company.ID)
		})
	}),
}

var companySettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change your company's settings",
	RunE: withClient(types.RoleCompanyAdmin, "/company/settings", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		var settings types.CompanySettings
		changed := false
		for flag, field := range map[string]**string{
			"name":          &settings.Name,
			"industry":      &settings.Industry,
			"description":   &settings.Description,
			"website":       &settings.Website,
			"support-email": &settings.SupportEmail,
			"phone":         &settings.Phone,
			"address":       &settings.Address,
			"city":          &settings.City,
			"state":         &settings.State,
			"country":       &settings.Country,
			"postal-code":   &settings.PostalCode,
		} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*field = &v
				changed = true
			}
		}

		var (
			company *types.Company
			err     error
		)
		if changed {
			company, err = e.api.UpdateCompany(cmd.Context(), settings)
		} else {
			company, err = e.api.GetOwnCompany(cmd.Context())
		}
		if err != nil {
			return err
		}

		return render(cmd, company, func(w io.Writer) {
			fmt.Fprintf(w, "%s (%s)\n", company.Name, company.ID)
			fmt.Fprintf(w, "Verified:      %t\n", company.IsVerified)
			fmt.Fprintf(w, "Industry:      %s\n", orDash(company.Industry))
			fmt.Fprintf(w, "Website:       %s\n", orDash(company.Website))
			fmt.Fprintf(w, "Support email: %s\n", orDash(company.SupportEmail))
			fmt.Fprintf(w, "Logo:          %s\n", orDash(company.LogoURL))
		})
	}),
}

var companyLogoCmd = &cobra.Command{
	Use:   "logo [file]",
	Short: "Upload your company's logo",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(types.RoleCompanyAdmin, "/company/settings", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		url, err := e.api.UploadLogo(cmd.Context(), filepath.Base(args[0]), f)
		if err != nil {
			return err
		}

		return render(cmd, map[string]string{"logo_url": url}, func(w io.Writer) {
			fmt.Fprintf(w, "Logo available at %s\n", url)
		})
	}),
}

var companyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your company's dashboard figures",
	RunE: withClient(types.RoleCompanyAdmin, "/company/dashboard", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		stats, err := e.api.CompanyStats(cmd.Context())
		if err != nil {
			return err
		}

		return render(cmd, stats, func(w io.Writer) {
			fmt.Fprintf(w, "Agents:           %d\n", stats.TotalAgents)
			fmt.Fprintf(w, "Active tickets:   %d\n", stats.ActiveTickets)
			fmt.Fprintf(w, "Resolved tickets: %d\n", stats.ResolvedTickets)
			if len(stats.RecentTickets) > 0 {
				fmt.Fprintln(w, "\nRecent tickets:")
				renderTickets(w, stats.RecentTickets)
			}
		})
	}),
}

func init() {
	for _, c := range []*cobra.Command{registerCompanyCmd, companySettingsCmd} {
		c.Flags().String("name", "", "Company name")
		c.Flags().String("industry", "", "Industry")
		c.Flags().String("description", "", "Short description")
		c.Flags().String("website", "", "Website URL")
		c.Flags().String("support-email", "", "Support email address")
		c.Flags().String("phone", "", "Phone number")
		c.Flags().String("country", "", "Country")
	}
	companySettingsCmd.Flags().String("address", "", "Street address")
	companySettingsCmd.Flags().String("city", "", "City")
	companySettingsCmd.Flags().String("state", "", "State or region")
	companySettingsCmd.Flags().String("postal-code", "", "Postal code")
	_ = registerCompanyCmd.MarkFlagRequired("name")

	companiesCmd.AddCommand(listCompaniesCmd, registerCompanyCmd, companySettingsCmd, companyLogoCmd, companyStatsCmd)
	rootCmd.AddCommand(companiesCmd)
}
