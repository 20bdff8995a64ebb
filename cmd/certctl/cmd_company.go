package main

import (
	"github.com/spf13/cobra"

	"github.com/certchain/certificate-system/pkg/certclient"
)

func newCompanyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Company screens",
	}
	roles := []string{certclient.RoleCompany, certclient.RoleMaster}

	types := &cobra.Command{
		Use:   "types",
		Short: "List certificate types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.signInAs(cmd.Context(), "company", roles...); err != nil {
				return err
			}
			return printTypes(cmd, a)
		},
	}

	students := &cobra.Command{
		Use:   "students <typeId>",
		Short: "List students holding a certificate of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.signInAs(cmd.Context(), "company", roles...); err != nil {
				return err
			}
			return printStudentsByType(cmd, a, args[0])
		},
	}

	approve := &cobra.Command{
		Use:   "approve <certificateId>",
		Short: "Approve a signed certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.signInAs(cmd.Context(), "company", roles...); err != nil {
				return err
			}
			c, err := a.client().ApproveCertificate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("Approved %s (%s)\n", c.ID, renderStatus(c.Status))
			return nil
		},
	}

	cmd.AddCommand(types, students, approve)
	return cmd
}
