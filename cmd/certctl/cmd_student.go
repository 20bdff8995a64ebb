package main

import (
	"github.com/spf13/cobra"

	"github.com/certchain/certificate-system/pkg/certclient"
)

func newStudentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Student screens",
	}

	certificates := &cobra.Command{
		Use:   "certificates",
		Short: "List your certificates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.signInAs(cmd.Context(), "student", certclient.RoleStudent)
			if err != nil {
				return err
			}
			rows, err := a.client().CertificatesByStudent(cmd.Context(), s.ID)
			if err != nil {
				return err
			}

			a.printf("%s\n", titleStyle.Render("My certificates"))
			if len(rows) == 0 {
				a.printf("No certificates yet.\n")
				return nil
			}
			t := newTable("ID", "Type", "Score", "Status", "Issued")
			for _, r := range rows {
				t.Row(r.Certificate.ID, r.CertificateType.Name, formatScore(r.Certificate.Score),
					renderStatus(r.Certificate.Status), r.Certificate.CreatedAt.Format("2006-01-02"))
			}
			a.printf("%s\n", t.String())
			return nil
		},
	}

	detail := &cobra.Command{
		Use:   "certificate <id>",
		Short: "Show one of your certificates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.signInAs(cmd.Context(), "student", certclient.RoleStudent); err != nil {
				return err
			}
			row, err := a.client().Certificate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCertificate(a, row)
			return nil
		},
	}

	verify := &cobra.Command{
		Use:   "verify <id>",
		Short: "Verify a certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.signInAs(cmd.Context(), "student", certclient.RoleStudent); err != nil {
				return err
			}
			return runVerify(cmd, a, args[0])
		},
	}

	cmd.AddCommand(certificates, detail, verify)
	return cmd
}

func printCertificate(a *app, row *certclient.CertificateWithType) {
	c := row.Certificate
	a.printf("%s\n", titleStyle.Render(row.CertificateType.Name))
	a.printf("%s\n", renderField("ID", c.ID))
	a.printf("%s\n", renderField("Status", renderStatus(c.Status)))
	a.printf("%s\n", renderField("Score", formatScore(c.Score)))
	a.printf("%s\n", renderField("Description", c.Description))
	a.printf("%s\n", renderField("Image", c.Image))
	a.printf("%s\n", renderField("Issued", c.CreatedAt.Format("2006-01-02")))
	if c.SignedAt != nil {
		a.printf("%s\n", renderField("Signed by", c.SignedBy))
		a.printf("%s\n", renderField("Signed at", c.SignedAt.Format("2006-01-02 15:04")))
		a.printf("%s\n", renderField("Digest", c.CertID))
	}
}
