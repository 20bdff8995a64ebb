package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/certchain/certificate-system/pkg/certclient"
)

func newTeacherCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teacher",
		Short: "Teacher screens",
	}

	var search string
	certificates := &cobra.Command{
		Use:   "certificates",
		Short: "List certificates assigned to you, with signed and pending counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.signInAs(cmd.Context(), "teacher", certclient.RoleTeacher)
			if err != nil {
				return err
			}
			rows, err := a.client().CertificatesByTeacher(cmd.Context(), s.ID)
			if err != nil {
				return err
			}

			signed, pending := 0, 0
			for _, r := range rows {
				switch r.Certificate.Status {
				case certclient.StatusPending:
					pending++
				default:
					signed++
				}
			}
			a.printf("%s\n", titleStyle.Render("Assigned certificates"))
			a.printf("%s\n", renderField("Signed", strconv.Itoa(signed)))
			a.printf("%s\n", renderField("Pending", strconv.Itoa(pending)))

			filtered := filterByType(rows, search)
			if len(filtered) == 0 {
				a.printf("No certificates match.\n")
				return nil
			}
			t := newTable("ID", "Type", "Student", "Score", "Status")
			for _, r := range filtered {
				t.Row(r.Certificate.ID, r.CertificateType.Name, r.Certificate.StudentID,
					formatScore(r.Certificate.Score), renderStatus(r.Certificate.Status))
			}
			a.printf("%s\n", t.String())
			return nil
		},
	}
	certificates.Flags().StringVar(&search, "search", "", "only show certificate types containing this text")

	students := &cobra.Command{
		Use:   "students <typeId>",
		Short: "List students holding a certificate of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.signInAs(cmd.Context(), "teacher", certclient.RoleTeacher); err != nil {
				return err
			}
			return printStudentsByType(cmd, a, args[0])
		},
	}

	var subject string
	sign := &cobra.Command{
		Use:   "sign <certificateId>",
		Short: "Sign a pending certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.signInAs(cmd.Context(), "teacher", certclient.RoleTeacher)
			if err != nil {
				return err
			}
			cert, err := a.client().SignCertificate(cmd.Context(), s.ID, certclient.SignCertificateRequest{
				Code:          s.Code,
				Subject:       subject,
				CertificateID: args[0],
			})
			if err != nil {
				return err
			}
			a.printf("Signed %s (%s)\n", cert.ID, renderStatus(cert.Status))
			a.printf("%s\n", renderField("Digest", cert.CertID))
			return nil
		},
	}
	sign.Flags().StringVar(&subject, "subject", "", "subject the certificate was earned in")

	cmd.AddCommand(certificates, students, sign)
	return cmd
}

func filterByType(rows []certclient.CertificateWithType, search string) []certclient.CertificateWithType {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return rows
	}
	out := make([]certclient.CertificateWithType, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.CertificateType.Name), search) {
			out = append(out, r)
		}
	}
	return out
}

func printStudentsByType(cmd *cobra.Command, a *app, typeID string) error {
	rows, err := a.client().StudentsByType(cmd.Context(), typeID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		a.printf("No students hold this certificate type.\n")
		return nil
	}
	t := newTable("Code", "Name", "Certificate", "Score", "Status")
	for _, r := range rows {
		t.Row(r.Student.Code, r.Student.Name, r.Certificate.ID,
			formatScore(r.Certificate.Score), renderStatus(r.Certificate.Status))
	}
	a.printf("%s\n", t.String())
	return nil
}
