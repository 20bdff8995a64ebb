package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/certchain/certificate-system/pkg/certclient"
)

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration screens (MASTER only)",
	}

	var roleFilter string
	users := &cobra.Command{
		Use:   "users",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.signInAs(cmd.Context(), "admin", certclient.RoleMaster); err != nil {
				return err
			}
			list, err := a.client().Users(cmd.Context())
			if err != nil {
				return err
			}

			want := strings.ToUpper(strings.TrimSpace(roleFilter))
			t := newTable("Code", "Name", "Role", "ID")
			n := 0
			for _, u := range list {
				if want != "" && u.Role != want {
					continue
				}
				t.Row(u.Code, u.Name, u.Role, u.ID)
				n++
			}
			if n == 0 {
				a.printf("No users.\n")
				return nil
			}
			a.printf("%s\n", t.String())
			return nil
		},
	}
	users.Flags().StringVar(&roleFilter, "role", "", "only show users of this role")

	var create certclient.CreateUserRequest
	createUser := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user (password defaults to \"password\")",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			create.Role = strings.ToUpper(create.Role)
			if _, err := a.signInAs(cmd.Context(), "admin", certclient.RoleMaster); err != nil {
				return err
			}
			u, err := a.client().CreateUser(cmd.Context(), create)
			if err != nil {
				return err
			}
			a.printf("Created %s %s (%s) id=%s\n", u.Role, u.Code, u.Name, u.ID)
			return nil
		},
	}
	createUser.Flags().StringVar(&create.Name, "name", "", "display name")
	createUser.Flags().StringVar(&create.Code, "user-code", "", "login code of the new user")
	createUser.Flags().StringVar(&create.Role, "role", certclient.RoleStudent, "STUDENT, TEACHER, MASTER or COMPANY")
	createUser.Flags().StringVar(&create.Password, "user-password", "", "initial password")
	createUser.Flags().StringVar(&create.Image, "image", "", "image reference")
	createUser.Flags().StringVar(&create.DateOfBirth, "dob", "", "date of birth (YYYY-MM-DD)")
	_ = createUser.MarkFlagRequired("name")
	_ = createUser.MarkFlagRequired("user-code")

	types := &cobra.Command{
		Use:   "types",
		Short: "List certificate types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.signInAs(cmd.Context(), "admin", certclient.RoleMaster); err != nil {
				return err
			}
			return printTypes(cmd, a)
		},
	}

	createType := &cobra.Command{
		Use:   "create-type <name>",
		Short: "Create a certificate type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.signInAs(cmd.Context(), "admin", certclient.RoleMaster); err != nil {
				return err
			}
			t, err := a.client().CreateCertificateType(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("Created type %s id=%s\n", t.Name, t.ID)
			return nil
		},
	}

	var issue certclient.IssueCertificateRequest
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a pending certificate to a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if issue.Score < 0 || issue.Score > 100 {
				return fmt.Errorf("score must be between 0 and 100")
			}
			if _, err := a.signInAs(cmd.Context(), "admin", certclient.RoleMaster); err != nil {
				return err
			}
			c, err := a.client().IssueCertificate(cmd.Context(), issue)
			if err != nil {
				return err
			}
			a.printf("Issued %s to %s (%s)\n", c.ID, c.StudentID, renderStatus(c.Status))
			return nil
		},
	}
	issueCmd.Flags().StringVar(&issue.StudentID, "student", "", "student id")
	issueCmd.Flags().StringVar(&issue.TeacherID, "teacher", "", "id of the teacher who will sign")
	issueCmd.Flags().StringVar(&issue.CertificateTypeID, "type", "", "certificate type id")
	issueCmd.Flags().Float64Var(&issue.Score, "score", 0, "score, 0 to 100")
	issueCmd.Flags().StringVar(&issue.Description, "description", "", "free text")
	issueCmd.Flags().StringVar(&issue.Image, "image", "", "image reference")
	_ = issueCmd.MarkFlagRequired("student")
	_ = issueCmd.MarkFlagRequired("teacher")
	_ = issueCmd.MarkFlagRequired("type")

	cmd.AddCommand(users, createUser, types, createType, issueCmd)
	return cmd
}

func printTypes(cmd *cobra.Command, a *app) error {
	list, err := a.client().CertificateTypes(cmd.Context())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No certificate types.\n")
		return nil
	}
	t := newTable("ID", "Name")
	for _, ct := range list {
		t.Row(ct.ID, ct.Name)
	}
	a.printf("%s\n", t.String())
	return nil
}
