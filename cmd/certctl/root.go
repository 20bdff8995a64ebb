package main

import (
	"github.com/spf13/cobra"

	"github.com/certchain/certificate-system/internal/session"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "certctl",
		Short: "Certificate system client",
		Long: `certctl signs in to the certificate API and runs the screen of your role.

Credentials come from --code/--password or CERT_CODE/CERT_PASSWORD; the API
address from --api-url or CERT_API_URL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", "", "API base URL (overrides CERT_API_URL)")
	flags.StringVar(&a.code, "code", "", "login code (overrides CERT_CODE)")
	flags.StringVar(&a.password, "password", "", "password (overrides CERT_PASSWORD)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(
		newLoginCmd(a),
		newProfileCmd(a),
		newStudentCmd(a),
		newTeacherCmd(a),
		newAdminCmd(a),
		newCompanyCmd(a),
		newVerifyCmd(a),
	)
	return root
}

// newLoginCmd is the dashboard header: who am I signed in as.
func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.signIn(cmd.Context())
			if err != nil {
				return err
			}
			printSession(a, s)
			return nil
		},
	}
}

// newVerifyCmd checks a certificate without signing in.
func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <certificateId>",
		Short: "Verify a certificate (no sign-in needed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, a, args[0])
		},
	}
}

func runVerify(cmd *cobra.Command, a *app, id string) error {
	v, err := a.client().VerifyCertificate(cmd.Context(), id)
	if err != nil {
		return err
	}
	verdict := invalidStyle.Render("NOT VALID")
	if v.Valid {
		verdict = validStyle.Render("VALID")
	}
	a.printf("%s  %s\n%s\n", verdict, v.CertificateID, v.Message)
	return nil
}

func printSession(a *app, s session.Session) {
	a.printf("%s\n", titleStyle.Render("Welcome, "+s.Name))
	a.printf("%s\n", renderField("Code", s.Code))
	a.printf("%s\n", renderField("Role", s.Role))
	a.printf("%s\n", renderField("ID", s.ID))
	a.printf("%s\n", renderField("Image", s.Image))
	a.printf("%s\n", renderField("Date of birth", s.DateOfBirth))
}
