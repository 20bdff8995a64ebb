package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/certchain/certificate-system/internal/session"
	"github.com/certchain/certificate-system/pkg/certclient"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your own profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the signed-in user",
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

	var name, image, dob string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change name, image or date of birth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req certclient.UpdateUserRequest
			var patch session.Patch
			if cmd.Flags().Changed("name") {
				req.Name, patch.Name = &name, &name
			}
			if cmd.Flags().Changed("image") {
				req.Image, patch.Image = &image, &image
			}
			if cmd.Flags().Changed("dob") {
				req.DateOfBirth, patch.DateOfBirth = &dob, &dob
			}
			if req == (certclient.UpdateUserRequest{}) {
				return fmt.Errorf("nothing to update: pass --name, --image or --dob")
			}

			s, err := a.signIn(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := a.client().UpdateUser(cmd.Context(), s.ID, req); err != nil {
				return err
			}

			a.holder.Update(patch)
			updated, _ := a.holder.Current()
			printSession(a, updated)
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "new display name")
	update.Flags().StringVar(&image, "image", "", "new image reference")
	update.Flags().StringVar(&dob, "dob", "", "new date of birth (YYYY-MM-DD)")

	cmd.AddCommand(show, update)
	return cmd
}
