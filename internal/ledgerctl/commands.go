/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledgerctl

import (
	"fmt"
	"sort"

	"github.com/certledger/ledgergw/internal/pkg/facade"
	"github.com/certledger/ledgergw/internal/pkg/router"
	"github.com/certledger/ledgergw/internal/pkg/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func enrollAdminCmd(root *rootOptions) *cobra.Command {
	var orgs []string
	cmd := &cobra.Command{
		Use:   "enroll-admin",
		Short: "Enroll the admin identity of each organization unless it is already in the wallet.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.run(func(env *Environment) error {
				names := orgs
				if len(names) == 0 {
					for _, org := range env.Router.Organizations() {
						names = append(names, org.Name)
					}
				}

				results := make([]facade.BootstrapResult, len(names))
				g, ctx := errgroup.WithContext(cmd.Context())
				for i, name := range names {
					g.Go(func() error {
						res, err := env.Facade.EnsureBootstrapped(ctx, name)
						if err != nil {
							return errors.WithMessagef(err, "organization %s", name)
						}
						results[i] = res
						return nil
					})
				}
				if err := g.Wait(); err != nil {
					return err
				}

				for _, res := range results {
					state := "enrolled"
					if res.AlreadyEnrolled {
						state = "already enrolled"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", res.Organization, res.Label, state)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&orgs, "org", nil, "Organizations to bootstrap. All configured organizations when unset.")
	return cmd
}

func registerCmd(root *rootOptions) *cobra.Command {
	var username, fullname, role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a teacher or student on the ledger, at the certificate authority and in the wallet.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := router.ParseRole(role)
			if err != nil {
				return err
			}
			return root.run(func(env *Environment) error {
				res := env.Facade.RegisterUser(cmd.Context(), facade.NewUser{Username: username, Fullname: fullname, Role: r})
				if !res.Success {
					return res.Err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "registered %s as %s\n", username, r)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&username, "username", "u", "", "Wallet label and ledger username of the new user.")
	flags.StringVarP(&fullname, "fullname", "n", "", "Display name stored on the ledger.")
	flags.StringVarP(&role, "role", "r", "student", "Role of the new user: teacher or student.")
	return cmd
}

func registerGuestCmd(root *rootOptions) *cobra.Command {
	var org, label string
	cmd := &cobra.Command{
		Use:   "register-guest",
		Short: "Register a guest at the certificate authority of an organization and store it in the wallet.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.run(func(env *Environment) error {
				res := env.Facade.RegisterGuest(cmd.Context(), org, label)
				if !res.Success {
					return res.Err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "registered %s at %s\n", label, org)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&org, "org", "o", "student", "Organization whose certificate authority issues the guest identity.")
	flags.StringVarP(&label, "label", "l", "guest", "Wallet label of the guest.")
	return cmd
}

type transactOptions struct {
	username string
	role     string
}

func (o *transactOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.username, "user", "u", "", "Wallet label to act as.")
	flags.StringVarP(&o.role, "role", "r", "", "Role of the user: admin-academy, teacher, admin-student, student or 1-4.")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("role")
}

func (o *transactOptions) user() (facade.User, error) {
	r, err := router.ParseRole(o.role)
	if err != nil {
		return facade.User{}, err
	}
	return facade.User{Username: o.username, Role: r}, nil
}

func queryCmd(root *rootOptions) *cobra.Command {
	opts := &transactOptions{}
	cmd := &cobra.Command{
		Use:   "query FUNCTION [ARGS...]",
		Short: "Evaluate a contract function and print its result.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := opts.user()
			if err != nil {
				return err
			}
			return root.run(func(env *Environment) error {
				res := env.Facade.Query(cmd.Context(), u, args[0], args[1:]...)
				if !res.Success {
					return res.Err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(res.Payload))
				return nil
			})
		},
	}
	opts.bind(cmd)
	return cmd
}

func invokeCmd(root *rootOptions) *cobra.Command {
	opts := &transactOptions{}
	cmd := &cobra.Command{
		Use:   "invoke FUNCTION [ARGS...]",
		Short: "Submit a contract function and wait for it to commit.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := opts.user()
			if err != nil {
				return err
			}
			return root.run(func(env *Environment) error {
				res := env.Facade.Invoke(cmd.Context(), u, args[0], args[1:]...)
				if !res.Success {
					return res.Err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s committed\n", args[0])
				return nil
			})
		},
	}
	opts.bind(cmd)
	return cmd
}

func walletCmd(root *rootOptions) *cobra.Command {
	var org string
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Inspect the identity wallet.",
	}
	cmd.PersistentFlags().StringVar(&org, "org", "", "Organization whose wallet partition is inspected.")
	cmd.MarkPersistentFlagRequired("org")

	exists := &cobra.Command{
		Use:   "exists LABEL",
		Short: "Print whether an identity is stored under LABEL.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.run(func(env *Environment) error {
				if _, err := env.Router.Organization(org); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), env.Wallet.Exists(cmd.Context(), org, args[0]))
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the labels stored for an organization.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.run(func(env *Environment) error {
				if _, err := env.Router.Organization(org); err != nil {
					return err
				}
				lister, ok := env.Wallet.(wallet.Lister)
				if !ok {
					return errors.New("wallet cannot list identities")
				}
				labels, err := lister.Labels(org)
				if err != nil {
					return err
				}
				sort.Strings(labels)
				for _, l := range labels {
					fmt.Fprintln(cmd.OutOrStdout(), l)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(exists, list)
	return cmd
}
