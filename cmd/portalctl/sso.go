// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"

	"github.com/go-arcade/portal/internal/portal/service"
	"github.com/go-arcade/portal/pkg/cryptojs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const secretEnv = "PORTAL_SSO_SECRET"

var errNoSecret = errors.New("sso secret is empty, pass --secret or set " + secretEnv)

func newSSOCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sso",
		Short: "Encrypt and decrypt single sign-on hand-off tokens",
	}
	cmd.PersistentFlags().String("secret", "", "shared passphrase (env "+secretEnv+")")
	_ = v.BindPFlag("secret", cmd.PersistentFlags().Lookup("secret"))
	_ = v.BindEnv("secret", secretEnv)

	secret := func() (string, error) {
		s := v.GetString("secret")
		if s == "" {
			return "", errNoSecret
		}
		return s, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "encrypt <token>",
		Short: "Encrypt a session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secret()
			if err != nil {
				return err
			}
			out, err := cryptojs.Encrypt(args[0], key)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decrypt <cipher>",
		Short: "Decrypt a hand-off cipher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secret()
			if err != nil {
				return err
			}
			out, err := cryptojs.Decrypt(args[0], key)
			if err != nil {
				return fmt.Errorf("decrypt: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "url <appUrl> <token>",
		Short: "Build the receiver URL a sub application is redirected to",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secret()
			if err != nil {
				return err
			}
			cipher, err := cryptojs.Encrypt(args[1], key)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), service.ReceiverURL(args[0], cipher))
			return err
		},
	})

	return cmd
}
