package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kbukum/paygate/api"
	"github.com/kbukum/paygate/entitlement"
	"github.com/kbukum/paygate/errors"
	"github.com/kbukum/paygate/token"
	"github.com/kbukum/paygate/version"
)

// metadataFlags are the item metadata flags shared by several commands.
type metadataFlags struct {
	title       string
	description string
	words       int
	url         string
	attrs       map[string]string
}

func (m *metadataFlags) bind(cmd *cobra.Command, withURL bool) {
	cmd.Flags().StringVar(&m.title, "title", "", "item title")
	cmd.Flags().StringVar(&m.description, "description", "", "item description")
	cmd.Flags().IntVar(&m.words, "words", 0, "word count of the item")
	if withURL {
		cmd.Flags().StringVar(&m.url, "url", "", "canonical item URL")
	}
	cmd.Flags().StringToStringVar(&m.attrs, "attr", nil, "extra attribute key=value (repeatable)")
}

func (m *metadataFlags) metadata() token.Metadata {
	return token.Metadata{Title: m.title, Description: m.description, Words: m.words, URL: m.url}
}

// attributes returns the API attributes. Numeric extra values are sent as
// numbers.
func (m *metadataFlags) attributes() api.Attributes {
	attrs := api.Attributes{}
	for k, v := range m.attrs {
		if n, err := strconv.Atoi(v); err == nil {
			attrs[k] = n
			continue
		}
		attrs[k] = v
	}
	if m.title != "" {
		attrs[token.KeyTitle] = m.title
	}
	if m.description != "" {
		attrs[token.KeyDescription] = m.description
	}
	if m.words > 0 {
		attrs[token.KeyWords] = m.words
	}
	return attrs
}

func newItemTokenCmd(a *app) *cobra.Command {
	var md metadataFlags
	cmd := &cobra.Command{
		Use:   "item-token <item-id>",
		Short: "Mint the outbound item token for the pay widget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pay, err := a.sdk(cmd.Context())
			if err != nil {
				return err
			}
			tok, err := pay.ItemToken(args[0], md.metadata())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	md.bind(cmd, true)
	return cmd
}

type verifyResult struct {
	AcquiredItem string                `json:"acquired_item,omitempty"`
	Subscription bool                  `json:"subscription"`
	Decision     *entitlement.Decision `json:"decision,omitempty"`
}

func newVerifyCmd(a *app) *cobra.Command {
	var (
		itemID string
		gated  bool
	)
	cmd := &cobra.Command{
		Use:   "verify <token>",
		Short: "Verify an inbound entitlement token",
		Long:  `Verify an inbound token with the provider public key and report the acquired item and subscription it proves. With --item, also report the gating decision for that item.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pay, err := a.sdk(cmd.Context())
			if err != nil {
				return err
			}
			var res verifyResult
			res.AcquiredItem, _ = pay.AcquiredItemID(args[0])
			res.Subscription = pay.HasSubscription(args[0])
			if itemID != "" {
				d := pay.Evaluate(cmd.Context(), entitlement.Item{ID: itemID, Gated: gated}, args[0])
				res.Decision = &d
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&itemID, "item", "", "item id to decide access for")
	cmd.Flags().BoolVar(&gated, "gated", true, "whether the item is gated")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var md metadataFlags
	cmd := &cobra.Command{
		Use:   "register <url>",
		Short: "Register an item with the pay API and print its uid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pay, err := a.sdk(cmd.Context())
			if err != nil {
				return err
			}
			uid, err := pay.RegisterItem(cmd.Context(), args[0], md.attributes())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uid)
			return nil
		},
	}
	md.bind(cmd, false)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var md metadataFlags
	cmd := &cobra.Command{
		Use:   "update <item-uid>",
		Short: "Replace the metadata of a registered item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pay, err := a.sdk(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := pay.UpdateAttributes(cmd.Context(), args[0], md.attributes())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{"updated": ok})
		},
	}
	md.bind(cmd, true)
	return cmd
}

func newCheckCredentialsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-credentials",
		Short: "Confirm the provider credentials with the pay API",
		Long:  `Round-trip a signed nonce through the pay API. Exits non-zero unless the credentials are confirmed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if missing := cfg.Pay.MissingCredentials(); len(missing) > 0 {
				_ = printJSON(cmd.OutOrStdout(), map[string]any{"status": "missing", "missing": missing})
				return errors.MissingField(missing[0])
			}
			pay, err := a.sdk(cmd.Context())
			if err != nil {
				return err
			}
			check := pay.CheckCredentials(cmd.Context())
			out := map[string]string{
				"status":      string(check.Status),
				"provider":    pay.Config().ProviderID(),
				"environment": pay.Config().Environment(),
			}
			if check.Err != nil {
				out["reason"] = check.Err.Error()
			}
			if err := printJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if !check.Valid() {
				return fmt.Errorf("credentials are %s", check.Status)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), struct {
				*version.Info
				UserAgent string `json:"user_agent"`
			}{version.GetVersionInfo(), version.UserAgent()})
		},
	}
}
