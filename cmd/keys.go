package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"
)

// Key size for both securecookie keys. 32 bytes gives HMAC-SHA256 signing
// and AES-256 encryption for the bookings-list session cookie.
const cookieKeyBytes = 32

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Generate the session cookie keys (COOKIE_HASH_KEY / COOKIE_BLOCK_KEY, base64)",
		RunE: func(cmd *cobra.Command, args []string) error {
			hash := make([]byte, cookieKeyBytes)
			block := make([]byte, cookieKeyBytes)
			if _, err := rand.Read(hash); err != nil {
				return err
			}
			if _, err := rand.Read(block); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "export COOKIE_HASH_KEY=%s\n", base64.StdEncoding.EncodeToString(hash))
			fmt.Fprintf(out, "export COOKIE_BLOCK_KEY=%s\n", base64.StdEncoding.EncodeToString(block))
			return nil
		},
	}
}
