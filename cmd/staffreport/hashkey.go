package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/example/staffing-reports/internal/security"
)

func runHashKey(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hash-key", flag.ContinueOnError)
	fs.SetOutput(stderr)
	key := fs.String("key", "", "API key to hash")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*key) == "" {
		return errors.New("hash-key: -key is required")
	}

	encoded, err := security.HashKey(*key, security.DefaultArgon2idParams)
	if err != nil {
		return fmt.Errorf("hash-key: %w", err)
	}
	fmt.Fprintln(stdout, encoded)
	return nil
}
