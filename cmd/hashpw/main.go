// Command hashpw prints an ADMIN_PASSWORD_HASH line for the dashboard
// login. The password is read from the first line of stdin.
//
//	echo 'correct horse' | go run ./cmd/hashpw >> .env
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/01moynul/restaurant-storefront/internal/models"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		logrus.Fatalf("hashpw: %v", err)
	}
}

func run(in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return errors.Wrap(err, "read password")
	}

	pw, err := models.HashPassword(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "ADMIN_PASSWORD_HASH=%s\n", pw.Hash)
	return err
}
