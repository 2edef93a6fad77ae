// Command hash-generator prints the bcrypt secret the API would store for each
// password given on the command line. It is meant for seeding users directly
// into a database.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/phrazzld/keyring-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] password...")
		os.Exit(2)
	}

	hasher := auth.NewBcryptHasher(*cost)
	failed := false
	for _, password := range flag.Args() {
		secret, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
			failed = true
			continue
		}
		fmt.Println(secret)
	}
	if failed {
		os.Exit(1)
	}
}
