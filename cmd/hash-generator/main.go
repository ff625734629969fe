// Command hash-generator prints bcrypt hashes for the given passwords, for
// seeding users directly into the database.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: hash-generator [-cost N] password...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	hasher, err := auth.NewBcryptHasher(*cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, password := range flag.Args() {
		if verr := domain.ValidatePassword(password); verr != nil {
			fmt.Fprintf(os.Stderr, "skipping password: %v\n", verr)
			failed = true
			continue
		}
		hash, err := hasher.HashPassword(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error generating hash: %v\n", err)
			failed = true
			continue
		}
		fmt.Println(hash)
	}

	if failed {
		os.Exit(1)
	}
}
