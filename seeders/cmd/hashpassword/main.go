// Command hashpassword prints a bcrypt hash for manual user fixes in the database.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gearguard/pkg/utils"
)

func main() {
	password := flag.String("password", "", "plain-text password to hash")
	flag.Parse()

	if *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	fmt.Println(hash)
}
