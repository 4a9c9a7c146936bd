// Command admin-hash prints a bcrypt hash for ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/admin-hash 'my password'
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"OrientadorFP_Backend/internal/auth"
)

func main() {
	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("read password: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	fmt.Println(hash)
}
