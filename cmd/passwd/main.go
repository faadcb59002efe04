// Command passwd prints an argon2id hash of a password, ready to paste into
// the Password column of the users container.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/storekeeper/internal/cli"
	"github.com/dmitrijs2005/storekeeper/internal/common"
	"github.com/dmitrijs2005/storekeeper/internal/cryptox"
)

func main() {
	password, err := cli.GetPassword(bufio.NewReader(os.Stdin), os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer common.WipeByteArray(password)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(hash)
}
