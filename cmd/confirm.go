package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// yesConfirm skips the interactive prompt of commands that replace stored settings.
var yesConfirm bool

// confirmReplace prompts the user for confirmation or uses --yes flag.
func confirmReplace(what string) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  This replaces the stored %s. Type 'yes' to confirm: ", what)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
