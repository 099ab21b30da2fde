package main

import (
	"os"

	"github.com/elevatedliving/storefront/config"
)

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		os.Exit(1)
	}
}
