package main

import (
	"os"

	"github.com/go-rbac-admin/go-rbac-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
