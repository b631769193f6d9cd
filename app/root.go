// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-rbac-admin",
	Short: "Go-RBAC-Admin is a web console for an RBAC backend service",
	Long: `Go-RBAC-Admin is a browser-rendered administration console for a
role-based access control backend. It manages users, roles, and permissions
through the backend's HTTP API and gates its own UI with the permission set
carried in the signed session.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
