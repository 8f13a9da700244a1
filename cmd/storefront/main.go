package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Furniture storefront terminal client",
	Long:          "Browse the catalog, manage a cart and place orders against the furniture storefront API. Run without a subcommand for an interactive shell.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "path to the client config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(shellCmd)

	// Catalog and cart
	rootCmd.AddCommand(passthrough("products [category]", "List products", cobra.MaximumNArgs(1)))
	rootCmd.AddCommand(passthrough("product <id>", "Show a product with its reviews", cobra.ExactArgs(1)))
	rootCmd.AddCommand(passthrough("review <product-id> <rating> [comment...]", "Review a product", cobra.MinimumNArgs(2)))

	// Account
	rootCmd.AddCommand(passthrough("login <username> <password>", "Sign in", cobra.ExactArgs(2)))
	rootCmd.AddCommand(passthrough("register <username> <password>", "Create an account", cobra.ExactArgs(2)))
	rootCmd.AddCommand(passthrough("logout", "Sign out", cobra.NoArgs))
	rootCmd.AddCommand(passthrough("whoami", "Show the signed-in user", cobra.NoArgs))
	rootCmd.AddCommand(passthrough("session", "Show the session state", cobra.NoArgs))
	rootCmd.AddCommand(passthrough("password <current> <new>", "Change your password", cobra.ExactArgs(2)))

	// Orders and admin
	rootCmd.AddCommand(passthrough("orders [all]", "List your orders, or every order for admins", cobra.MaximumNArgs(1)))
	rootCmd.AddCommand(passthrough("status <order-id> <status>", "Update an order status", cobra.ExactArgs(2)))
	rootCmd.AddCommand(passthrough("stats", "Show dashboard totals", cobra.NoArgs))
	rootCmd.AddCommand(passthrough("upload <id> <image-path>", "Replace a product image", cobra.ExactArgs(2)))
	rootCmd.AddCommand(passthrough("delete <product-id>", "Delete a product", cobra.ExactArgs(1)))
	rootCmd.AddCommand(passthrough(`product-new "<image-path> | <name-en> | <name-bn> | <price> | <category> [| <description-en> [| <description-bn>]]"`, "Create a product", cobra.MinimumNArgs(1)))
	rootCmd.AddCommand(passthrough(`product-edit "<id> | <field>=<value> [| ...]"`, "Edit product fields", cobra.MinimumNArgs(1)))
	rootCmd.AddCommand(passthrough("order-delete <order-id>", "Delete an order", cobra.ExactArgs(1)))

	rootCmd.AddCommand(routesCmd)
}
