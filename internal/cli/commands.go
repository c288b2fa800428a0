package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all inventory items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, resp, err := a.client().List(cmd.Context())
			if err != nil {
				return err
			}
			if !resp.OK() {
				a.printf("%s\n", resp.Body)
				return nil
			}

			a.printf("📦 Inventory:\n")
			for _, it := range items {
				a.printf("- ID: %d | %s | Qty: %d | $%s\n",
					it.ID, it.Name, it.Quantity, strconv.FormatFloat(it.Price, 'f', -1, 64))
			}
			return nil
		},
	}
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one inventory item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := a.client().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			a.printf("%s\n", resp.Body)
			return nil
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var brand, barcode, ingredients string

	cmd := &cobra.Command{
		Use:   "add NAME QUANTITY PRICE",
		Short: "Add a new product",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			price, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid price %q", args[2])
			}

			extra := map[string]any{}
			if cmd.Flags().Changed("brand") {
				extra["brand"] = brand
			}
			if cmd.Flags().Changed("barcode") {
				extra["barcode"] = barcode
			}
			if cmd.Flags().Changed("ingredients") {
				extra["ingredients"] = ingredients
			}

			resp, err := a.client().Add(cmd.Context(), args[0], qty, price, extra)
			if err != nil {
				return err
			}
			a.printf("Added: %s\n", resp.Body)
			return nil
		},
	}

	cmd.Flags().StringVar(&brand, "brand", "", "brand name")
	cmd.Flags().StringVar(&barcode, "barcode", "", "barcode")
	cmd.Flags().StringVar(&ingredients, "ingredients", "", "ingredients text")
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	var (
		quantity     int
		price        float64
		name         string
		brand        string
		barcode      string
		ingredients  string
		clearBarcode bool
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an existing product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			patch := map[string]any{}
			flags := cmd.Flags()
			if flags.Changed("quantity") {
				patch["quantity"] = quantity
			}
			if flags.Changed("price") {
				patch["price"] = price
			}
			if flags.Changed("name") {
				patch["name"] = name
			}
			if flags.Changed("brand") {
				patch["brand"] = brand
			}
			if flags.Changed("ingredients") {
				patch["ingredients"] = ingredients
			}
			switch {
			case clearBarcode:
				patch["barcode"] = nil
			case flags.Changed("barcode"):
				patch["barcode"] = barcode
			}

			resp, err := a.client().Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			a.printf("Updated: %s\n", resp.Body)
			return nil
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 0, "new quantity")
	cmd.Flags().Float64Var(&price, "price", 0, "new price")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&brand, "brand", "", "new brand")
	cmd.Flags().StringVar(&ingredients, "ingredients", "", "new ingredients text")
	cmd.Flags().StringVar(&barcode, "barcode", "", "new barcode")
	cmd.Flags().BoolVar(&clearBarcode, "clear-barcode", false, "remove the barcode")
	cmd.MarkFlagsMutuallyExclusive("barcode", "clear-barcode")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product from inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := a.client().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			a.printf("%s\n", resp.Body)
			return nil
		},
	}
}

func (a *app) fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch NAME...",
		Short: "Fetch product from external API and add to inventory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client().Fetch(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			a.printf("Fetched: %s\n", resp.Body)
			return nil
		},
	}
}
