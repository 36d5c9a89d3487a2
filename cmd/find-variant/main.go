package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/config"
	"github.com/lassenware/storefront-api/internal/tiendanube"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-variant/main.go <sku>")
		fmt.Println("Example: go run cmd/find-variant/main.go \"REM-AZUL-M\"")
		os.Exit(1)
	}

	targetSKU := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := tiendanube.NewClient(cfg.Tiendanube, logger)
	ctx := context.Background()

	fmt.Printf("Searching catalog for SKU %q...\n", targetSKU)

	found := false
	for page := 1; ; page++ {
		products, err := client.ListProducts(ctx, tiendanube.ListProductsParams{
			Page:    page,
			PerPage: 200,
		})
		if err != nil {
			fmt.Printf("Failed to fetch page %d: %v\n", page, err)
			os.Exit(1)
		}
		if len(products) == 0 {
			break
		}

		for _, product := range products {
			for _, variant := range product.Variants {
				if variant.SKU != targetSKU {
					continue
				}
				found = true
				fmt.Printf("\nProduct: %s (ID %d)\n", product.Name.Get("es"), product.ID)
				fmt.Printf("Variant ID: %d\n", variant.ID)
				fmt.Printf("Price: %s\n", variant.Price.StringFixed(2))
				if variant.PromotionalPrice != nil {
					fmt.Printf("Promotional price: %s\n", variant.PromotionalPrice.StringFixed(2))
				}
				if variant.Stock != nil {
					fmt.Printf("Stock: %d\n", *variant.Stock)
				} else {
					fmt.Println("Stock: unmetered")
				}
				for _, opt := range variant.Options {
					fmt.Printf("  %s: %s\n", opt.Name.Get("es"), opt.Value.Get("es"))
				}
			}
		}
	}

	if !found {
		fmt.Printf("SKU %q not found in catalog\n", targetSKU)
		os.Exit(1)
	}
}
