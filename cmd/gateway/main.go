// Command gateway обслуживает оформление заказа браузера поверх storefront API.
package main

import (
	"log"

	"github.com/avc/storefront-gateway/internal/app"
)

func main() {
	log.SetPrefix("gateway: ")

	gateway, err := app.NewApp()
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}

	if err := gateway.Run(); err != nil {
		log.Fatalf("stopped with error: %v", err)
	}
}
