// Одноразовая утилита: деривит user API креды из приватного ключа
// и печатает тройку. Аналог npm run derive-user-creds.
package main

import (
	"context"
	"fmt"
	"log"

	"clob_trader/internal/modules/clob/service"
	"clob_trader/internal/modules/config"
	"clob_trader/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName("clob_trader_derive")

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Trading.PrivateKey == "" {
		log.Fatal("Missing POLYMARKET_PRIVATE_KEY in environment. Aborting.")
	}

	deriver := service.NewHTTPDeriver(cfg, service.NewRemoteSigner(cfg))
	creds, err := deriver.Derive(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	if !creds.Complete() {
		log.Fatal("derivation returned an incomplete credential triple")
	}

	fmt.Println("API Key:", creds.APIKey)
	fmt.Println("Secret:", creds.APISecret)
	fmt.Println("Passphrase:", creds.APIPassphrase)
}
