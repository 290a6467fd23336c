package main

import (
	"context"
	"log"
	"os"

	"github.com/mchmarny/recipebox/pkg/api"
	"github.com/mchmarny/recipebox/pkg/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("RECIPEBOX_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	if err := api.Serve(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
}
