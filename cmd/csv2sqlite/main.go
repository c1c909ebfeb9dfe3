package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/ATechAdventurer/csv2sqlite/internal/csv2sqlite"
)

func main() {
	if err := csv2sqlite.Run(context.Background()); err != nil {
		if errors.Is(err, csv2sqlite.ErrConversionFailed) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}
