// Command generate writes sample daily sales shards for local development:
//
//	go run ./test ./data
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	shards  = 3
	perDay  = 4
	daysLen = 180
)

var (
	products = []string{"pink morsel", "gold morsel", "chocolate morsel"}
	regions  = []string{"north", "east", "south", "west"}

	start       = time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)
	priceChange = time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC)
)

func main() {
	dir := "data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	check(os.MkdirAll(dir, 0755))

	rng := rand.New(rand.NewSource(1))
	for shard := 0; shard < shards; shard++ {
		buf := new(bytes.Buffer)
		w := csv.NewWriter(buf)
		check(w.Write([]string{"product", "price", "quantity", "date", "region"}))

		for day := shard; day < daysLen; day += shards {
			date := start.AddDate(0, 0, day)
			for i := 0; i < perDay; i++ {
				product := products[rng.Intn(len(products))]
				check(w.Write([]string{
					product,
					"$" + price(product, date).StringFixed(2),
					strconv.Itoa(rng.Intn(1000) + 1),
					date.Format(time.DateOnly),
					regions[rng.Intn(len(regions))],
				}))
			}
		}
		w.Flush()
		check(w.Error())

		path := filepath.Join(dir, fmt.Sprintf("daily_sales_data_%d.csv", shard))
		check(os.WriteFile(path, buf.Bytes(), 0644))
	}
}

func price(product string, date time.Time) decimal.Decimal {
	p := decimal.RequireFromString("3.00")
	if product != "pink morsel" {
		p = decimal.RequireFromString("1.50")
	}
	if product == "pink morsel" && !date.Before(priceChange) {
		p = decimal.RequireFromString("5.00")
	}
	return p
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
