// generate_dirty_csv writes a CSV file whose header row contains the
// characters Parquet rejects, for manual testing of csvpq.
//
// Usage: go run scripts/generate_dirty_csv.go -rows 10000 -output dirty.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
)

func main() {
	var (
		rows   = flag.Int("rows", 1000, "Number of rows to generate")
		output = flag.String("output", "dirty.csv", "Output file path")
	)
	flag.Parse()

	file, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Country Name",
		"CO2 (annual)",
		"Temp;Anomaly",
		"Year=Recorded",
		"Share-of-Total",
		"{Notes}",
	}
	if err := writer.Write(headers); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		os.Exit(1)
	}

	countries := []string{"Germany", "New Zealand", "Australia", "UK", "France", "Japan"}
	for i := 0; i < *rows; i++ {
		record := []string{
			countries[rand.Intn(len(countries))],
			fmt.Sprintf("%.2f", rand.Float64()*1000),
			fmt.Sprintf("%.3f", rand.Float64()*2-1),
			fmt.Sprintf("%d", 1900+rand.Intn(125)),
			fmt.Sprintf("%.4f", rand.Float64()),
			fmt.Sprintf("note-%d", i),
		}
		if err := writer.Write(record); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing row: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Wrote %d rows to %s\n", *rows, *output)
}
