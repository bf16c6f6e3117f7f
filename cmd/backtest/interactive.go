package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"StockBacktest/internal/config"
)

// promptOptions walks the user through the same steps as the command-line
// flags: tickers, year range, comparison index, output directory.
func promptOptions(opts *options, cfg *config.Config) error {
	in := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("         STOCK BACKTEST - INTERACTIVE MODE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("\nCompare stock performance against market indices")
	fmt.Println("over customizable time periods.")
	fmt.Println()

	tickers, err := promptTickers(in)
	if err != nil {
		return err
	}
	opts.tickers = strings.Join(tickers, ",")

	fmt.Println("Step 2: Select Date Range")
	fmt.Println(strings.Repeat("-", 40))
	currentYear := time.Now().Year()
	start, err := promptYear(in, "Start year", currentYear-5, currentYear)
	if err != nil {
		return err
	}
	var end int
	for {
		end, err = promptYear(in, "End year", currentYear-1, currentYear)
		if err != nil {
			return err
		}
		if end >= start {
			break
		}
		fmt.Printf("End year must be >= start year (%d).\n\n", start)
	}
	opts.startYear, opts.endYear = start, end

	index, err := promptIndex(in)
	if err != nil {
		return err
	}
	opts.index = index

	dir, err := promptLine(in, fmt.Sprintf("Output directory (default: %s): ", cfg.Output.Dir))
	if err != nil {
		return err
	}
	if dir != "" {
		cfg.Output.Dir = dir
	}

	return nil
}

func promptTickers(in *bufio.Reader) ([]string, error) {
	fmt.Println("Step 1: Enter Stock Tickers")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println("Enter one or more ticker symbols, separated by spaces.")
	fmt.Println("Example: AAPL MSFT GOOGL")
	fmt.Println()

	for {
		line, err := promptLine(in, "Stock ticker(s): ")
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(strings.ToUpper(line))
		if len(fields) > 0 {
			fmt.Printf("\nWill analyze: %s\n\n", strings.Join(fields, ", "))
			return fields, nil
		}
		fmt.Println("Please enter at least one ticker.")
	}
}

func promptYear(in *bufio.Reader, label string, def, maxYear int) (int, error) {
	for {
		line, err := promptLine(in, fmt.Sprintf("%s (default: %d): ", label, def))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		year, err := strconv.Atoi(line)
		if err != nil || year < 1900 || year > maxYear {
			fmt.Printf("Please enter a year between 1900 and %d.\n\n", maxYear)
			continue
		}
		return year, nil
	}
}

func promptIndex(in *bufio.Reader) (string, error) {
	fmt.Println("Step 3: Choose Comparison Index (Optional)")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println("  1. S&P 500 (SP500)")
	fmt.Println("  2. NASDAQ (NASDAQ)")
	fmt.Println("  3. Dow Jones (DOW)")
	fmt.Println("  4. Russell 2000 (RUSSELL2000)")
	fmt.Println("  5. None (skip comparison)")
	fmt.Println()

	choices := map[string]string{
		"1": "SP500",
		"2": "NASDAQ",
		"3": "DOW",
		"4": "RUSSELL2000",
		"5": "",
	}

	for {
		line, err := promptLine(in, "Your choice (1-5, default: 1): ")
		if err != nil {
			return "", err
		}
		if line == "" {
			line = "1"
		}
		index, ok := choices[line]
		if !ok {
			fmt.Println("Please enter a number between 1 and 5.")
			continue
		}
		if index != "" {
			fmt.Printf("\nWill compare against: %s\n\n", index)
		} else {
			fmt.Println("\nNo index comparison")
		}
		return index, nil
	}
}

func promptLine(in *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
