package console

import (
	"bufio"
	"context"
	"currency-converter/convert"
	"currency-converter/domain"
	"currency-converter/exchange"
	"currency-converter/rates"
	"errors"
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shopspring/decimal"
	"io"
	"math"
	"strconv"
	"strings"
)

const rule = "----------------------------------------------------------------------"

// REPL interactive conversion loop reading from in and writing to out
type REPL struct {
	in      *bufio.Scanner
	out     io.Writer
	service exchange.Service
	table   *rates.Table
	logger  log.Logger

	// err first error writing to out, after which nothing more is written
	err error
}

// NewREPL constructs a valid REPL. table is only used to list the supported currencies,
// conversions go through service.
func NewREPL(in io.Reader, out io.Writer, service exchange.Service, table *rates.Table, logger log.Logger) *REPL {
	return &REPL{
		in:      bufio.NewScanner(in),
		out:     out,
		service: service,
		table:   table,
		logger:  logger,
	}
}

// Run prompts for conversions until the user declines another one or input ends.
// Invalid input is reported and prompted for again.
func (r *REPL) Run(ctx context.Context) error {
	level.Info(r.logger).Log("msg", "starting session", "base", r.table.Base())

	r.printTable()

	for r.err == nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		again, err := r.once(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			r.report(err)
			continue
		}
		if !again {
			break
		}
	}

	r.printf("\n--- Thanks for using the currency converter. Safe travels! ---\n")
	level.Info(r.logger).Log("msg", "ending session", "err", r.err)
	return r.err
}

// once runs a single conversion and asks whether to go again
func (r *REPL) once(ctx context.Context) (bool, error) {
	base := r.table.Base()

	r.printf("--- New conversion ---\n")
	r.printf("Your base currency is: %v\n", base)

	line, err := r.prompt(fmt.Sprintf("Enter your budget in %v: ", base))
	if err != nil {
		return false, err
	}
	amount, err := ParseAmount(line)
	if err != nil {
		return false, err
	}

	r.printf("\nChoose the currency to convert to from the list above.\n")
	line, err = r.prompt("Enter the foreign currency code (e.g. JPY, EUR): ")
	if err != nil {
		return false, err
	}
	to := rates.Normalize(domain.Currency(line))

	ex, err := r.service.Convert(ctx, amount, to)
	if err != nil {
		return false, err
	}

	r.printf("\n--- Conversion result ---\n")
	r.printf("You have %v %v.\n", FormatAmount(amount, 2), base)
	r.printf("At the exchange rate (1 %v = %v %v):\n", to, FormatAmount(domain.Amount(ex.Rate), 4), base)
	r.printf("You will get: %v %v.\n", FormatAmount(ex.Amount, 2), to)

	line, err = r.prompt("\nAnother conversion? (y/n): ")
	if err != nil {
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y", nil
}

// printTable lists the supported currencies with their rates in both directions
func (r *REPL) printTable() {
	base := r.table.Base()

	r.printf("--- Currency converter for frequent travellers ---\n")
	r.printf("Supported currencies (rates vs. %v):\n", base)
	r.printf("%v\n", rule)
	r.printf(" %-12s | %-28s | %s\n", "Currency", fmt.Sprintf("1 Currency = X %v", base), fmt.Sprintf("1 %v = Y Currency", base))
	r.printf("%v\n", rule)
	for _, currency := range r.table.Currencies() {
		rate, err := r.table.Lookup(context.Background(), currency)
		if err != nil {
			continue
		}
		r.printf(" %-12s | %-28s | %s\n",
			currency,
			FormatAmount(domain.Amount(rate), 4),
			FormatAmount(domain.Amount(1/rate), 2),
		)
	}
	r.printf("%v\n\n", rule)
}

// report tells the user what went wrong so they can try again
func (r *REPL) report(err error) {
	switch {
	case errors.Is(err, convert.ErrInvalidAmount),
		errors.Is(err, convert.ErrInvalidRate),
		errors.Is(err, rates.ErrUnsupportedCurrency):
		level.Debug(r.logger).Log("msg", "invalid input", "err", err)
		r.printf("\nError! Invalid input: %v\n", err)
		r.printf("Please enter a valid number for the budget and a supported currency.\n\n")
	default:
		level.Error(r.logger).Log("msg", "conversion failed", "err", err)
		r.printf("\nAn unexpected error occurred: %v\n\n", err)
	}
}

// prompt writes msg and reads one line. Returns io.EOF once input is exhausted.
func (r *REPL) prompt(msg string) (string, error) {
	r.printf("%s", msg)
	if r.err != nil {
		return "", r.err
	}
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return r.in.Text(), nil
}

func (r *REPL) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		r.err = fmt.Errorf("writing output: %w", err)
	}
}

// maxExponent bounds the decimal exponent of typed amounts, well past the float64 range
const maxExponent = 400

// ParseAmount parses a decimal number typed by the user. Anything that isn't a plain number
// fails with convert.ErrInvalidAmount.
func ParseAmount(s string) (domain.Amount, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", convert.ErrInvalidAmount, s)
	}
	// converting scales by 10^exponent, which is unbounded for input like 1e99999999
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return 0, fmt.Errorf("%w: %q is out of range", convert.ErrInvalidAmount, s)
	}
	amount := domain.Amount(d.InexactFloat64())
	if err := convert.ValidateAmount(amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// FormatAmount rounds half away from zero to places decimals
func FormatAmount(amount domain.Amount, places int32) string {
	f := float64(amount)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return decimal.NewFromFloat(f).StringFixed(places)
}
