package domain

// Currency a currency code, e.g. USD
type Currency string

// Amount a monetary amount... still a float, rounding is left to presentation
type Amount float64

// Rate an exchange rate: the base currency value of one unit of a foreign currency
type Rate float64

// Rates maps a currency code to its rate against a base currency
type Rates map[Currency]Rate

// Exchanged the outcome of a conversion
type Exchanged struct {
	Rate   Rate
	Amount Amount
}
