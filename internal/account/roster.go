// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package account

import "time"

// Spec describes one account as it appears in configuration.
type Spec struct {
	Owner        string     `toml:"owner" json:"owner"`
	PIN          int        `toml:"pin" json:"pin"`
	InterestRate float64    `toml:"interest_rate" json:"interest_rate"`
	Currency     string     `toml:"currency" json:"currency"`
	Locale       string     `toml:"locale" json:"locale"`
	Movements    []Movement `toml:"movements" json:"movements"`
}

// Movement is a seeded ledger entry. A zero At means "when the roster is built".
type Movement struct {
	Amount float64   `toml:"amount" json:"amount"`
	At     time.Time `toml:"at" json:"at"`
}

// DefaultRoster returns the two built-in demo accounts.
func DefaultRoster() []Spec {
	return []Spec{
		{
			Owner:        "Jonas Schmedtmann",
			PIN:          1111,
			InterestRate: 1.2,
			Currency:     "EUR",
			Locale:       "pt-PT",
			Movements: movements(
				[]float64{200, 455.23, -306.5, 25000, -642.21, -133.9, 79.97, 1300},
				[]string{
					"2019-11-18T21:31:17.178Z",
					"2019-12-23T07:42:02.383Z",
					"2020-01-28T09:15:04.904Z",
					"2020-04-01T10:17:24.185Z",
					"2020-05-08T14:11:59.604Z",
					"2020-07-26T17:01:17.194Z",
					"2020-07-28T23:36:17.929Z",
					"2020-08-01T10:51:36.790Z",
				},
			),
		},
		{
			Owner:        "Jessica Davis",
			PIN:          2222,
			InterestRate: 1.5,
			Currency:     "USD",
			Locale:       "en-US",
			Movements: movements(
				[]float64{5000, 3400, -150, -790, -3210, -1000, 8500, -30},
				[]string{
					"2019-11-01T13:15:33.035Z",
					"2019-11-30T09:48:16.867Z",
					"2019-12-25T06:04:23.907Z",
					"2020-01-25T14:18:46.235Z",
					"2020-02-05T16:33:06.386Z",
					"2020-04-10T14:43:26.374Z",
					"2020-06-25T18:49:59.371Z",
					"2020-07-26T12:01:20.894Z",
				},
			),
		},
	}
}

func movements(amounts []float64, stamps []string) []Movement {
	out := make([]Movement, len(amounts))
	for i, a := range amounts {
		at, err := time.Parse(time.RFC3339Nano, stamps[i])
		if err != nil {
			panic("account: bad built-in timestamp " + stamps[i])
		}
		out[i] = Movement{Amount: a, At: at}
	}
	return out
}
