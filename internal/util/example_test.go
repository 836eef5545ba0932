// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util_test

import (
	"fmt"

	"github.com/jeranaias/bankist-tui/internal/util"
)

func ExampleColumns() {
	fmt.Printf("%q\n", util.Columns(" ", []int{3, -10}, "1", "$5"))
	// Output: "1           $5"
}

func ExampleTruncateWidth() {
	fmt.Println(util.TruncateWidth("Jessica Davis", 8))
	// Output: Jessica…
}

func ExamplePadLeft() {
	fmt.Printf("[%s]\n", util.PadLeft("$30.00", 8))
	// Output: [  $30.00]
}
