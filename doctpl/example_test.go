package doctpl_test

import (
	"fmt"

	"github.com/orsabag2/rent/doctpl"
)

func ExampleFromHTML() {
	runs, err := doctpl.FromHTML(`<h2>1. מבוא</h2><p style="text-align:left"><b>בין:</b> הצדדים</p>`)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range runs {
		if r.IsText() {
			fmt.Printf("%s %s %s %q\n", r.Kind, r.Align, r.Weight, r.Text)
		}
	}
	// Output:
	// heading2 right bold "1. מבוא"
	// paragraph left bold "בין:"
	// paragraph left normal "הצדדים"
}

func ExampleFromText() {
	for _, r := range doctpl.FromText("סיכום\nשכר דירה: 5000") {
		fmt.Printf("%s %.0f %q\n", r.Kind, r.Size, r.Text)
	}
	// Output:
	// paragraph 14 "סיכום"
	// paragraph 14 "שכר דירה: 5000"
}
