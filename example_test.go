package rent_test

import (
	"fmt"

	"github.com/orsabag2/rent"
	"github.com/orsabag2/rent/assets"
	"github.com/orsabag2/rent/clause"
)

func ExampleRenderer_ContractText() {
	master := "1. תקופה\n" +
		"{{#if fixedTerm}}1.1 לתקופה של {{months}} חודשים.\n{{/if}}" +
		"1.2 דמי שכירות {{rent}} ש\"ח.\n" +
		"1.3 חניה מספר {{parkingNumber}}.\n" +
		"2. כללי\n" +
		"2.1 אין לקזז חובות."

	r, err := rent.New(rent.WithBundle(&assets.Bundle{
		Questions: []clause.Definition{{Name: "rent", Label: "כמה שכר דירה?"}},
		Master:    master,
	}))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	text, err := r.ContractText(clause.Answers{"rent": "5000", "months": "12"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(text)
	// Output:
	// 1. תקופה
	// 1.1 דמי שכירות 5000 ש"ח.
	// 2. כללי
	// 2.1 אין לקזז חובות.
}
