// Package assets embeds the default questionnaire, general clauses and
// master template.
package assets

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/orsabag2/rent/clause"
)

var (
	//go:embed questions.json
	questionsJSON []byte

	//go:embed general.json
	generalJSON []byte

	//go:embed master-template.txt
	masterTemplate string
)

// Bundle is a full set of contract sources.
type Bundle struct {
	Questions []clause.Definition
	General   []clause.Definition
	Master    string
}

// Default returns the embedded bundle.
func Default() (*Bundle, error) {
	return Load("", "", "")
}

// Load returns the embedded bundle with any non-empty path replacing the
// corresponding source.
func Load(questionsPath, generalPath, masterPath string) (*Bundle, error) {
	b := &Bundle{Master: masterTemplate}
	var err error

	if b.Questions, err = definitions(questionsPath, questionsJSON); err != nil {
		return nil, fmt.Errorf("assets: questions: %w", err)
	}
	if b.General, err = definitions(generalPath, generalJSON); err != nil {
		return nil, fmt.Errorf("assets: general clauses: %w", err)
	}
	if masterPath != "" {
		data, err := os.ReadFile(masterPath)
		if err != nil {
			return nil, fmt.Errorf("assets: master template: %w", err)
		}
		b.Master = string(data)
	}
	return b, nil
}

func definitions(path string, embedded []byte) ([]clause.Definition, error) {
	if path != "" {
		return clause.LoadFile(path)
	}
	return clause.Parse(embedded)
}
