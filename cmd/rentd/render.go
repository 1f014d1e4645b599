package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orsabag2/rent"
	"github.com/orsabag2/rent/clause"
)

var (
	answersPath string
	renderMode  string
	outPath     string
	htmlOnly    bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a contract from an answers file",
	Long: `Reads a JSON object of question name to answer and writes the
contract as PDF, or as HTML with --html. Output goes to stdout unless --out
is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := readAnswers(answersPath)
		if err != nil {
			return err
		}
		mode, err := rent.ParseMode(renderMode)
		if err != nil {
			return err
		}
		r, err := newRenderer(cfg)
		if err != nil {
			return err
		}

		if outPath == "" {
			return render(cmd.OutOrStdout(), r, answers, mode)
		}
		return renderFile(outPath, r, answers, mode)
	},
}

// renderFile writes the contract to path, removing a partial file on error.
func renderFile(path string, r *rent.Renderer, answers clause.Answers, mode rent.Mode) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rentd: %w", err)
	}
	err = render(f, r, answers, mode)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("rentd: closing %s: %w", path, cerr)
	}
	if err != nil {
		os.Remove(path)
	}
	return err
}

func init() {
	renderCmd.Flags().StringVarP(&answersPath, "answers", "a", "", "JSON file with the questionnaire answers")
	renderCmd.Flags().StringVarP(&renderMode, "mode", "m", string(rent.ModeClauses), "assembly mode: clauses or template")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	renderCmd.Flags().BoolVar(&htmlOnly, "html", false, "write the contract HTML instead of a PDF")
	_ = renderCmd.MarkFlagRequired("answers")
}

func readAnswers(path string) (clause.Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rentd: reading answers: %w", err)
	}
	var answers clause.Answers
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("rentd: parsing %s: %w", path, err)
	}
	return answers, nil
}

func render(w io.Writer, r *rent.Renderer, answers clause.Answers, mode rent.Mode) error {
	if htmlOnly {
		body, err := r.ContractHTML(answers, mode)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, body)
		return err
	}

	var buf bytes.Buffer
	res, err := r.PDF(&buf, answers, mode, nil)
	if err != nil {
		return err
	}
	logger.Debug("rendered contract",
		zap.Int("pages", res.PageCount()),
		zap.String("mode", string(mode)))
	_, err = w.Write(buf.Bytes())
	return err
}
