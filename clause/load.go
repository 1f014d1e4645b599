package clause

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load errors.
var (
	ErrDuplicateName = errors.New("clause: duplicate definition name")
	ErrMalformed     = errors.New("clause: malformed definition")
)

// Alternate key names accepted for each canonical field, in lookup order.
var (
	nameKeys        = []string{"name"}
	labelKeys       = []string{"label", "שאלה", "question"}
	sectionKeys     = []string{"section", "סעיף"}
	inputTypeKeys   = []string{"inputType", "type"}
	staticTextKeys  = []string{"staticText", "טקסט קבוע"}
	legalTextKeys   = []string{"legalText", "clauseText", "טקסט משפטי"}
	optionKeys      = []string{"options", "אפשרויות"}
	legalOptionKeys = []string{"legalOptions"}
	conditionalKeys = []string{"conditional", "תנאי"}
	condLabelKeys   = []string{"questionLabel", "שאלה"}
	condValueKeys   = []string{"requiredValue", "ערך"}
	placeholderKeys = []string{"placeholder"}
	explanationKeys = []string{"explanation", "הסבר"}
	requiredKeys    = []string{"required"}
)

// sectionAliases folds section titles that were renamed over time.
var sectionAliases = map[string]string{
	"פרטי הדירה": "פרטי הנכס",
}

// LoadFile reads and normalizes definitions from a JSON file.
func LoadFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("clause: opening %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a JSON array of question objects and normalizes them.
func Load(r io.Reader) ([]Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("clause: reading definitions: %w", err)
	}
	return Parse(data)
}

// Parse normalizes a JSON array of question objects.
func Parse(data []byte) ([]Definition, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("clause: parsing definitions: %w", err)
	}

	defs := make([]Definition, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for i, obj := range raw {
		d, err := normalize(obj, i)
		if err != nil {
			return nil, fmt.Errorf("clause: definition %d: %w", i+1, err)
		}
		if prev, ok := seen[d.Name]; ok {
			return nil, fmt.Errorf("%w: %q (definitions %d and %d)", ErrDuplicateName, d.Name, prev+1, i+1)
		}
		seen[d.Name] = i
		defs = append(defs, d)
	}
	return defs, nil
}

func normalize(obj map[string]any, idx int) (Definition, error) {
	var d Definition

	d.Name = firstString(obj, nameKeys)
	if d.Name == "" {
		d.Name = fmt.Sprintf("q%d", idx+1)
	}
	d.Label = firstString(obj, labelKeys)
	if d.Label == "" {
		d.Label = "אנא הזן ערך עבור " + d.Name
	}
	d.Section = NormalizeSection(firstString(obj, sectionKeys))
	d.InputType = firstString(obj, inputTypeKeys)
	if d.InputType == "" {
		d.InputType = InputText
	}
	d.Placeholder = firstString(obj, placeholderKeys)
	d.Explanation = firstString(obj, explanationKeys)
	d.LegalText = firstString(obj, legalTextKeys)

	if v, ok := lookup(obj, requiredKeys); ok {
		b, _ := v.(bool)
		d.Required = b
	}

	if v, ok := lookup(obj, staticTextKeys); ok {
		s, isString := v.(string)
		if !isString {
			return d, fmt.Errorf("%w: static text of %q is not a string", ErrMalformed, d.Name)
		}
		d.Kind = KindStatic
		d.StaticText = s
	}

	var err error
	if d.Options, err = stringList(obj, optionKeys); err != nil {
		return d, fmt.Errorf("%w: options of %q: %v", ErrMalformed, d.Name, err)
	}
	if d.LegalOptions, err = stringList(obj, legalOptionKeys); err != nil {
		return d, fmt.Errorf("%w: legal options of %q: %v", ErrMalformed, d.Name, err)
	}

	if v, ok := lookup(obj, conditionalKeys); ok && v != nil {
		cond, isMap := v.(map[string]any)
		if !isMap {
			return d, fmt.Errorf("%w: conditional of %q is not an object", ErrMalformed, d.Name)
		}
		d.Conditional = &Condition{
			QuestionLabel: firstString(cond, condLabelKeys),
			RequiredValue: firstString(cond, condValueKeys),
		}
	}
	return d, nil
}

// NormalizeSection trims a section title, folds renamed titles and falls
// back to DefaultSection.
func NormalizeSection(section string) string {
	s := strings.TrimSpace(section)
	if s == "" {
		return DefaultSection
	}
	if alias, ok := sectionAliases[s]; ok {
		return alias
	}
	return s
}

func lookup(obj map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func firstString(obj map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func stringList(obj map[string]any, keys []string) ([]string, error) {
	v, ok := lookup(obj, keys)
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array, got %T", v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected strings, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}
