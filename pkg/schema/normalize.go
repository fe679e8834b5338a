package schema

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Pre-compiled regular expressions for name normalization. They run after
// diacritics are stripped, so the Czech/Slovak words appear unaccented.
var (
	annotationRe  = regexp.MustCompile(`[,.(]\s*(nastup\w*|vystup\w*|ukonc\w*|odchod\w*|zacatek|konec|start|end|od|do)\b.*$`)
	dateRe        = regexp.MustCompile(`\b\d{1,2}\.\s*\d{1,2}\.\s*(\d{4}|\d{2})\b`)
	terminationRe = regexp.MustCompile(`\b(ukonc\w*|vystup\w*|odchod\w*|konec|end)\b`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	emptyParenRe  = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
)

// letterFolds covers letters that carry no combining mark after NFD and so
// survive stripDiacritics.
var letterFolds = strings.NewReplacer(
	"ł", "l", "đ", "d", "ø", "o", "ß", "ss", "æ", "ae", "œ", "oe", "ı", "i",
)

// NormalizeName produces the canonical comparison key of a person name:
//  1. ToLower, TrimSpace
//  2. Strip diacritics (Unicode NFD decompose, remove combining marks)
//  3. Strip trailing start/end annotations ("Novák, nástup 1.3.2023")
//  4. Strip embedded D.M.YY / DD.MM.YYYY dates and the brackets left empty
//  5. Collapse whitespace
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return s
	}

	s = stripDiacritics(s)
	s = annotationRe.ReplaceAllString(s, "")
	s = dateRe.ReplaceAllString(s, "")
	s = emptyParenRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")

	return strings.Trim(s, " ,;-")
}

// SimplifyName is the fuzzy-comparison variant of NormalizeName: spaces,
// periods, commas, hyphens, parentheses and digits are removed and the remaining
// language-specific letters are folded to ASCII.
func SimplifyName(name string) string {
	s := letterFolds.Replace(NormalizeName(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '.' || r == ',' || r == '-' || r == '(' || r == ')':
			return -1
		case unicode.IsDigit(r):
			return -1
		}
		return r
	}, s)
}

// IsTerminated reports whether the raw name carries an employment
// termination note.
func IsTerminated(name string) bool {
	s := stripDiacritics(strings.ToLower(name))
	return terminationRe.MatchString(s)
}

// NameParts is a tokenized normalized name. Sources list the surname first.
type NameParts struct {
	Normalized string
	// Key is Normalized with punctuation trimmed off every token.
	Key     string
	Tokens  []string
	Surname string
	Given   string
	Initial string
	// Abbreviated is set when the given name is a lone initial ("Novák A.").
	Abbreviated bool
}

// ParseName splits the normalized form of name into tokens.
func ParseName(name string) NameParts {
	p := NameParts{Normalized: NormalizeName(name)}
	for _, tok := range strings.Fields(p.Normalized) {
		tok = strings.Trim(tok, ".,")
		if tok != "" {
			p.Tokens = append(p.Tokens, tok)
		}
	}
	if len(p.Tokens) == 0 {
		return p
	}

	p.Key = strings.Join(p.Tokens, " ")
	p.Surname = p.Tokens[0]
	if len(p.Tokens) >= 2 {
		p.Given = p.Tokens[1]
		given := []rune(p.Given)
		p.Initial = string(given[0])
		p.Abbreviated = len(given) == 1
	}
	return p
}

// SurnameAndInitial returns "<surname> <first letter of given name>", or the
// normalized name when it has a single token.
func SurnameAndInitial(name string) string {
	p := ParseName(name)
	if len(p.Tokens) < 2 {
		return p.Normalized
	}
	return p.Surname + " " + p.Initial
}

// stripDiacritics removes diacritical marks (accents) from a string.
// It decomposes the string into NFD form and removes combining marks (unicode.Mn).
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
