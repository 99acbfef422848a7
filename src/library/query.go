package library

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// queryFields maps the field names usable in queries to album table columns.
var queryFields = map[string]string{
	"album":             "name",
	"albumartist":       "album_artist",
	"albumartist_sort":  "album_artist_sort",
	"mb_albumid":        "mb_albumid",
	"mb_albumartistid":  "mb_albumartistid",
	"albumartistid":     "mb_albumartistid",
	"mb_releasegroupid": "mb_releasegroupid",
	"releasegroupid":    "mb_releasegroupid",
	"year":              "year",
	"path":              "path",
}

// Term is a single condition from a query.
type Term struct {
	// Column is the albums table column this term matches against. Empty
	// for terms without a field which match album and artist names.
	Column string

	// Value is the substring or regular expression to look for.
	Value string

	// Regexp is true for `field::pattern` terms.
	Regexp bool
}

// ParseQuery splits a free-text query into terms. Terms are separated by
// whitespace and all of them must match for an album to match the query.
// Double quotes could be used for values with spaces in them.
//
//   - `field:value` matches albums which have value as a case-insensitive
//     substring of field.
//   - `field::pattern` matches albums for which field matches the regular
//     expression pattern.
//   - `value` is a substring match against the album name or album artist.
func ParseQuery(query string) ([]Term, error) {
	tokens, err := tokenizeQuery(query)
	if err != nil {
		return nil, err
	}

	terms := make([]Term, 0, len(tokens))
	for _, token := range tokens {
		term, err := parseTerm(token)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}

	return terms, nil
}

func parseTerm(token string) (Term, error) {
	colon := strings.IndexByte(token, ':')
	if colon < 1 || !isFieldName(token[:colon]) {
		return Term{Value: token}, nil
	}

	field := token[:colon]
	column, ok := queryFields[field]
	if !ok {
		return Term{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	value := token[colon+1:]
	if !strings.HasPrefix(value, ":") {
		return Term{Column: column, Value: value}, nil
	}

	pattern := value[1:]
	if _, err := regexp.Compile(pattern); err != nil {
		return Term{}, fmt.Errorf("%w: bad pattern for %s: %s", ErrBadQuery, field, err)
	}

	return Term{Column: column, Value: pattern, Regexp: true}, nil
}

func isFieldName(name string) bool {
	for _, r := range name {
		if r != '_' && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// tokenizeQuery splits the query on white space. Quoted parts of a token are
// kept together and the quotes are removed.
func tokenizeQuery(query string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inQuote bool
		started bool
	)

	for _, r := range query {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case unicode.IsSpace(r) && !inQuote:
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if inQuote {
		return nil, fmt.Errorf("%w: unterminated quote", ErrBadQuery)
	}
	if started {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}

// whereClauses converts terms into SQL conditions for the albums table aliased
// as `al` and their respective arguments.
func whereClauses(terms []Term) ([]string, []any) {
	var (
		where []string
		args  []any
	)

	for _, term := range terms {
		switch {
		case term.Column == "":
			like := "%" + escapeLike(term.Value) + "%"
			where = append(where,
				`(al.name LIKE ? ESCAPE '\' OR al.album_artist LIKE ? ESCAPE '\')`,
			)
			args = append(args, like, like)
		case term.Regexp:
			where = append(where, fmt.Sprintf("CAST(al.%s AS TEXT) REGEXP ?", term.Column))
			args = append(args, term.Value)
		default:
			where = append(where, fmt.Sprintf(`al.%s LIKE ? ESCAPE '\'`, term.Column))
			args = append(args, "%"+escapeLike(term.Value)+"%")
		}
	}

	return where, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(val string) string {
	return likeEscaper.Replace(val)
}
