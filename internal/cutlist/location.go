// =============================================================================
// TigerTamer - Location Code Helpers
// =============================================================================
//
// Mozaik packs room, cabinet, and quantity information into a single terse
// location string on every cutlist row. The grammar, informally:
//
//   R2:9&10&11(2)        one room, three cabs, the last cab appearing twice
//   R1:7(2)&8(2)         one room, two cabs, each appearing twice
//   R1:1 R2:2&3          two rooms, space separated
//   3&5&6                no room prefix (room defaults to "1")
//
// Three independent axes (room, cab, quantity) share one linear string, which
// makes this the primary source of edge cases in the whole pipeline. The
// helpers in this file are the only code that inspects the raw grammar.
//
// =============================================================================

package cutlist

import (
	"regexp"
	"strconv"
	"strings"
)

// quantityPat matches a single "(n)" quantity annotation inside a location
// token. Mozaik never emits more than three digits.
var quantityPat = regexp.MustCompile(`\((\d{1,3})\)`)

// HasMultiCab reports whether the location lists more than one cabinet.
func HasMultiCab(location string) bool {
	return strings.Contains(location, "&")
}

// HasMultiRoom reports whether the location spans more than one room.
// Single-room strings never contain both a second room marker and a space,
// so that combination is the multi-room signal.
func HasMultiRoom(location string) bool {
	markers := strings.Count(strings.ToLower(location), "r")
	return markers > 1 && strings.Contains(location, " ")
}

// HasMulti reports whether the location addresses more than one room or
// cabinet. An empty location is never multi.
func HasMulti(location string) bool {
	if location == "" {
		return false
	}
	return HasMultiCab(location) || HasMultiRoom(location)
}

// ExtractQuantity parses the "(n)" quantity annotation from a location
// token, like the "(2)" in "R1:1(2)". Pathological input has carried more
// than one annotation per token; all of them are summed. Tokens with no
// annotation have an implied quantity of 1.
func ExtractQuantity(token string) int {
	matches := quantityPat.FindAllStringSubmatch(token, -1)
	if len(matches) == 0 {
		if strings.Contains(token, "(") {
			// A paren with no parseable quantity is either a stray
			// character or a parse miss worth knowing about.
			log.Debugw("missed cab quantity?", "token", token)
		}
		return 1
	}
	total := 0
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// Unreachable with the digit-only pattern, but don't
			// let a quantity silently vanish.
			continue
		}
		total += n
	}
	log.Debugw("found cab quantity", "token", token, "quantity", total)
	return total
}

// StripQuantity removes every "(n)" annotation from a location token, for
// comparing locations that differ only in quantity.
func StripQuantity(token string) string {
	return quantityPat.ReplaceAllString(token, "")
}
