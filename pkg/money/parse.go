package money

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Match is one amount found in free text.
type Match struct {
	Value decimal.Decimal
	Raw   string
	Start int
	End   int
	// Marked reports whether a currency symbol or word was attached.
	Marked bool
}

var (
	numericAmountRe = regexp.MustCompile(`(?i)(-\s*|\bminus\s+)?(₹|\brs\.?|\binr)?\s*(-\s*|\bminus\s+)?(\d{1,3}(?:,\d{2,3})+|\d+)(\.\d+)?\s*(k|thousand|lakhs?|lacs?|crores?|cr)?\b(\s*(?:rupees?|rs\b\.?|inr\b|bucks\b))?`)
	wordTokenRe     = regexp.MustCompile(`[A-Za-z]+`)
)

// Parse converts a single amount expression into a decimal. It accepts
// "₹50,000", "Rs. 1,50,000", "2.5k", "3 lakh", "fifty thousand rupees".
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmpty
	}
	for _, prefix := range []string{"-", "minus "} {
		if rest, ok := strings.CutPrefix(strings.ToLower(s), prefix); ok {
			v, err := Parse(s[len(s)-len(rest):])
			return v.Neg(), err
		}
	}

	matches := Find(s)
	if len(matches) != 1 {
		return decimal.Zero, ErrNotAnAmount
	}
	m := matches[0]
	// The amount must cover the whole input apart from punctuation.
	rest := strings.TrimSpace(s[:m.Start] + s[m.End:])
	rest = strings.Trim(rest, " .,!")
	if rest != "" {
		return decimal.Zero, ErrNotAnAmount
	}
	return m.Value, nil
}

// Find returns every amount mentioned in text, in order of appearance.
// Numbers followed by a non-money unit ("12 km", "3 trips") are skipped.
func Find(text string) []Match {
	var out []Match
	taken := make([]bool, len(text)+1)

	for _, loc := range numericAmountRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		negative := false
		switch {
		case loc[2] >= 0 && signAt(text, loc[2]):
			negative = true
		case loc[2] >= 0:
			// "200-300" or "5-star": the dash joins words, it is no sign.
			start = loc[3]
		}
		if loc[6] >= 0 {
			if loc[4] >= 0 {
				negative = signAfterMarker(text, loc[4], loc[5], loc[6])
			} else {
				negative = signAt(text, loc[6])
			}
		}
		for start < end && unicode.IsSpace(rune(text[start])) {
			start++
		}
		digits := text[loc[8]:loc[9]]
		// A digit run glued to letters ("v2", "a4") is not an amount.
		if loc[4] < 0 && loc[6] < 0 && loc[8] > 0 && isLetter(text[loc[8]-1]) {
			continue
		}
		frac := ""
		if loc[10] >= 0 {
			frac = text[loc[10]:loc[11]]
		}
		marked := loc[4] >= 0 || loc[14] >= 0
		scale := ""
		if loc[12] >= 0 {
			scale = strings.ToLower(text[loc[12]:loc[13]])
		}
		if !marked && scale == "" && followedByUnit(text[end:]) {
			continue
		}

		v, err := decimal.NewFromString(strings.ReplaceAll(digits, ",", "") + frac)
		if err != nil {
			continue
		}
		if scale != "" {
			v = v.Mul(decimal.NewFromInt(scaleWords[scale]))
		}
		if negative {
			v = v.Neg()
		}
		trimmedEnd := end
		for trimmedEnd > start && unicode.IsSpace(rune(text[trimmedEnd-1])) {
			trimmedEnd--
		}
		out = append(out, Match{Value: v, Raw: text[start:trimmedEnd], Start: start, End: trimmedEnd, Marked: marked})
		for i := start; i < trimmedEnd; i++ {
			taken[i] = true
		}
	}

	out = append(out, findWordAmounts(text, taken)...)
	sortMatches(out)
	return out
}

func findWordAmounts(text string, taken []bool) []Match {
	var out []Match
	toks := wordTokenRe.FindAllStringIndex(text, -1)

	for i := 0; i < len(toks); {
		if taken[toks[i][0]] || !isNumberWord(lowerTok(text, toks[i])) || lowerTok(text, toks[i]) == "k" || lowerTok(text, toks[i]) == "cr" {
			i++
			continue
		}
		j := i
		words := []string{}
		for j < len(toks) && !taken[toks[j][0]] {
			w := lowerTok(text, toks[j])
			if isNumberWord(w) || (w == "and" && j+1 < len(toks) && isNumberWord(lowerTok(text, toks[j+1]))) {
				words = append(words, w)
				j++
				continue
			}
			break
		}
		start, end := toks[i][0], toks[j-1][1]
		value, ok := wordsToValue(words)
		if !ok {
			i = j
			continue
		}
		marked := false
		if j < len(toks) && currencyWords[lowerTok(text, toks[j])] {
			end = toks[j][1]
			marked = true
			j++
		}
		if !marked && followedByUnit(text[end:]) {
			i = j
			continue
		}
		// Lone small words ("one", "a") are too ambiguous without a currency word.
		if !marked && len(words) == 1 && scaleWords[words[0]] == 0 && value.LessThan(decimal.NewFromInt(20)) {
			i = j
			continue
		}
		out = append(out, Match{Value: value, Raw: text[start:end], Start: start, End: end, Marked: marked})
		i = j
	}
	return out
}

func wordsToValue(words []string) (decimal.Decimal, bool) {
	var total, current int64
	seen := false
	for _, w := range words {
		switch {
		case w == "and":
			continue
		case w == "hundred":
			if current == 0 {
				current = 1
			}
			current *= 100
			seen = true
		case scaleWords[w] > 0:
			if current == 0 {
				current = 1
			}
			total += current * scaleWords[w]
			current = 0
			seen = true
		default:
			v, ok := unitWords[w]
			if !ok {
				return decimal.Zero, false
			}
			current += v
			seen = true
		}
	}
	if !seen {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(total + current), true
}

func isNumberWord(w string) bool {
	if _, ok := unitWords[w]; ok {
		return true
	}
	if w == "hundred" {
		return true
	}
	_, ok := scaleWords[w]
	return ok
}

func followedByUnit(rest string) bool {
	rest = strings.TrimLeft(rest, " ")
	if strings.HasPrefix(rest, "%") {
		return true
	}
	loc := wordTokenRe.FindStringIndex(rest)
	if loc == nil || loc[0] != 0 {
		return false
	}
	return nonMoneyUnits[strings.ToLower(rest[loc[0]:loc[1]])]
}

func lowerTok(text string, loc []int) string {
	return strings.ToLower(text[loc[0]:loc[1]])
}

// signAt reports whether the minus at i is a sign rather than a dash
// joining or separating words ("200-300", "HSR - 300").
func signAt(text string, i int) bool {
	if text[i] == '-' && i+1 < len(text) && text[i+1] == ' ' {
		return false
	}
	if i == 0 {
		return true
	}
	prev := text[i-1]
	return !isLetter(prev) && !(prev >= '0' && prev <= '9') && prev != '-'
}

// signAfterMarker accepts "₹-200" and "Rs -200" but reads "Rs-200" as a
// separator.
func signAfterMarker(text string, markStart, markEnd, sign int) bool {
	if strings.HasPrefix(text[markStart:markEnd], SymbolRupee) {
		return true
	}
	return sign > markEnd || strings.HasPrefix(strings.ToLower(text[sign:]), "minus")
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func sortMatches(ms []Match) {
	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && ms[j].Start < ms[j-1].Start; j-- {
			ms[j], ms[j-1] = ms[j-1], ms[j]
		}
	}
}
