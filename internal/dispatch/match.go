package dispatch

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"gig-copilot/internal/model"
	"gig-copilot/internal/repository"
)

// goalNoise are words drivers wrap goal names in ("my phone goal").
var goalNoise = map[string]bool{
	"my": true, "the": true, "a": true, "goal": true, "fund": true, "savings": true, "saving": true, "for": true,
}

// minFuzzyTokenLen keeps short words out of per-token similarity.
const minFuzzyTokenLen = 4

func goalKey(name string) string {
	var kept []string
	for _, t := range strings.Fields(repository.NormaliseName(name)) {
		if !goalNoise[t] {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return repository.NormaliseName(name)
	}
	return strings.Join(kept, " ")
}

// matchGoals resolves a spoken goal name. An exact match after
// normalisation wins outright; otherwise every goal that contains the
// words, or is within the similarity threshold, is a candidate.
func matchGoals(name string, goals []model.Goal, threshold float64) (*model.Goal, []model.Goal) {
	key := goalKey(name)
	if key == "" {
		return nil, nil
	}
	for i := range goals {
		if goalKey(goals[i].Name) == key {
			return &goals[i], nil
		}
	}

	dmp := diffmatchpatch.New()
	var candidates []model.Goal
	for _, g := range goals {
		gk := goalKey(g.Name)
		if containsTokens(gk, key) || containsTokens(key, gk) ||
			similarity(dmp, key, gk) >= threshold || tokenSimilar(dmp, key, gk, threshold) {
			candidates = append(candidates, g)
		}
	}
	return nil, candidates
}

// containsTokens reports whether every word of sub appears in s.
func containsTokens(s, sub string) bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		words[w] = true
	}
	subWords := strings.Fields(sub)
	if len(subWords) == 0 {
		return false
	}
	for _, w := range subWords {
		if !words[w] {
			return false
		}
	}
	return true
}

func tokenSimilar(dmp *diffmatchpatch.DiffMatchPatch, a, b string, threshold float64) bool {
	for _, ta := range strings.Fields(a) {
		if utf8.RuneCountInString(ta) < minFuzzyTokenLen {
			continue
		}
		for _, tb := range strings.Fields(b) {
			if utf8.RuneCountInString(tb) >= minFuzzyTokenLen && similarity(dmp, ta, tb) >= threshold {
				return true
			}
		}
	}
	return false
}

// similarity is 1 - edit distance / longer length.
func similarity(dmp *diffmatchpatch.DiffMatchPatch, a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	dist := dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
	return 1 - float64(dist)/float64(longest)
}

func goalNames(goals []model.Goal) []string {
	names := make([]string, 0, len(goals))
	for _, g := range goals {
		names = append(names, g.Name)
	}
	return names
}
