package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	algo.Init("default")
}

// Ranking runs serially; the slab is reused across calls.
var slab = util.MakeSlab(100*1024, 2048)

// score is the best fzf score of pattern against any of candidates.
// pattern must already be lower case.
func score(pattern []rune, candidates ...string) (int, bool) {
	best, matched := 0, false
	for _, c := range candidates {
		chars := util.ToChars([]byte(c))
		res, _ := algo.FuzzyMatchV2(false, false, true, &chars, pattern, false, slab)
		if res.Start < 0 {
			continue
		}
		if !matched || res.Score > best {
			best, matched = res.Score, true
		}
	}
	return best, matched
}

// PackagesByTask returns the packages whose tasks fuzzy-match task, highest
// score first. Ties keep catalog order. A blank task matches nothing.
func (x *Index) PackagesByTask(task string) ([]Package, error) {
	if !x.loaded {
		return nil, ErrNotLoaded
	}
	task = strings.ToLower(strings.TrimSpace(task))
	if task == "" {
		return nil, nil
	}
	pattern := []rune(task)

	type hit struct {
		pkg   Package
		score int
	}
	var hits []hit
	for _, p := range x.packages {
		s, ok := score(pattern, p.Tasks...)
		if !ok {
			continue
		}
		hits = append(hits, hit{pkg: p, score: s})
	}
	slices.SortStableFunc(hits, func(a, b hit) int { return cmp.Compare(b.score, a.score) })

	out := make([]Package, len(hits))
	for i, h := range hits {
		out[i] = h.pkg
	}
	return out, nil
}
