package taxon

import "strings"

// ranks are ordered from the highest to the lowest.
var ranks = []string{
	"domain", "superkingdom", "kingdom", "subkingdom", "infrakingdom",
	"superphylum", "phylum", "subphylum", "infraphylum",
	"superclass", "class", "subclass", "infraclass",
	"superorder", "order", "suborder", "infraorder", "parvorder",
	"superfamily", "family", "subfamily",
	"supertribe", "tribe", "subtribe",
	"genus", "subgenus", "section", "subsection", "series",
	"species group", "species subgroup",
	"species", "subspecies", "variety", "subvariety", "form", "subform",
}

var rankSynonyms = map[string]string{
	"division":      "phylum",
	"subdivision":   "subphylum",
	"infradivision": "infraphylum",
	"forma":         "form",
	"f.":            "form",
	"var.":          "variety",
	"varietas":      "variety",
	"subsp.":        "subspecies",
	"ssp.":          "subspecies",
	"sp.":           "species",
	"gen.":          "genus",
	"fam.":          "family",
	"ord.":          "order",
	"realm":         "domain",
	"empire":        "domain",
}

var rankIndex = func() map[string]int {
	res := make(map[string]int, len(ranks))
	for i, v := range ranks {
		res[v] = i
	}
	return res
}()

// NormalizeRank converts a rank to lowercase form, resolving
// synonyms such as "Division" or "forma".
func NormalizeRank(rank string) string {
	rank = strings.ToLower(strings.TrimSpace(rank))
	if syn, ok := rankSynonyms[rank]; ok {
		return syn
	}
	return rank
}

// RankOrder returns the position of a rank in the hierarchy (smaller
// is higher) and false if the rank is unknown.
func RankOrder(rank string) (int, bool) {
	idx, ok := rankIndex[NormalizeRank(rank)]
	return idx, ok
}

// IsRank returns true if the rank is known.
func IsRank(rank string) bool {
	_, ok := RankOrder(rank)
	return ok
}

// IsBelow returns true if rank is strictly lower than other.
// Unknown ranks are never below anything.
func IsBelow(rank, other string) bool {
	i, ok1 := RankOrder(rank)
	j, ok2 := RankOrder(other)
	return ok1 && ok2 && i > j
}
