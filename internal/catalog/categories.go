// Package catalog maps user-facing filter labels to backend category ids.
//
// Two parallel tables exist per apparel kind: the standard browse tree and
// the "what's new" tree. The backend assigns unrelated ids to the same label
// in each tree, so the isNew toggle selects the whole table, not an offset.
package catalog

import (
	"sort"

	"styleswipe/internal/model"
)

var standardTables = map[model.ApparelKind]map[string]int{
	model.ApparelTops: {
		"Tops":             13198,
		"Sweaters & Knits": 13235,
	},
	model.ApparelBottoms: {
		"Jeans":  13377,
		"Skirt":  13302,
		"Pants":  13281,
		"Shorts": 13297,
	},
	model.ApparelFootwear: {
		"Boots":               13460,
		"Clogs":               13461,
		"Espadrilles":         13462,
		"Flats":               13463,
		"Pumps":               13464,
		"Rain & Winter Boots": 13465,
		"Sandals":             13466,
		"Sneakers & Athletic": 13467,
		"Designer Boutique":   13468,
		"Edged Up Shoes":      13469,
		"Kitten Heels":        13470,
		"Ballet Flats":        13471,
	},
}

var whatsNewTables = map[model.ApparelKind]map[string]int{
	model.ApparelTops: {
		"Tops":             21147,
		"Sweaters & Knits": 21149,
	},
	model.ApparelBottoms: {
		"Jeans":  21153,
		"Skirt":  21155,
		"Pants":  21157,
		"Shorts": 21159,
	},
	model.ApparelFootwear: {
		"Boots":               21260,
		"Clogs":               21261,
		"Espadrilles":         21262,
		"Flats":               21263,
		"Pumps":               21264,
		"Rain & Winter Boots": 21265,
		"Sandals":             21266,
		"Sneakers & Athletic": 21267,
		"Designer Boutique":   21268,
		"Edged Up Shoes":      21269,
		"Kitten Heels":        21270,
		"Ballet Flats":        21271,
	},
}

func activeTable(kind model.ApparelKind, isNew bool) map[string]int {
	if isNew {
		return whatsNewTables[kind]
	}
	return standardTables[kind]
}

// MapCategories resolves selected filter labels to backend category ids for
// one apparel kind. An empty selection means unfiltered browsing and returns
// every id in the active table. Labels without a mapping entry are silently
// dropped (the UI and the table have drifted before; the backend treats an
// unknown id as an error, a missing one as "browse wider").
//
// The result is sorted so identical selections produce identical request
// payloads, which the slot buffer relies on for staleness comparison.
func MapCategories(selected []string, kind model.ApparelKind, isNew bool) []int {
	table := activeTable(kind, isNew)

	var ids []int
	if len(selected) == 0 {
		ids = make([]int, 0, len(table))
		for _, id := range table {
			ids = append(ids, id)
		}
	} else {
		ids = make([]int, 0, len(selected))
		for _, label := range selected {
			if id, ok := table[label]; ok {
				ids = append(ids, id)
			}
		}
	}
	sort.Ints(ids)
	return ids
}

// Labels returns every label in the active table for a kind, sorted, for
// the filter UI to present.
func Labels(kind model.ApparelKind, isNew bool) []string {
	table := activeTable(kind, isNew)
	out := make([]string, 0, len(table))
	for label := range table {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
