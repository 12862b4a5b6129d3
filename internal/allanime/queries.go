package allanime

import (
	"github.com/justchokingaround/aniseek/pkg/types"
)

// Query is a GraphQL document plus its variables
type Query struct {
	Name      string
	Document  string
	Variables map[string]any
}

const showFields = `
				_id
				name
				englishName
				nativeName
				thumbnail
				availableEpisodes
				__typename`

const showsDocument = `query($search: SearchInput, $limit: Int, $page: Int, $translationType: VaildTranslationTypeEnumType, $countryOrigin: VaildCountryOriginEnumType) {
		shows(search: $search, limit: $limit, page: $page, translationType: $translationType, countryOrigin: $countryOrigin) {
			edges {` + showFields + `
			}
		}
	}`

const popularDocument = `query($type: VaildPopularTypeEnumType!, $size: Int!, $page: Int, $dateRange: Int) {
		queryPopular(type: $type, size: $size, page: $page, dateRange: $dateRange) {
			total
			recommendations {
				anyCard {` + showFields + `
				}
			}
		}
	}`

const randomDocument = `query($format: String!) {
		queryRandomRecommendation(format: $format) {` + showFields + `
		}
	}`

const showDocument = `query($showId: String!) {
		show(_id: $showId) {` + showFields + `
			description
			status
			genres
		}
	}`

// QueryBuilder builds query descriptors keyed by search kind
type QueryBuilder struct {
	PageSize int
	Dub      bool
}

func (b QueryBuilder) limit() int {
	if b.PageSize <= 0 {
		return 20
	}
	return b.PageSize
}

func (b QueryBuilder) translation() string {
	if b.Dub {
		return "dub"
	}
	return "sub"
}

func (b QueryBuilder) shows(name string, search map[string]any, page int) Query {
	search["allowAdult"] = false
	search["allowUnknown"] = false
	return Query{
		Name:     name,
		Document: showsDocument,
		Variables: map[string]any{
			"search":          search,
			"limit":           b.limit(),
			"page":            page,
			"translationType": b.translation(),
			"countryOrigin":   "ALL",
		},
	}
}

// Search is the free-text query for term at page
func (b QueryBuilder) Search(term string, page int) Query {
	return b.shows("search", map[string]any{"query": term}, page)
}

// New lists recently updated titles
func (b QueryBuilder) New(page int) Query {
	return b.shows("new", map[string]any{"sortBy": "Recent"}, page)
}

// Popular lists the most watched titles of the last week
func (b QueryBuilder) Popular(page int) Query {
	return Query{
		Name:     "popular",
		Document: popularDocument,
		Variables: map[string]any{
			"type":      "anime",
			"size":      b.limit(),
			"page":      page,
			"dateRange": 7,
		},
	}
}

// Random asks for a random recommendation. page is accepted for symmetry and ignored.
func (b QueryBuilder) Random(page int) Query {
	return Query{
		Name:      "random",
		Document:  randomDocument,
		Variables: map[string]any{"format": "anime"},
	}
}

// Show fetches a single title
func (b QueryBuilder) Show(id string) Query {
	return Query{
		Name:      "show",
		Document:  showDocument,
		Variables: map[string]any{"showId": id},
	}
}

// ForKind selects the query variant for a search type. term is only used by text search.
func (b QueryBuilder) ForKind(kind types.SearchType, term string, page int) Query {
	switch kind {
	case types.SearchNew:
		return b.New(page)
	case types.SearchPopular:
		return b.Popular(page)
	case types.SearchRandom:
		return b.Random(page)
	default:
		return b.Search(term, page)
	}
}
