package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/meeplelab/go-bgg/internal/api"
	"github.com/meeplelab/go-bgg/internal/xmlcodec"
)

// SearchService provides name search over the catalog.
//
//go:generate mockery --name=SearchService --output=mocks --outpkg=mocks --filename=search_service.go
type SearchService interface {
	// Search returns the items whose names match the query.
	Search(ctx context.Context, query string, opts *SearchOptions) ([]SearchResult, error)
}

// SearchOptions refines a search.
type SearchOptions struct {
	// Types filters results by item type.
	Types []ItemType
	// Exact requires the name to match the query exactly.
	Exact bool
}

// SearchResult is a single search hit. Results carry only a light
// reference; fetch the full item through ThingService.
type SearchResult struct {
	ID   int64
	Type ItemType
	// Name is the name that matched, which may be an alternate name
	// rather than the primary one.
	Name string
	// NameIsPrimary reports whether Name is the item's primary name.
	NameIsPrimary bool
	// YearPublished is zero when the service omits it.
	YearPublished int
}

type xmlSearchItems struct {
	XMLName xml.Name        `xml:"items"`
	Items   []xmlSearchItem `xml:"item"`
}

type xmlSearchItem struct {
	ID            int64       `xml:"id,attr"`
	Type          string      `xml:"type,attr"`
	Names         []xmlName   `xml:"name"`
	YearPublished []valueAttr `xml:"yearpublished"`
}

func searchResultFromWire(x xmlSearchItem) (*SearchResult, error) {
	entity := fmt.Sprintf("search result %d", x.ID)

	name, err := xmlcodec.One("name", x.Names)
	if err != nil {
		return nil, fieldErr(entity, "name", err)
	}
	if name.Type != nameKindPrimary && name.Type != nameKindAlternate {
		return nil, fieldErr(entity, "name", &xmlcodec.UnknownKindError{Tag: "name", Kind: name.Type})
	}

	r := &SearchResult{
		ID:            x.ID,
		Type:          ItemType(x.Type),
		Name:          name.Value,
		NameIsPrimary: name.Type == nameKindPrimary,
	}

	year, err := xmlcodec.AtMostOne("yearpublished", x.YearPublished)
	if err != nil {
		return nil, fieldErr(entity, "yearpublished", err)
	}
	if year != nil {
		if r.YearPublished, err = xmlcodec.Int(year.Value); err != nil {
			return nil, fieldErr(entity, "yearpublished", err)
		}
	}

	return r, nil
}

// searchService implements SearchService.
type searchService struct {
	transport *api.Transport
}

func newSearchService(transport *api.Transport) *searchService {
	return &searchService{transport: transport}
}

// Search returns the items whose names match the query.
func (s *searchService) Search(ctx context.Context, query string, opts *SearchOptions) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)

	if opts != nil {
		if len(opts.Types) > 0 {
			names := make([]string, 0, len(opts.Types))
			for _, t := range opts.Types {
				names = append(names, string(t))
			}
			q.Set("type", strings.Join(names, ","))
		}
		if opts.Exact {
			q.Set("exact", "1")
		}
	}

	body, err := doGet(ctx, s.transport, "search", q)
	if err != nil {
		return nil, err
	}

	wire, err := decodeEntity[xmlSearchItems](body)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(wire.Items))
	for _, item := range wire.Items {
		r, err := searchResultFromWire(item)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, nil
}
