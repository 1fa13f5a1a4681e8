package bgg

import (
	"fmt"
	"strings"
	"time"

	"github.com/meeplelab/go-bgg/internal/xmlcodec"
)

// ItemType identifies a kind of catalog item.
type ItemType string

// Item types accepted by the things and search endpoints.
const (
	ItemTypeBoardGame          ItemType = "boardgame"
	ItemTypeBoardGameExpansion ItemType = "boardgameexpansion"
	ItemTypeBoardGameAccessory ItemType = "boardgameaccessory"
)

// CollectionSubtype narrows a collection request to one kind of item.
type CollectionSubtype string

// Collection subtypes.
const (
	SubtypeBoardGame          CollectionSubtype = "boardgame"
	SubtypeBoardGameExpansion CollectionSubtype = "boardgameexpansion"
	SubtypeBoardGameAccessory CollectionSubtype = "boardgameaccessory"
)

// RankValue is a position within a ranking, or explicitly unranked. The
// wire encodes unranked as the string "Not Ranked".
type RankValue struct {
	// Position is the 1-based rank. Zero when Ranked is false.
	Position int
	// Ranked is false for items the service has not ranked.
	Ranked bool
}

func (r RankValue) String() string {
	if !r.Ranked {
		return "Not Ranked"
	}
	return fmt.Sprintf("%d", r.Position)
}

// WishlistPriority expresses how much a user wants a wishlisted game.
// Lower wire values are stronger wants.
type WishlistPriority int

// Wishlist priorities, strongest first.
const (
	PriorityMustHave WishlistPriority = iota + 1
	PriorityLoveToHave
	PriorityLikeToHave
	PriorityThinkingAboutIt
	PriorityDontBuyThis
)

func (p WishlistPriority) String() string {
	switch p {
	case PriorityMustHave:
		return "must have"
	case PriorityLoveToHave:
		return "love to have"
	case PriorityLikeToHave:
		return "like to have"
	case PriorityThinkingAboutIt:
		return "thinking about it"
	case PriorityDontBuyThis:
		return "don't buy this"
	}
	return fmt.Sprintf("WishlistPriority(%d)", int(p))
}

// parseWishlistPriority maps the wire values "1".."5". Anything else is
// an error; the service has been seen emitting inconsistent values and
// silently guessing would misfile a user's wants.
func parseWishlistPriority(s string) (WishlistPriority, error) {
	n, err := xmlcodec.Int(s)
	if err != nil || n < 1 || n > 5 {
		return 0, fmt.Errorf("wishlist priority must be 1 through 5, got %q", s)
	}
	return WishlistPriority(n), nil
}

// RelatedItem is a reference to another catalog item: an expansion, a
// family member, a designer and so on.
type RelatedItem struct {
	ID   int64
	Name string
}

// FamilyRank is a ranking of a game within one family of games, for
// example "strategygames".
type FamilyRank struct {
	ID           int64
	Name         string
	FriendlyName string
	Value        RankValue
	// BayesAverage is nil when the service reports no rating.
	BayesAverage *float64
}

// Pointer helpers for optional filter fields.

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Float64 returns a pointer to f.
func Float64(f float64) *float64 { return &f }

// Shared wire shapes. Scalars arrive value-wrapped as <tag value="..."/>,
// and repeated tags are decoded into slices so cardinality can be checked
// explicitly afterwards.

// valueAttr is the value-wrapped scalar intermediary.
type valueAttr struct {
	Value string `xml:"value,attr"`
}

// xmlName is a <name> tag discriminated by its type attribute.
type xmlName struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

// xmlLink is a <link> tag discriminated by its type attribute. Inbound
// marks relations that point at the enclosing item rather than away from
// it.
type xmlLink struct {
	Type    string `xml:"type,attr"`
	ID      int64  `xml:"id,attr"`
	Value   string `xml:"value,attr"`
	Inbound string `xml:"inbound,attr"`
}

func (l xmlLink) related() RelatedItem {
	return RelatedItem{ID: l.ID, Name: l.Value}
}

func (l xmlLink) inbound() bool {
	return l.Inbound == "true"
}

// xmlRanks is the <ranks> wrapper inside rating statistics.
type xmlRanks struct {
	Ranks []xmlRank `xml:"rank"`
}

// xmlRank is a <rank> tag discriminated by its type attribute into the
// one canonical subtype rank and any number of family ranks.
type xmlRank struct {
	Type         string `xml:"type,attr"`
	ID           int64  `xml:"id,attr"`
	Name         string `xml:"name,attr"`
	FriendlyName string `xml:"friendlyname,attr"`
	Value        string `xml:"value,attr"`
	BayesAverage string `xml:"bayesaverage,attr"`
}

const (
	rankKindSubtype = "subtype"
	rankKindFamily  = "family"
)

// splitRanks routes a rank list into the canonical rank and the family
// sub-ranks. Exactly one subtype rank must be present; family ranks keep
// their document order.
func splitRanks(entity string, ranks []xmlRank) (RankValue, *float64, []FamilyRank, error) {
	routed, err := xmlcodec.Route("rank", ranks,
		func(r xmlRank) string { return r.Type },
		rankKindSubtype, rankKindFamily)
	if err != nil {
		return RankValue{}, nil, nil, fieldErr(entity, "rank", err)
	}

	canonical, err := routed.One(rankKindSubtype)
	if err != nil {
		return RankValue{}, nil, nil, fieldErr(entity, "rank", err)
	}

	rank, err := parseRankValue(entity, canonical)
	if err != nil {
		return RankValue{}, nil, nil, err
	}
	bayes, err := xmlcodec.NullableRating(canonical.BayesAverage)
	if err != nil {
		return RankValue{}, nil, nil, fieldErr(entity, "rank bayesaverage", err)
	}

	var subRanks []FamilyRank
	for _, fr := range routed.All(rankKindFamily) {
		value, err := parseRankValue(entity, fr)
		if err != nil {
			return RankValue{}, nil, nil, err
		}
		frBayes, err := xmlcodec.NullableRating(fr.BayesAverage)
		if err != nil {
			return RankValue{}, nil, nil, fieldErr(entity, "rank bayesaverage", err)
		}
		subRanks = append(subRanks, FamilyRank{
			ID:           fr.ID,
			Name:         fr.Name,
			FriendlyName: fr.FriendlyName,
			Value:        value,
			BayesAverage: frBayes,
		})
	}

	return rank, bayes, subRanks, nil
}

func parseRankValue(entity string, r xmlRank) (RankValue, error) {
	position, ranked, err := xmlcodec.Rank(r.Value)
	if err != nil {
		return RankValue{}, fieldErr(entity, "rank "+r.Name, err)
	}
	return RankValue{Position: position, Ranked: ranked}, nil
}

const (
	nameKindPrimary   = "primary"
	nameKindAlternate = "alternate"
)

// splitNames routes a name list into the single primary name and the
// alternates, preserving alternate order.
func splitNames(entity string, names []xmlName) (string, []string, error) {
	routed, err := xmlcodec.Route("name", names,
		func(n xmlName) string { return n.Type },
		nameKindPrimary, nameKindAlternate)
	if err != nil {
		return "", nil, fieldErr(entity, "name", err)
	}

	primary, err := routed.One(nameKindPrimary)
	if err != nil {
		return "", nil, fieldErr(entity, "name", err)
	}

	var alternates []string
	for _, n := range routed.All(nameKindAlternate) {
		alternates = append(alternates, n.Value)
	}
	return primary.Value, alternates, nil
}

// oneValue enforces exactly one occurrence of a value-wrapped scalar and
// returns its raw text.
func oneValue(entity, field string, vs []valueAttr) (string, error) {
	v, err := xmlcodec.One(field, vs)
	if err != nil {
		return "", fieldErr(entity, field, err)
	}
	return v.Value, nil
}

// atMostOneValue returns the trimmed value of an optional value-wrapped
// scalar, or empty when absent.
func atMostOneValue(entity, field string, vs []valueAttr) (string, error) {
	v, err := xmlcodec.AtMostOne(field, vs)
	if err != nil {
		return "", fieldErr(entity, field, err)
	}
	if v == nil {
		return "", nil
	}
	return strings.TrimSpace(v.Value), nil
}

// oneText enforces exactly one occurrence of a chardata element and
// returns its trimmed text.
func oneText(entity, field string, vs []string) (string, error) {
	v, err := xmlcodec.One(field, vs)
	if err != nil {
		return "", fieldErr(entity, field, err)
	}
	return strings.TrimSpace(v), nil
}

// atMostOneText returns the trimmed text of an optional chardata element,
// or empty when absent.
func atMostOneText(entity, field string, vs []string) (string, error) {
	v, err := xmlcodec.AtMostOne(field, vs)
	if err != nil {
		return "", fieldErr(entity, field, err)
	}
	if v == nil {
		return "", nil
	}
	return strings.TrimSpace(*v), nil
}

// lastModified parses the zone-less last-modified stamp, defined as UTC.
func lastModified(entity, raw string) (time.Time, error) {
	t, err := xmlcodec.NaiveUTC(raw)
	if err != nil {
		return time.Time{}, fieldErr(entity, "lastmodified", err)
	}
	return t, nil
}
