package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meeplelab/go-bgg/internal/api"
	"github.com/meeplelab/go-bgg/internal/xmlcodec"
)

// CollectionService provides access to user collections. Collections are
// built asynchronously on the service side, so requests may be answered
// with 202 Accepted and retried under the client's retry policy.
//
//go:generate mockery --name=CollectionService --output=mocks --outpkg=mocks --filename=collection_service.go
type CollectionService interface {
	// Get retrieves a user's collection, filtered by opts.
	Get(ctx context.Context, username string, opts *CollectionOptions) (*Collection, error)

	// Owned retrieves the games a user currently owns.
	Owned(ctx context.Context, username string) (*Collection, error)

	// Wishlist retrieves the games on a user's wishlist.
	Wishlist(ctx context.Context, username string) (*Collection, error)
}

// CollectionOptions filters a collection request. Nil pointer fields are
// omitted, which means "do not filter on this"; most flags filter items
// in when true and out when false.
type CollectionOptions struct {
	// Subtype restricts the collection to one item kind.
	Subtype CollectionSubtype
	// ExcludeSubtype removes one item kind. Excluding expansions is the
	// usual way to keep them from being listed under both headings.
	ExcludeSubtype CollectionSubtype

	// IDs restricts the response to these item IDs.
	IDs []int64

	Owned           *bool
	PreviouslyOwned *bool
	ForTrade        *bool
	Want            *bool
	WantToPlay      *bool
	WantToBuy       *bool
	Preordered      *bool
	Wishlist        *bool
	// WishlistPriority filters wishlisted items by priority. Zero means
	// no filter.
	WishlistPriority WishlistPriority

	Played    *bool
	Rated     *bool
	Commented *bool
	HasParts  *bool
	WantParts *bool

	MinRating    *float64
	MaxRating    *float64
	MinBGGRating *float64
	MaxBGGRating *float64
	MinPlays     *int
	MaxPlays     *int

	// ModifiedSince restricts the response to items touched since this
	// instant.
	ModifiedSince time.Time

	// OmitStats drops the per-item statistics block. Stats are requested
	// by default because the service has been known to omit them
	// unpredictably otherwise.
	OmitStats bool

	// Version includes the edition each item was recorded as.
	Version bool

	// ShowPrivate includes private collection info. Only honoured when
	// requesting your own collection while logged in.
	ShowPrivate *bool

	// CollectionID restricts the response to one collection record.
	CollectionID *int64
}

func (o *CollectionOptions) values(username string) url.Values {
	q := url.Values{}
	q.Set("username", username)

	if o == nil || !o.OmitStats {
		q.Set("stats", "1")
	}
	if o == nil {
		return q
	}

	if o.Subtype != "" {
		q.Set("subtype", string(o.Subtype))
	}
	if o.ExcludeSubtype != "" {
		q.Set("excludesubtype", string(o.ExcludeSubtype))
	}
	if len(o.IDs) > 0 {
		ids := make([]string, 0, len(o.IDs))
		for _, id := range o.IDs {
			ids = append(ids, strconv.FormatInt(id, 10))
		}
		q.Set("id", strings.Join(ids, ","))
	}

	setFlag(q, "own", o.Owned)
	setFlag(q, "prevowned", o.PreviouslyOwned)
	setFlag(q, "trade", o.ForTrade)
	setFlag(q, "want", o.Want)
	setFlag(q, "wanttoplay", o.WantToPlay)
	setFlag(q, "wanttobuy", o.WantToBuy)
	setFlag(q, "preordered", o.Preordered)
	setFlag(q, "wishlist", o.Wishlist)
	setFlag(q, "played", o.Played)
	setFlag(q, "rated", o.Rated)
	setFlag(q, "comment", o.Commented)
	setFlag(q, "hasparts", o.HasParts)
	setFlag(q, "wantparts", o.WantParts)
	setFlag(q, "showprivate", o.ShowPrivate)

	if o.WishlistPriority != 0 {
		q.Set("wishlistpriority", strconv.Itoa(int(o.WishlistPriority)))
	}
	if o.MinRating != nil {
		q.Set("minrating", formatRating(*o.MinRating))
	}
	if o.MaxRating != nil {
		q.Set("rating", formatRating(*o.MaxRating))
	}
	if o.MinBGGRating != nil {
		q.Set("minbggrating", formatRating(*o.MinBGGRating))
	}
	if o.MaxBGGRating != nil {
		q.Set("bggrating", formatRating(*o.MaxBGGRating))
	}
	if o.MinPlays != nil {
		q.Set("minplays", strconv.Itoa(*o.MinPlays))
	}
	if o.MaxPlays != nil {
		q.Set("maxplays", strconv.Itoa(*o.MaxPlays))
	}
	if !o.ModifiedSince.IsZero() {
		q.Set("modifiedsince", o.ModifiedSince.UTC().Format("2006-01-02 15:04:05"))
	}
	if o.Version {
		q.Set("version", "1")
	}
	if o.CollectionID != nil {
		q.Set("collid", strconv.FormatInt(*o.CollectionID, 10))
	}

	return q
}

func setFlag(q url.Values, key string, v *bool) {
	if v == nil {
		return
	}
	if *v {
		q.Set(key, "1")
	} else {
		q.Set(key, "0")
	}
}

func formatRating(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Collection is one user's collection, after filtering.
type Collection struct {
	TotalItems int
	// PublishDate is when the service generated this snapshot.
	PublishDate time.Time
	Items       []CollectionItem
}

// CollectionItem is a single item in a user's collection.
type CollectionItem struct {
	// ID is the catalog item ID, shared across users.
	ID int64
	// CollectionID identifies this user's record of the item.
	CollectionID int64
	Subtype      CollectionSubtype
	Name         string
	// YearPublished is zero when the service omits it.
	YearPublished int
	Image         string
	Thumbnail     string
	NumPlays      int
	Status        CollectionItemStatus

	// Stats is nil when statistics were omitted.
	Stats *CollectionItemStats

	// VersionIncluded reports whether the response carried a version
	// block for this item. The block may be present yet empty when the
	// user never recorded an edition.
	VersionIncluded bool
	// Version is the recorded edition, nil when none was recorded or
	// version info was not requested.
	Version *GameVersion
}

// CollectionItemStatus captures how the item relates to the user's
// collection.
type CollectionItemStatus struct {
	Own             bool
	PreviouslyOwned bool
	ForTrade        bool
	Want            bool
	WantToPlay      bool
	WantToBuy       bool
	Preordered      bool
	Wishlist        bool
	// WishlistPriority is set only when Wishlist is true.
	WishlistPriority WishlistPriority
	// LastModified is when the record last changed, in UTC.
	LastModified time.Time
}

// CollectionItemStats is the statistics block of a collection item.
type CollectionItemStats struct {
	MinPlayers  int
	MaxPlayers  int
	MinPlayTime time.Duration
	MaxPlayTime time.Duration
	PlayingTime time.Duration
	OwnedBy     int

	// Rating is the collection owner's rating, nil when unrated.
	Rating     *float64
	UsersRated int
	Average    float64
	// BayesAverage is nil when the service reports no rating.
	BayesAverage *float64

	Rank           RankValue
	SubFamilyRanks []FamilyRank
}

// Wire shapes for the collection endpoint.

type xmlCollectionItems struct {
	XMLName    xml.Name            `xml:"items"`
	TotalItems int                 `xml:"totalitems,attr"`
	PubDate    string              `xml:"pubdate,attr"`
	Items      []xmlCollectionItem `xml:"item"`
}

type xmlCollectionItem struct {
	ObjectID      int64                  `xml:"objectid,attr"`
	CollID        int64                  `xml:"collid,attr"`
	Subtype       string                 `xml:"subtype,attr"`
	Names         []string               `xml:"name"`
	YearPublished []string               `xml:"yearpublished"`
	Image         []string               `xml:"image"`
	Thumbnail     []string               `xml:"thumbnail"`
	NumPlays      []string               `xml:"numplays"`
	Status        []xmlCollectionStatus  `xml:"status"`
	Stats         []xmlCollectionStats   `xml:"stats"`
	Version       []xmlCollectionVersion `xml:"version"`
}

type xmlCollectionStatus struct {
	Own              string `xml:"own,attr"`
	PrevOwned        string `xml:"prevowned,attr"`
	ForTrade         string `xml:"fortrade,attr"`
	Want             string `xml:"want,attr"`
	WantToPlay       string `xml:"wanttoplay,attr"`
	WantToBuy        string `xml:"wanttobuy,attr"`
	Preordered       string `xml:"preordered,attr"`
	Wishlist         string `xml:"wishlist,attr"`
	WishlistPriority string `xml:"wishlistpriority,attr"`
	LastModified     string `xml:"lastmodified,attr"`
}

type xmlCollectionStats struct {
	MinPlayers  string           `xml:"minplayers,attr"`
	MaxPlayers  string           `xml:"maxplayers,attr"`
	MinPlayTime string           `xml:"minplaytime,attr"`
	MaxPlayTime string           `xml:"maxplaytime,attr"`
	PlayingTime string           `xml:"playingtime,attr"`
	NumOwned    string           `xml:"numowned,attr"`
	Rating      []xmlOwnerRating `xml:"rating"`
}

type xmlOwnerRating struct {
	Value        string      `xml:"value,attr"`
	UsersRated   []valueAttr `xml:"usersrated"`
	Average      []valueAttr `xml:"average"`
	BayesAverage []valueAttr `xml:"bayesaverage"`
	Ranks        []xmlRanks  `xml:"ranks"`
}

type xmlCollectionVersion struct {
	Items []xmlVersionItem `xml:"item"`
}

// Reconstruction.

func collectionFromWire(x xmlCollectionItems) (*Collection, error) {
	c := &Collection{TotalItems: x.TotalItems}

	if x.PubDate != "" {
		t, err := xmlcodec.Long(x.PubDate)
		if err != nil {
			return nil, fieldErr("collection", "pubdate", err)
		}
		c.PublishDate = t
	}

	for _, item := range x.Items {
		ci, err := collectionItemFromWire(item)
		if err != nil {
			return nil, err
		}
		c.Items = append(c.Items, *ci)
	}
	return c, nil
}

func collectionItemFromWire(x xmlCollectionItem) (*CollectionItem, error) {
	entity := fmt.Sprintf("collection item %d", x.ObjectID)

	item := &CollectionItem{
		ID:           x.ObjectID,
		CollectionID: x.CollID,
		Subtype:      CollectionSubtype(x.Subtype),
	}

	var err error
	if item.Name, err = oneText(entity, "name", x.Names); err != nil {
		return nil, err
	}
	if item.Image, err = atMostOneText(entity, "image", x.Image); err != nil {
		return nil, err
	}
	if item.Thumbnail, err = atMostOneText(entity, "thumbnail", x.Thumbnail); err != nil {
		return nil, err
	}

	year, err := atMostOneText(entity, "yearpublished", x.YearPublished)
	if err != nil {
		return nil, err
	}
	if year != "" {
		if item.YearPublished, err = xmlcodec.Int(year); err != nil {
			return nil, fieldErr(entity, "yearpublished", err)
		}
	}

	plays, err := atMostOneText(entity, "numplays", x.NumPlays)
	if err != nil {
		return nil, err
	}
	if plays != "" {
		if item.NumPlays, err = xmlcodec.Int(plays); err != nil {
			return nil, fieldErr(entity, "numplays", err)
		}
	}

	status, err := xmlcodec.One("status", x.Status)
	if err != nil {
		return nil, fieldErr(entity, "status", err)
	}
	if item.Status, err = statusFromWire(entity, status); err != nil {
		return nil, err
	}

	stats, err := xmlcodec.AtMostOne("stats", x.Stats)
	if err != nil {
		return nil, fieldErr(entity, "stats", err)
	}
	if stats != nil {
		if item.Stats, err = collectionStatsFromWire(entity, *stats); err != nil {
			return nil, err
		}
	}

	version, err := xmlcodec.AtMostOne("version", x.Version)
	if err != nil {
		return nil, fieldErr(entity, "version", err)
	}
	if version != nil {
		item.VersionIncluded = true
		edition, err := xmlcodec.AtMostOne("version item", version.Items)
		if err != nil {
			return nil, fieldErr(entity, "version", err)
		}
		if edition != nil {
			if item.Version, err = versionFromWire(*edition); err != nil {
				return nil, err
			}
		}
	}

	return item, nil
}

func statusFromWire(entity string, x xmlCollectionStatus) (CollectionItemStatus, error) {
	s := CollectionItemStatus{}

	flags := []struct {
		name string
		raw  string
		dst  *bool
	}{
		{"own", x.Own, &s.Own},
		{"prevowned", x.PrevOwned, &s.PreviouslyOwned},
		{"fortrade", x.ForTrade, &s.ForTrade},
		{"want", x.Want, &s.Want},
		{"wanttoplay", x.WantToPlay, &s.WantToPlay},
		{"wanttobuy", x.WantToBuy, &s.WantToBuy},
		{"preordered", x.Preordered, &s.Preordered},
		{"wishlist", x.Wishlist, &s.Wishlist},
	}
	for _, f := range flags {
		v, err := xmlcodec.Bool10(f.raw)
		if err != nil {
			return s, fieldErr(entity, "status "+f.name, err)
		}
		*f.dst = v
	}

	if s.Wishlist {
		priority, err := parseWishlistPriority(x.WishlistPriority)
		if err != nil {
			return s, fieldErr(entity, "status wishlistpriority", err)
		}
		s.WishlistPriority = priority
	}

	t, err := lastModified(entity, x.LastModified)
	if err != nil {
		return s, err
	}
	s.LastModified = t

	return s, nil
}

func collectionStatsFromWire(entity string, x xmlCollectionStats) (*CollectionItemStats, error) {
	s := &CollectionItemStats{}

	var err error
	if s.MinPlayers, err = attrInt(entity, "minplayers", x.MinPlayers); err != nil {
		return nil, err
	}
	if s.MaxPlayers, err = attrInt(entity, "maxplayers", x.MaxPlayers); err != nil {
		return nil, err
	}
	if s.OwnedBy, err = attrInt(entity, "numowned", x.NumOwned); err != nil {
		return nil, err
	}
	if s.MinPlayTime, err = attrMinutes(entity, "minplaytime", x.MinPlayTime); err != nil {
		return nil, err
	}
	if s.MaxPlayTime, err = attrMinutes(entity, "maxplaytime", x.MaxPlayTime); err != nil {
		return nil, err
	}
	if s.PlayingTime, err = attrMinutes(entity, "playingtime", x.PlayingTime); err != nil {
		return nil, err
	}

	rating, err := xmlcodec.One("rating", x.Rating)
	if err != nil {
		return nil, fieldErr(entity, "rating", err)
	}

	if s.Rating, err = xmlcodec.NullableRating(rating.Value); err != nil {
		return nil, fieldErr(entity, "rating", err)
	}
	if s.UsersRated, err = oneInt(entity, "usersrated", rating.UsersRated); err != nil {
		return nil, err
	}
	if s.Average, err = oneFloat(entity, "average", rating.Average); err != nil {
		return nil, err
	}

	rawBayes, err := oneValue(entity, "bayesaverage", rating.BayesAverage)
	if err != nil {
		return nil, err
	}
	if s.BayesAverage, err = xmlcodec.NullableRating(rawBayes); err != nil {
		return nil, fieldErr(entity, "bayesaverage", err)
	}

	ranks, err := xmlcodec.One("ranks", rating.Ranks)
	if err != nil {
		return nil, fieldErr(entity, "ranks", err)
	}
	if s.Rank, _, s.SubFamilyRanks, err = splitRanks(entity, ranks.Ranks); err != nil {
		return nil, err
	}

	return s, nil
}

// attrInt parses an optional numeric attribute; absent means zero.
func attrInt(entity, field, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := xmlcodec.Int(raw)
	if err != nil {
		return 0, fieldErr(entity, field, err)
	}
	return n, nil
}

// attrMinutes parses an optional minute-count attribute; absent means
// zero.
func attrMinutes(entity, field, raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := xmlcodec.Minutes(raw)
	if err != nil {
		return 0, fieldErr(entity, field, err)
	}
	return d, nil
}

// collectionService implements CollectionService.
type collectionService struct {
	transport *api.Transport
}

func newCollectionService(transport *api.Transport) *collectionService {
	return &collectionService{transport: transport}
}

// Get retrieves a user's collection.
func (s *collectionService) Get(ctx context.Context, username string, opts *CollectionOptions) (*Collection, error) {
	if username == "" {
		return nil, ErrNoUsername
	}

	body, err := doGet(ctx, s.transport, "collection", opts.values(username))
	if err != nil {
		return nil, err
	}

	wire, err := decodeEntity[xmlCollectionItems](body)
	if err != nil {
		return nil, err
	}

	return collectionFromWire(*wire)
}

// Owned retrieves the games a user currently owns.
func (s *collectionService) Owned(ctx context.Context, username string) (*Collection, error) {
	return s.Get(ctx, username, &CollectionOptions{
		Owned:          Bool(true),
		ExcludeSubtype: SubtypeBoardGameExpansion,
	})
}

// Wishlist retrieves the games on a user's wishlist.
func (s *collectionService) Wishlist(ctx context.Context, username string) (*Collection, error) {
	return s.Get(ctx, username, &CollectionOptions{
		Wishlist: Bool(true),
	})
}
