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

const (
	defaultCommentPageSize = 100
	minCommentPageSize     = 10
	maxCommentPageSize     = 100
)

// ThingService provides access to catalog items: games, expansions and
// accessories.
//
//go:generate mockery --name=ThingService --output=mocks --outpkg=mocks --filename=thing_service.go
type ThingService interface {
	// Get retrieves a single item by ID.
	Get(ctx context.Context, id int64, opts *ThingOptions) (*Game, error)

	// GetMany retrieves several items in one request, in the order the
	// service returns them.
	GetMany(ctx context.Context, ids []int64, opts *ThingOptions) ([]*Game, error)
}

// ThingOptions controls which optional blocks a thing request includes.
// Rating statistics are always requested.
type ThingOptions struct {
	// Types filters by item type. Defaults to board games and expansions,
	// which keeps expansions from being misfiled under both headings.
	Types []ItemType

	// Versions includes alternate editions of each item.
	Versions bool
	// Videos includes community videos.
	Videos bool
	// Marketplace includes current marketplace listings.
	Marketplace bool

	// Comments includes a page of user comments. Mutually exclusive with
	// RatingComments.
	Comments bool
	// RatingComments includes a page of comments that carry ratings.
	RatingComments bool

	// Page selects the comment page, 1-based.
	Page int
	// PageSize sets comments per page, clamped to 10 through 100.
	PageSize int
}

func (o *ThingOptions) values() (url.Values, error) {
	q := url.Values{}
	// Statistics cost nothing extra and the stats block anchors rank
	// reconstruction, so they are always requested.
	q.Set("stats", "1")

	types := []ItemType{ItemTypeBoardGame, ItemTypeBoardGameExpansion}
	if o != nil && len(o.Types) > 0 {
		types = o.Types
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	q.Set("type", strings.Join(names, ","))

	if o == nil {
		return q, nil
	}

	if o.Comments && o.RatingComments {
		return nil, ErrConflictingComments
	}

	if o.Versions {
		q.Set("versions", "1")
	}
	if o.Videos {
		q.Set("videos", "1")
	}
	if o.Marketplace {
		q.Set("marketplace", "1")
	}
	if o.Comments {
		q.Set("comments", "1")
	}
	if o.RatingComments {
		q.Set("ratingcomments", "1")
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		size := min(max(o.PageSize, minCommentPageSize), maxCommentPageSize)
		q.Set("pagesize", strconv.Itoa(size))
	}
	return q, nil
}

// Game is a fully reconstructed catalog item.
type Game struct {
	ID             int64
	Type           ItemType
	Name           string
	AlternateNames []string
	Description    string
	Image          string
	Thumbnail      string
	YearPublished  int

	MinPlayers  int
	MaxPlayers  int
	PlayingTime time.Duration
	MinPlayTime time.Duration
	MaxPlayTime time.Duration
	MinAge      int

	SuggestedPlayerCount *SuggestedPlayerCountPoll
	SuggestedPlayerAge   *SuggestedPlayerAgePoll
	LanguageDependence   *LanguageDependencePoll

	Categories      []RelatedItem
	Mechanics       []RelatedItem
	Families        []RelatedItem
	Expansions      []RelatedItem
	ExpansionFor    []RelatedItem
	Accessories     []RelatedItem
	Compilations    []RelatedItem
	Implementations []RelatedItem
	Integrations    []RelatedItem
	Designers       []RelatedItem
	Artists         []RelatedItem
	Publishers      []RelatedItem

	Stats *GameStats

	// The blocks below are present only when requested.
	Versions    []GameVersion
	Videos      []Video
	Marketplace []MarketplaceListing
	Comments    *CommentPage
}

// GameStats is the community rating block of a game.
type GameStats struct {
	UsersRated int
	Average    float64
	// BayesAverage is nil when the service reports no rating.
	BayesAverage *float64
	StdDev       float64
	Median       float64

	// Rank is the canonical rank within the item's subtype.
	Rank RankValue
	// SubFamilyRanks are ranks within game families, in document order.
	SubFamilyRanks []FamilyRank

	UsersOwned    int
	UsersTrading  int
	UsersWanting  int
	UsersWishing  int
	NumComments   int
	NumWeights    int
	AverageWeight float64
}

// Dimensions is the physical size of an edition, in inches.
type Dimensions struct {
	Width  float64
	Length float64
	Depth  float64
}

// GameVersion is one edition of a game.
type GameVersion struct {
	ID             int64
	Name           string
	AlternateNames []string
	YearPublished  int
	Image          string
	Thumbnail      string

	// OriginalGame is the game this version is an edition of.
	OriginalGame RelatedItem
	Publishers   []RelatedItem
	Artists      []RelatedItem
	Languages    []string

	// Dimensions is nil when the service reports all zeroes.
	Dimensions *Dimensions
	// Weight is the shipping weight in pounds, nil when unreported.
	Weight      *float64
	ProductCode string
}

// User identifies the uploader of a video.
type User struct {
	ID       int64
	Username string
}

// Video is a community video attached to a game.
type Video struct {
	ID       int64
	Title    string
	Category string
	Language string
	Link     string
	Uploader User
	PostDate time.Time
}

// Price is an amount in a marketplace listing's currency.
type Price struct {
	Currency string
	Value    float64
}

// MarketplaceListing is a copy of a game offered for sale.
type MarketplaceListing struct {
	ListDate  time.Time
	Price     Price
	Condition string
	Notes     string
	Link      string
}

// Comment is a user comment on a game. Rating is nil when the user left
// no rating.
type Comment struct {
	Username string
	Rating   *float64
	Comment  string
}

// CommentPage is one page of comments with the overall total.
type CommentPage struct {
	TotalItems int
	Page       int
	Comments   []Comment
}

// Link types a catalog item may carry.
const (
	linkCategory       = "boardgamecategory"
	linkMechanic       = "boardgamemechanic"
	linkFamily         = "boardgamefamily"
	linkExpansion      = "boardgameexpansion"
	linkAccessory      = "boardgameaccessory"
	linkCompilation    = "boardgamecompilation"
	linkImplementation = "boardgameimplementation"
	linkIntegration    = "boardgameintegration"
	linkDesigner       = "boardgamedesigner"
	linkArtist         = "boardgameartist"
	linkPublisher      = "boardgamepublisher"
	linkVersion        = "boardgameversion"
	linkLanguage       = "language"
)

// Wire shapes for the things endpoint.

type xmlThingItems struct {
	XMLName xml.Name       `xml:"items"`
	Items   []xmlThingItem `xml:"item"`
}

type xmlThingItem struct {
	ID            int64       `xml:"id,attr"`
	Type          string      `xml:"type,attr"`
	Thumbnail     []string    `xml:"thumbnail"`
	Image         []string    `xml:"image"`
	Names         []xmlName   `xml:"name"`
	Description   []string    `xml:"description"`
	YearPublished []valueAttr `xml:"yearpublished"`
	MinPlayers    []valueAttr `xml:"minplayers"`
	MaxPlayers    []valueAttr `xml:"maxplayers"`
	PlayingTime   []valueAttr `xml:"playingtime"`
	MinPlayTime   []valueAttr `xml:"minplaytime"`
	MaxPlayTime   []valueAttr `xml:"maxplaytime"`
	MinAge        []valueAttr `xml:"minage"`
	Polls         []xmlPoll   `xml:"poll"`
	Links         []xmlLink   `xml:"link"`

	Statistics  []xmlStatistics      `xml:"statistics"`
	Versions    []xmlVersionList     `xml:"versions"`
	Videos      []xmlVideoList       `xml:"videos"`
	Marketplace []xmlMarketplaceList `xml:"marketplacelistings"`
	Comments    []xmlCommentList     `xml:"comments"`
}

type xmlStatistics struct {
	Ratings []xmlRatings `xml:"ratings"`
}

type xmlRatings struct {
	UsersRated    []valueAttr `xml:"usersrated"`
	Average       []valueAttr `xml:"average"`
	BayesAverage  []valueAttr `xml:"bayesaverage"`
	Ranks         []xmlRanks  `xml:"ranks"`
	StdDev        []valueAttr `xml:"stddev"`
	Median        []valueAttr `xml:"median"`
	Owned         []valueAttr `xml:"owned"`
	Trading       []valueAttr `xml:"trading"`
	Wanting       []valueAttr `xml:"wanting"`
	Wishing       []valueAttr `xml:"wishing"`
	NumComments   []valueAttr `xml:"numcomments"`
	NumWeights    []valueAttr `xml:"numweights"`
	AverageWeight []valueAttr `xml:"averageweight"`
}

type xmlVersionList struct {
	Items []xmlVersionItem `xml:"item"`
}

type xmlVersionItem struct {
	ID            int64       `xml:"id,attr"`
	Thumbnail     []string    `xml:"thumbnail"`
	Image         []string    `xml:"image"`
	Names         []xmlName   `xml:"name"`
	YearPublished []valueAttr `xml:"yearpublished"`
	ProductCode   []valueAttr `xml:"productcode"`
	Width         []valueAttr `xml:"width"`
	Length        []valueAttr `xml:"length"`
	Depth         []valueAttr `xml:"depth"`
	Weight        []valueAttr `xml:"weight"`
	Links         []xmlLink   `xml:"link"`
}

type xmlVideoList struct {
	Videos []xmlVideo `xml:"video"`
}

type xmlVideo struct {
	ID       int64  `xml:"id,attr"`
	Title    string `xml:"title,attr"`
	Category string `xml:"category,attr"`
	Language string `xml:"language,attr"`
	Link     string `xml:"link,attr"`
	Username string `xml:"username,attr"`
	UserID   int64  `xml:"userid,attr"`
	PostDate string `xml:"postdate,attr"`
}

type xmlMarketplaceList struct {
	Listings []xmlListing `xml:"listing"`
}

type xmlListing struct {
	ListDate  []valueAttr      `xml:"listdate"`
	Price     []xmlPrice       `xml:"price"`
	Condition []valueAttr      `xml:"condition"`
	Notes     []valueAttr      `xml:"notes"`
	Link      []xmlListingLink `xml:"link"`
}

type xmlPrice struct {
	Currency string `xml:"currency,attr"`
	Value    string `xml:"value,attr"`
}

type xmlListingLink struct {
	Href string `xml:"href,attr"`
}

type xmlCommentList struct {
	TotalItems int          `xml:"totalitems,attr"`
	Page       int          `xml:"page,attr"`
	Comments   []xmlComment `xml:"comment"`
}

type xmlComment struct {
	Username string `xml:"username,attr"`
	Rating   string `xml:"rating,attr"`
	Value    string `xml:"value,attr"`
}

// Reconstruction.

func gameFromWire(x xmlThingItem) (*Game, error) {
	entity := fmt.Sprintf("thing %d", x.ID)

	g := &Game{
		ID:   x.ID,
		Type: ItemType(x.Type),
	}

	var err error
	if g.Name, g.AlternateNames, err = splitNames(entity, x.Names); err != nil {
		return nil, err
	}
	if g.Description, err = oneText(entity, "description", x.Description); err != nil {
		return nil, err
	}
	if g.Image, err = atMostOneText(entity, "image", x.Image); err != nil {
		return nil, err
	}
	if g.Thumbnail, err = atMostOneText(entity, "thumbnail", x.Thumbnail); err != nil {
		return nil, err
	}

	if g.YearPublished, err = oneInt(entity, "yearpublished", x.YearPublished); err != nil {
		return nil, err
	}
	if g.MinPlayers, err = oneInt(entity, "minplayers", x.MinPlayers); err != nil {
		return nil, err
	}
	if g.MaxPlayers, err = oneInt(entity, "maxplayers", x.MaxPlayers); err != nil {
		return nil, err
	}
	if g.MinAge, err = oneInt(entity, "minage", x.MinAge); err != nil {
		return nil, err
	}
	if g.PlayingTime, err = oneMinutes(entity, "playingtime", x.PlayingTime); err != nil {
		return nil, err
	}
	if g.MinPlayTime, err = oneMinutes(entity, "minplaytime", x.MinPlayTime); err != nil {
		return nil, err
	}
	if g.MaxPlayTime, err = oneMinutes(entity, "maxplaytime", x.MaxPlayTime); err != nil {
		return nil, err
	}

	if err = g.routeLinks(entity, x.Links); err != nil {
		return nil, err
	}
	if err = g.routePolls(entity, x.Polls); err != nil {
		return nil, err
	}

	stats, err := xmlcodec.AtMostOne("statistics", x.Statistics)
	if err != nil {
		return nil, fieldErr(entity, "statistics", err)
	}
	if stats != nil {
		if g.Stats, err = statsFromWire(entity, *stats); err != nil {
			return nil, err
		}
	}

	versions, err := xmlcodec.AtMostOne("versions", x.Versions)
	if err != nil {
		return nil, fieldErr(entity, "versions", err)
	}
	if versions != nil {
		for _, item := range versions.Items {
			v, err := versionFromWire(item)
			if err != nil {
				return nil, err
			}
			g.Versions = append(g.Versions, *v)
		}
	}

	videos, err := xmlcodec.AtMostOne("videos", x.Videos)
	if err != nil {
		return nil, fieldErr(entity, "videos", err)
	}
	if videos != nil {
		for _, item := range videos.Videos {
			v, err := videoFromWire(entity, item)
			if err != nil {
				return nil, err
			}
			g.Videos = append(g.Videos, *v)
		}
	}

	marketplace, err := xmlcodec.AtMostOne("marketplacelistings", x.Marketplace)
	if err != nil {
		return nil, fieldErr(entity, "marketplacelistings", err)
	}
	if marketplace != nil {
		for _, item := range marketplace.Listings {
			l, err := listingFromWire(entity, item)
			if err != nil {
				return nil, err
			}
			g.Marketplace = append(g.Marketplace, *l)
		}
	}

	comments, err := xmlcodec.AtMostOne("comments", x.Comments)
	if err != nil {
		return nil, fieldErr(entity, "comments", err)
	}
	if comments != nil {
		if g.Comments, err = commentsFromWire(entity, *comments); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// routeLinks buckets the flat link list by its type attribute. Inbound
// expansion links mean "this item expands that game" and land in
// ExpansionFor.
func (g *Game) routeLinks(entity string, links []xmlLink) error {
	routed, err := xmlcodec.Route("link", links,
		func(l xmlLink) string { return l.Type },
		linkCategory, linkMechanic, linkFamily, linkExpansion, linkAccessory,
		linkCompilation, linkImplementation, linkIntegration,
		linkDesigner, linkArtist, linkPublisher)
	if err != nil {
		return fieldErr(entity, "link", err)
	}

	for _, l := range routed.All(linkExpansion) {
		if l.inbound() {
			g.ExpansionFor = append(g.ExpansionFor, l.related())
		} else {
			g.Expansions = append(g.Expansions, l.related())
		}
	}

	collect := func(kind string) []RelatedItem {
		var out []RelatedItem
		for _, l := range routed.All(kind) {
			out = append(out, l.related())
		}
		return out
	}
	g.Categories = collect(linkCategory)
	g.Mechanics = collect(linkMechanic)
	g.Families = collect(linkFamily)
	g.Accessories = collect(linkAccessory)
	g.Compilations = collect(linkCompilation)
	g.Implementations = collect(linkImplementation)
	g.Integrations = collect(linkIntegration)
	g.Designers = collect(linkDesigner)
	g.Artists = collect(linkArtist)
	g.Publishers = collect(linkPublisher)
	return nil
}

// routePolls buckets polls by name and specializes the three known ones.
func (g *Game) routePolls(entity string, polls []xmlPoll) error {
	routed, err := xmlcodec.Route("poll", polls,
		func(p xmlPoll) string { return p.Name },
		pollSuggestedPlayerCount, pollSuggestedPlayerAge, pollLanguageDependence)
	if err != nil {
		return fieldErr(entity, "poll", err)
	}

	if raw, err := routed.AtMostOne(pollSuggestedPlayerCount); err != nil {
		return fieldErr(entity, "poll", err)
	} else if raw != nil {
		p := raw.poll()
		if g.SuggestedPlayerCount, err = p.SuggestedPlayerCount(); err != nil {
			return err
		}
	}

	if raw, err := routed.AtMostOne(pollSuggestedPlayerAge); err != nil {
		return fieldErr(entity, "poll", err)
	} else if raw != nil {
		p := raw.poll()
		if g.SuggestedPlayerAge, err = p.SuggestedPlayerAge(); err != nil {
			return err
		}
	}

	if raw, err := routed.AtMostOne(pollLanguageDependence); err != nil {
		return fieldErr(entity, "poll", err)
	} else if raw != nil {
		p := raw.poll()
		if g.LanguageDependence, err = p.LanguageDependence(); err != nil {
			return err
		}
	}

	return nil
}

func statsFromWire(entity string, x xmlStatistics) (*GameStats, error) {
	ratings, err := xmlcodec.One("ratings", x.Ratings)
	if err != nil {
		return nil, fieldErr(entity, "ratings", err)
	}

	s := &GameStats{}
	if s.UsersRated, err = oneInt(entity, "usersrated", ratings.UsersRated); err != nil {
		return nil, err
	}
	if s.Average, err = oneFloat(entity, "average", ratings.Average); err != nil {
		return nil, err
	}
	if s.StdDev, err = oneFloat(entity, "stddev", ratings.StdDev); err != nil {
		return nil, err
	}
	if s.Median, err = oneFloat(entity, "median", ratings.Median); err != nil {
		return nil, err
	}
	if s.UsersOwned, err = oneInt(entity, "owned", ratings.Owned); err != nil {
		return nil, err
	}
	if s.UsersTrading, err = oneInt(entity, "trading", ratings.Trading); err != nil {
		return nil, err
	}
	if s.UsersWanting, err = oneInt(entity, "wanting", ratings.Wanting); err != nil {
		return nil, err
	}
	if s.UsersWishing, err = oneInt(entity, "wishing", ratings.Wishing); err != nil {
		return nil, err
	}
	if s.NumComments, err = oneInt(entity, "numcomments", ratings.NumComments); err != nil {
		return nil, err
	}
	if s.NumWeights, err = oneInt(entity, "numweights", ratings.NumWeights); err != nil {
		return nil, err
	}
	if s.AverageWeight, err = oneFloat(entity, "averageweight", ratings.AverageWeight); err != nil {
		return nil, err
	}

	raw, err := oneValue(entity, "bayesaverage", ratings.BayesAverage)
	if err != nil {
		return nil, err
	}
	if s.BayesAverage, err = xmlcodec.NullableRating(raw); err != nil {
		return nil, fieldErr(entity, "bayesaverage", err)
	}

	ranks, err := xmlcodec.One("ranks", ratings.Ranks)
	if err != nil {
		return nil, fieldErr(entity, "ranks", err)
	}
	if s.Rank, _, s.SubFamilyRanks, err = splitRanks(entity, ranks.Ranks); err != nil {
		return nil, err
	}

	return s, nil
}

func versionFromWire(x xmlVersionItem) (*GameVersion, error) {
	entity := fmt.Sprintf("version %d", x.ID)

	v := &GameVersion{ID: x.ID}

	var err error
	if v.Name, v.AlternateNames, err = splitNames(entity, x.Names); err != nil {
		return nil, err
	}
	if v.Image, err = atMostOneText(entity, "image", x.Image); err != nil {
		return nil, err
	}
	if v.Thumbnail, err = atMostOneText(entity, "thumbnail", x.Thumbnail); err != nil {
		return nil, err
	}
	if v.YearPublished, err = oneInt(entity, "yearpublished", x.YearPublished); err != nil {
		return nil, err
	}

	if v.ProductCode, err = oneValueText(entity, "productcode", x.ProductCode); err != nil {
		return nil, err
	}

	width, err := oneFloat(entity, "width", x.Width)
	if err != nil {
		return nil, err
	}
	length, err := oneFloat(entity, "length", x.Length)
	if err != nil {
		return nil, err
	}
	depth, err := oneFloat(entity, "depth", x.Depth)
	if err != nil {
		return nil, err
	}
	// All-zero dimensions mean the publisher never reported them.
	if width != 0 || length != 0 || depth != 0 {
		v.Dimensions = &Dimensions{Width: width, Length: length, Depth: depth}
	}

	weight, err := oneFloat(entity, "weight", x.Weight)
	if err != nil {
		return nil, err
	}
	if weight != 0 {
		v.Weight = &weight
	}

	routed, err := xmlcodec.Route("link", x.Links,
		func(l xmlLink) string { return l.Type },
		linkVersion, linkPublisher, linkArtist, linkLanguage)
	if err != nil {
		return nil, fieldErr(entity, "link", err)
	}

	original, err := routed.One(linkVersion)
	if err != nil {
		return nil, fieldErr(entity, "link", err)
	}
	v.OriginalGame = original.related()

	for _, l := range routed.All(linkPublisher) {
		v.Publishers = append(v.Publishers, l.related())
	}
	for _, l := range routed.All(linkArtist) {
		v.Artists = append(v.Artists, l.related())
	}
	for _, l := range routed.All(linkLanguage) {
		v.Languages = append(v.Languages, l.Value)
	}

	return v, nil
}

func videoFromWire(entity string, x xmlVideo) (*Video, error) {
	postDate, err := xmlcodec.Compact(x.PostDate)
	if err != nil {
		return nil, fieldErr(entity, "video postdate", err)
	}
	return &Video{
		ID:       x.ID,
		Title:    x.Title,
		Category: x.Category,
		Language: x.Language,
		Link:     x.Link,
		Uploader: User{ID: x.UserID, Username: x.Username},
		PostDate: postDate,
	}, nil
}

func listingFromWire(entity string, x xmlListing) (*MarketplaceListing, error) {
	l := &MarketplaceListing{}

	raw, err := oneValue(entity, "listdate", x.ListDate)
	if err != nil {
		return nil, err
	}
	if l.ListDate, err = xmlcodec.Long(raw); err != nil {
		return nil, fieldErr(entity, "listdate", err)
	}

	price, err := xmlcodec.One("price", x.Price)
	if err != nil {
		return nil, fieldErr(entity, "price", err)
	}
	amount, err := xmlcodec.Float(price.Value)
	if err != nil {
		return nil, fieldErr(entity, "price", err)
	}
	l.Price = Price{Currency: price.Currency, Value: amount}

	if l.Condition, err = oneValueText(entity, "condition", x.Condition); err != nil {
		return nil, err
	}
	if l.Notes, err = oneValueText(entity, "notes", x.Notes); err != nil {
		return nil, err
	}

	link, err := xmlcodec.One("link", x.Link)
	if err != nil {
		return nil, fieldErr(entity, "link", err)
	}
	l.Link = link.Href

	return l, nil
}

func commentsFromWire(entity string, x xmlCommentList) (*CommentPage, error) {
	page := &CommentPage{
		TotalItems: x.TotalItems,
		Page:       x.Page,
	}
	for _, c := range x.Comments {
		rating, err := xmlcodec.NullableRating(c.Rating)
		if err != nil {
			return nil, fieldErr(entity, "comment rating", err)
		}
		page.Comments = append(page.Comments, Comment{
			Username: c.Username,
			Rating:   rating,
			Comment:  c.Value,
		})
	}
	return page, nil
}

// Scalar helpers over value-wrapped occurrence lists.

func oneInt(entity, field string, vs []valueAttr) (int, error) {
	raw, err := oneValue(entity, field, vs)
	if err != nil {
		return 0, err
	}
	n, err := xmlcodec.Int(raw)
	if err != nil {
		return 0, fieldErr(entity, field, err)
	}
	return n, nil
}

func oneFloat(entity, field string, vs []valueAttr) (float64, error) {
	raw, err := oneValue(entity, field, vs)
	if err != nil {
		return 0, err
	}
	f, err := xmlcodec.Float(raw)
	if err != nil {
		return 0, fieldErr(entity, field, err)
	}
	return f, nil
}

func oneMinutes(entity, field string, vs []valueAttr) (time.Duration, error) {
	raw, err := oneValue(entity, field, vs)
	if err != nil {
		return 0, err
	}
	d, err := xmlcodec.Minutes(raw)
	if err != nil {
		return 0, fieldErr(entity, field, err)
	}
	return d, nil
}

func oneValueText(entity, field string, vs []valueAttr) (string, error) {
	raw, err := oneValue(entity, field, vs)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// thingService implements ThingService.
type thingService struct {
	transport *api.Transport
}

func newThingService(transport *api.Transport) *thingService {
	return &thingService{transport: transport}
}

// Get retrieves a single item by ID.
func (s *thingService) Get(ctx context.Context, id int64, opts *ThingOptions) (*Game, error) {
	games, err := s.GetMany(ctx, []int64{id}, opts)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: thing %d", ErrNotFound, id)
	}
	return games[0], nil
}

// GetMany retrieves several items in one request.
func (s *thingService) GetMany(ctx context.Context, ids []int64, opts *ThingOptions) ([]*Game, error) {
	q, err := opts.values()
	if err != nil {
		return nil, err
	}

	idStrs := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrs = append(idStrs, strconv.FormatInt(id, 10))
	}
	q.Set("id", strings.Join(idStrs, ","))

	body, err := doGet(ctx, s.transport, "thing", q)
	if err != nil {
		return nil, err
	}

	wire, err := decodeEntity[xmlThingItems](body)
	if err != nil {
		return nil, err
	}

	games := make([]*Game, 0, len(wire.Items))
	for _, item := range wire.Items {
		g, err := gameFromWire(item)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}
