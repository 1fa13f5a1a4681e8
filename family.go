package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/meeplelab/go-bgg/internal/api"
	"github.com/meeplelab/go-bgg/internal/xmlcodec"
)

// FamilyService provides access to game families: groups of games in a
// series, such as every edition and spin-off of one title.
//
//go:generate mockery --name=FamilyService --output=mocks --outpkg=mocks --filename=family_service.go
type FamilyService interface {
	// Get retrieves a single game family by ID.
	Get(ctx context.Context, id int64) (*GameFamily, error)

	// GetMany retrieves several families in one request.
	GetMany(ctx context.Context, ids []int64) ([]*GameFamily, error)
}

// GameFamily is a group of related games with a shared description.
type GameFamily struct {
	ID             int64
	Name           string
	AlternateNames []string
	Image          string
	Thumbnail      string
	Description    string
	// Games lists the members of the family.
	Games []RelatedItem
}

type xmlFamilyItems struct {
	XMLName xml.Name        `xml:"items"`
	Items   []xmlFamilyItem `xml:"item"`
}

type xmlFamilyItem struct {
	ID          int64     `xml:"id,attr"`
	Names       []xmlName `xml:"name"`
	Image       []string  `xml:"image"`
	Thumbnail   []string  `xml:"thumbnail"`
	Description []string  `xml:"description"`
	Links       []xmlLink `xml:"link"`
}

func familyFromWire(x xmlFamilyItem) (*GameFamily, error) {
	entity := fmt.Sprintf("family %d", x.ID)

	f := &GameFamily{ID: x.ID}

	var err error
	if f.Name, f.AlternateNames, err = splitNames(entity, x.Names); err != nil {
		return nil, err
	}
	if f.Image, err = atMostOneText(entity, "image", x.Image); err != nil {
		return nil, err
	}
	if f.Thumbnail, err = atMostOneText(entity, "thumbnail", x.Thumbnail); err != nil {
		return nil, err
	}
	if f.Description, err = oneText(entity, "description", x.Description); err != nil {
		return nil, err
	}

	// Family members arrive as links; only family links belong here.
	routed, err := xmlcodec.Route("link", x.Links,
		func(l xmlLink) string { return l.Type },
		linkFamily)
	if err != nil {
		return nil, fieldErr(entity, "link", err)
	}
	for _, l := range routed.All(linkFamily) {
		f.Games = append(f.Games, l.related())
	}

	return f, nil
}

// familyService implements FamilyService.
type familyService struct {
	transport *api.Transport
}

func newFamilyService(transport *api.Transport) *familyService {
	return &familyService{transport: transport}
}

// Get retrieves a single game family by ID.
func (s *familyService) Get(ctx context.Context, id int64) (*GameFamily, error) {
	families, err := s.GetMany(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(families) == 0 {
		return nil, fmt.Errorf("%w: family %d", ErrNotFound, id)
	}
	return families[0], nil
}

// GetMany retrieves several families in one request.
func (s *familyService) GetMany(ctx context.Context, ids []int64) ([]*GameFamily, error) {
	idStrs := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrs = append(idStrs, strconv.FormatInt(id, 10))
	}

	q := url.Values{}
	q.Set("id", strings.Join(idStrs, ","))
	q.Set("type", "boardgamefamily")

	body, err := doGet(ctx, s.transport, "family", q)
	if err != nil {
		return nil, err
	}

	wire, err := decodeEntity[xmlFamilyItems](body)
	if err != nil {
		return nil, err
	}

	families := make([]*GameFamily, 0, len(wire.Items))
	for _, item := range wire.Items {
		f, err := familyFromWire(item)
		if err != nil {
			return nil, err
		}
		families = append(families, f)
	}
	return families, nil
}
