package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"

	"github.com/meeplelab/go-bgg/internal/api"
	"github.com/meeplelab/go-bgg/internal/xmlcodec"
)

// HotService provides the current hotness list: the fifty games trending
// hardest right now, in rank order.
//
//go:generate mockery --name=HotService --output=mocks --outpkg=mocks --filename=hot_service.go
type HotService interface {
	// List returns the current hotness list.
	List(ctx context.Context) ([]HotItem, error)
}

// HotItem is one entry on the hotness list.
type HotItem struct {
	ID   int64
	Rank int
	Name string
	// Thumbnail is empty when the item has no image yet.
	Thumbnail string
	// YearPublished is zero when the service omits it.
	YearPublished int
}

// The hotness list value-wraps its scalars but does not discriminate its
// names, so the wire shape differs from the other endpoints.
type xmlHotItems struct {
	XMLName xml.Name     `xml:"items"`
	Items   []xmlHotItem `xml:"item"`
}

type xmlHotItem struct {
	ID            int64       `xml:"id,attr"`
	Rank          int         `xml:"rank,attr"`
	Name          []valueAttr `xml:"name"`
	Thumbnail     []valueAttr `xml:"thumbnail"`
	YearPublished []valueAttr `xml:"yearpublished"`
}

func hotItemFromWire(x xmlHotItem) (*HotItem, error) {
	entity := fmt.Sprintf("hot item %d", x.ID)

	item := &HotItem{
		ID:   x.ID,
		Rank: x.Rank,
	}

	var err error
	if item.Name, err = oneValueText(entity, "name", x.Name); err != nil {
		return nil, err
	}

	thumb, err := atMostOneValue(entity, "thumbnail", x.Thumbnail)
	if err != nil {
		return nil, err
	}
	item.Thumbnail = thumb

	year, err := atMostOneValue(entity, "yearpublished", x.YearPublished)
	if err != nil {
		return nil, err
	}
	if year != "" {
		n, err := xmlcodec.Int(year)
		if err != nil {
			return nil, fieldErr(entity, "yearpublished", err)
		}
		item.YearPublished = n
	}

	return item, nil
}

// hotService implements HotService.
type hotService struct {
	transport *api.Transport
}

func newHotService(transport *api.Transport) *hotService {
	return &hotService{transport: transport}
}

// List returns the current hotness list.
func (s *hotService) List(ctx context.Context) ([]HotItem, error) {
	q := url.Values{}
	q.Set("type", string(ItemTypeBoardGame))

	body, err := doGet(ctx, s.transport, "hot", q)
	if err != nil {
		return nil, err
	}

	wire, err := decodeEntity[xmlHotItems](body)
	if err != nil {
		return nil, err
	}

	items := make([]HotItem, 0, len(wire.Items))
	for _, item := range wire.Items {
		h, err := hotItemFromWire(item)
		if err != nil {
			return nil, err
		}
		items = append(items, *h)
	}
	return items, nil
}
