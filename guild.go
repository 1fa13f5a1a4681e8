package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"time"

	"github.com/meeplelab/go-bgg/internal/api"
	"github.com/meeplelab/go-bgg/internal/xmlcodec"
)

// The service pages guild members in fixed blocks of 25.
const guildMemberPageSize = 25

// GuildMemberSort orders a guild's member list.
type GuildMemberSort string

// Member sort orders.
const (
	SortByUsername GuildMemberSort = "username"
	SortByJoinDate GuildMemberSort = "date"
)

// GuildService provides access to guilds: user-created interest groups.
//
//go:generate mockery --name=GuildService --output=mocks --outpkg=mocks --filename=guild_service.go
type GuildService interface {
	// Get retrieves a guild by ID.
	Get(ctx context.Context, id int64, opts *GuildOptions) (*Guild, error)

	// Members returns an iterator over all guild members. Pages are
	// fetched lazily as you iterate.
	Members(ctx context.Context, id int64, sort GuildMemberSort) iter.Seq2[GuildMember, error]
}

// GuildOptions controls a guild request.
type GuildOptions struct {
	// Members includes one page of the member roster.
	Members bool
	// Sort orders the roster. Defaults to username order.
	Sort GuildMemberSort
	// Page selects the roster page, 1-based, 25 members per page.
	Page int
}

// Guild is a user-created interest group.
type Guild struct {
	ID          int64
	Name        string
	Created     time.Time
	Category    string
	Website     string
	Manager     string
	Description string
	Location    GuildLocation

	// MemberPage is nil unless the roster was requested.
	MemberPage *GuildMemberPage
}

// GuildLocation is the postal address a guild lists.
type GuildLocation struct {
	Addr1           string
	Addr2           string
	City            string
	StateOrProvince string
	PostalCode      string
	Country         string
}

// GuildMemberPage is one page of a guild's roster.
type GuildMemberPage struct {
	// Total is the full roster size, not the page size.
	Total   int
	Page    int
	Members []GuildMember
}

// GuildMember is one guild membership record.
type GuildMember struct {
	Username string
	Joined   time.Time
}

type xmlGuild struct {
	XMLName     xml.Name           `xml:"guild"`
	ID          int64              `xml:"id,attr"`
	Name        string             `xml:"name,attr"`
	Created     string             `xml:"created,attr"`
	Category    []string           `xml:"category"`
	Website     []string           `xml:"website"`
	Manager     []string           `xml:"manager"`
	Description []string           `xml:"description"`
	Location    []xmlGuildLocation `xml:"location"`
	Members     []xmlGuildMembers  `xml:"members"`
}

type xmlGuildLocation struct {
	Addr1           string `xml:"addr1"`
	Addr2           string `xml:"addr2"`
	City            string `xml:"city"`
	StateOrProvince string `xml:"stateorprovince"`
	PostalCode      string `xml:"postalcode"`
	Country         string `xml:"country"`
}

type xmlGuildMembers struct {
	Count   int              `xml:"count,attr"`
	Page    int              `xml:"page,attr"`
	Members []xmlGuildMember `xml:"member"`
}

type xmlGuildMember struct {
	Name string `xml:"name,attr"`
	Date string `xml:"date,attr"`
}

func guildFromWire(x xmlGuild) (*Guild, error) {
	entity := fmt.Sprintf("guild %d", x.ID)

	// A request for an unknown guild ID is answered with a bare guild
	// element rather than an error envelope.
	if x.Name == "" {
		return nil, fmt.Errorf("%w: guild %d", ErrNotFound, x.ID)
	}

	g := &Guild{
		ID:   x.ID,
		Name: x.Name,
	}

	created, err := xmlcodec.Long(x.Created)
	if err != nil {
		return nil, fieldErr(entity, "created", err)
	}
	g.Created = created

	if g.Category, err = oneText(entity, "category", x.Category); err != nil {
		return nil, err
	}
	if g.Website, err = atMostOneText(entity, "website", x.Website); err != nil {
		return nil, err
	}
	if g.Manager, err = oneText(entity, "manager", x.Manager); err != nil {
		return nil, err
	}
	if g.Description, err = atMostOneText(entity, "description", x.Description); err != nil {
		return nil, err
	}

	location, err := xmlcodec.AtMostOne("location", x.Location)
	if err != nil {
		return nil, fieldErr(entity, "location", err)
	}
	if location != nil {
		g.Location = GuildLocation{
			Addr1:           location.Addr1,
			Addr2:           location.Addr2,
			City:            location.City,
			StateOrProvince: location.StateOrProvince,
			PostalCode:      location.PostalCode,
			Country:         location.Country,
		}
	}

	members, err := xmlcodec.AtMostOne("members", x.Members)
	if err != nil {
		return nil, fieldErr(entity, "members", err)
	}
	if members != nil {
		page := &GuildMemberPage{
			Total: members.Count,
			Page:  members.Page,
		}
		for _, m := range members.Members {
			joined, err := xmlcodec.Long(m.Date)
			if err != nil {
				return nil, fieldErr(entity, "member date", err)
			}
			page.Members = append(page.Members, GuildMember{
				Username: m.Name,
				Joined:   joined,
			})
		}
		g.MemberPage = page
	}

	return g, nil
}

// guildService implements GuildService.
type guildService struct {
	transport *api.Transport
}

func newGuildService(transport *api.Transport) *guildService {
	return &guildService{transport: transport}
}

// Get retrieves a guild by ID.
func (s *guildService) Get(ctx context.Context, id int64, opts *GuildOptions) (*Guild, error) {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(id, 10))

	if opts != nil {
		if opts.Members {
			q.Set("members", "1")
		}
		if opts.Sort != "" {
			q.Set("sort", string(opts.Sort))
		}
		if opts.Page > 0 {
			q.Set("page", strconv.Itoa(opts.Page))
		}
	}

	body, err := doGet(ctx, s.transport, "guild", q)
	if err != nil {
		return nil, err
	}

	wire, err := decodeEntity[xmlGuild](body)
	if err != nil {
		return nil, err
	}

	return guildFromWire(*wire)
}

// Members returns an iterator over all guild members.
func (s *guildService) Members(ctx context.Context, id int64, sort GuildMemberSort) iter.Seq2[GuildMember, error] {
	return func(yield func(GuildMember, error) bool) {
		page := 1

		for {
			guild, err := s.Get(ctx, id, &GuildOptions{
				Members: true,
				Sort:    sort,
				Page:    page,
			})
			if err != nil {
				yield(GuildMember{}, err)
				return
			}
			if guild.MemberPage == nil {
				return
			}

			for _, m := range guild.MemberPage.Members {
				if err := ctx.Err(); err != nil {
					yield(GuildMember{}, err)
					return
				}
				if !yield(m, nil) {
					return
				}
			}

			if page*guildMemberPageSize >= guild.MemberPage.Total {
				return
			}
			page++
		}
	}
}
