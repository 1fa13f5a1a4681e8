package bgg

import (
	"fmt"
	"strings"

	"github.com/meeplelab/go-bgg/internal/xmlcodec"
)

// Poll names the service attaches to the polls it runs on every game.
const (
	pollSuggestedPlayerCount = "suggested_numplayers"
	pollSuggestedPlayerAge   = "suggested_playerage"
	pollLanguageDependence   = "language_dependence"
)

// Poll is a community poll in its generic wire shape. The three polls the
// service runs have stronger typed forms; see SuggestedPlayerCount,
// SuggestedPlayerAge and LanguageDependence.
type Poll struct {
	Name        string
	Title       string
	TotalVoters int
	Results     []PollResults
}

// PollResults is one result set within a poll. Only the player count poll
// has more than one set, keyed by the player count voted on.
type PollResults struct {
	// PlayerCount is the player count axis value, empty for polls without
	// one.
	PlayerCount string
	Results     []PollResult
}

// PollResult is a single option within a result set.
type PollResult struct {
	// Level is the 1-based option level, zero for polls without levels.
	Level int
	Value string
	Votes int
}

// PlayerCount is a voted player count, either exact or open-ended
// ("4" versus "4+").
type PlayerCount struct {
	Count   int
	OrAbove bool
}

func (c PlayerCount) String() string {
	if c.OrAbove {
		return fmt.Sprintf("%d+", c.Count)
	}
	return fmt.Sprintf("%d", c.Count)
}

// SuggestedPlayerCountPoll asks how well a game plays at each player
// count.
type SuggestedPlayerCountPoll struct {
	Title       string
	TotalVoters int
	Results     []PlayerCountResult
}

// PlayerCountResult is the vote tally for one player count.
type PlayerCountResult struct {
	PlayerCount         PlayerCount
	BestVotes           int
	RecommendedVotes    int
	NotRecommendedVotes int
}

// PlayerAge is a voted minimum player age, either exact or open-ended
// ("21 and up").
type PlayerAge struct {
	Age   int
	AndUp bool
}

func (a PlayerAge) String() string {
	if a.AndUp {
		return fmt.Sprintf("%d and up", a.Age)
	}
	return fmt.Sprintf("%d", a.Age)
}

// SuggestedPlayerAgePoll asks for the minimum age a game suits.
type SuggestedPlayerAgePoll struct {
	Title       string
	TotalVoters int
	Results     []PlayerAgeResult
}

// PlayerAgeResult is the vote tally for one suggested age.
type PlayerAgeResult struct {
	Age   PlayerAge
	Votes int
}

// LanguageDependencePoll asks how much in-game text matters, on a five
// level scale.
type LanguageDependencePoll struct {
	Title       string
	TotalVoters int
	// Results holds the five levels in ascending order.
	Results []LanguageDependenceResult
}

// LanguageDependenceResult is the vote tally for one dependence level.
type LanguageDependenceResult struct {
	// Level runs from 1 (no necessary text) to 5 (unplayable in another
	// language).
	Level      int
	Dependence string
	Votes      int
}

// Option labels of the player count poll.
const (
	optionBest           = "Best"
	optionRecommended    = "Recommended"
	optionNotRecommended = "Not Recommended"
)

// SuggestedPlayerCount specializes the generic poll. It fails when the
// poll is not the player count poll, when a result set votes on an
// unparsable player count, or when a set does not carry exactly one of
// each expected option.
func (p *Poll) SuggestedPlayerCount() (*SuggestedPlayerCountPoll, error) {
	if p.Name != pollSuggestedPlayerCount {
		return nil, &InvalidPollError{Poll: p.Name, Reason: "not the suggested player count poll"}
	}

	out := &SuggestedPlayerCountPoll{
		Title:       p.Title,
		TotalVoters: p.TotalVoters,
	}
	for _, set := range p.Results {
		count, err := parsePlayerCount(set.PlayerCount)
		if err != nil {
			return nil, &InvalidPollError{Poll: p.Name, Reason: err.Error()}
		}

		routed, err := xmlcodec.Route("result", set.Results,
			func(r PollResult) string { return r.Value },
			optionBest, optionRecommended, optionNotRecommended)
		if err != nil {
			return nil, &InvalidPollError{Poll: p.Name, Reason: err.Error()}
		}

		best, err := routed.One(optionBest)
		if err != nil {
			return nil, &InvalidPollError{Poll: p.Name, Reason: err.Error()}
		}
		recommended, err := routed.One(optionRecommended)
		if err != nil {
			return nil, &InvalidPollError{Poll: p.Name, Reason: err.Error()}
		}
		notRecommended, err := routed.One(optionNotRecommended)
		if err != nil {
			return nil, &InvalidPollError{Poll: p.Name, Reason: err.Error()}
		}

		out.Results = append(out.Results, PlayerCountResult{
			PlayerCount:         count,
			BestVotes:           best.Votes,
			RecommendedVotes:    recommended.Votes,
			NotRecommendedVotes: notRecommended.Votes,
		})
	}
	return out, nil
}

func parsePlayerCount(s string) (PlayerCount, error) {
	orAbove := strings.HasSuffix(s, "+")
	n, err := xmlcodec.Int(strings.TrimSuffix(s, "+"))
	if err != nil || n < 0 {
		return PlayerCount{}, fmt.Errorf("player count must be a count or a count followed by +, got %q", s)
	}
	return PlayerCount{Count: n, OrAbove: orAbove}, nil
}

// SuggestedPlayerAge specializes the generic poll. The poll carries
// exactly one result set.
func (p *Poll) SuggestedPlayerAge() (*SuggestedPlayerAgePoll, error) {
	if p.Name != pollSuggestedPlayerAge {
		return nil, &InvalidPollError{Poll: p.Name, Reason: "not the suggested player age poll"}
	}

	set, err := xmlcodec.One("results", p.Results)
	if err != nil {
		return nil, &InvalidPollError{Poll: p.Name, Reason: err.Error()}
	}

	out := &SuggestedPlayerAgePoll{
		Title:       p.Title,
		TotalVoters: p.TotalVoters,
	}
	for _, r := range set.Results {
		age, err := parsePlayerAge(r.Value)
		if err != nil {
			return nil, &InvalidPollError{Poll: p.Name, Reason: err.Error()}
		}
		out.Results = append(out.Results, PlayerAgeResult{Age: age, Votes: r.Votes})
	}
	return out, nil
}

func parsePlayerAge(s string) (PlayerAge, error) {
	andUp := strings.HasSuffix(s, " and up")
	n, err := xmlcodec.Int(strings.TrimSuffix(s, " and up"))
	if err != nil || n < 0 {
		return PlayerAge{}, fmt.Errorf("player age must be an age or an age followed by %q, got %q", " and up", s)
	}
	return PlayerAge{Age: n, AndUp: andUp}, nil
}

// LanguageDependence specializes the generic poll. The poll carries
// exactly one result set holding exactly one option per level 1 through
// 5.
func (p *Poll) LanguageDependence() (*LanguageDependencePoll, error) {
	if p.Name != pollLanguageDependence {
		return nil, &InvalidPollError{Poll: p.Name, Reason: "not the language dependence poll"}
	}

	set, err := xmlcodec.One("results", p.Results)
	if err != nil {
		return nil, &InvalidPollError{Poll: p.Name, Reason: err.Error()}
	}

	routed, err := xmlcodec.Route("result", set.Results,
		func(r PollResult) string { return fmt.Sprintf("%d", r.Level) },
		"1", "2", "3", "4", "5")
	if err != nil {
		return nil, &InvalidPollError{Poll: p.Name, Reason: err.Error()}
	}

	out := &LanguageDependencePoll{
		Title:       p.Title,
		TotalVoters: p.TotalVoters,
	}
	for level := 1; level <= 5; level++ {
		r, err := routed.One(fmt.Sprintf("%d", level))
		if err != nil {
			return nil, &InvalidPollError{Poll: p.Name, Reason: err.Error()}
		}
		out.Results = append(out.Results, LanguageDependenceResult{
			Level:      level,
			Dependence: r.Value,
			Votes:      r.Votes,
		})
	}
	return out, nil
}

// xmlPoll is the generic wire shape of a <poll> tag.
type xmlPoll struct {
	Name       string           `xml:"name,attr"`
	Title      string           `xml:"title,attr"`
	TotalVotes int              `xml:"totalvotes,attr"`
	Results    []xmlPollResults `xml:"results"`
}

type xmlPollResults struct {
	NumPlayers string          `xml:"numplayers,attr"`
	Results    []xmlPollResult `xml:"result"`
}

type xmlPollResult struct {
	Level    int    `xml:"level,attr"`
	Value    string `xml:"value,attr"`
	NumVotes int    `xml:"numvotes,attr"`
}

func (x xmlPoll) poll() Poll {
	p := Poll{
		Name:        x.Name,
		Title:       x.Title,
		TotalVoters: x.TotalVotes,
	}
	for _, set := range x.Results {
		results := PollResults{PlayerCount: set.NumPlayers}
		for _, r := range set.Results {
			results.Results = append(results.Results, PollResult{
				Level: r.Level,
				Value: r.Value,
				Votes: r.NumVotes,
			})
		}
		p.Results = append(p.Results, results)
	}
	return p
}
