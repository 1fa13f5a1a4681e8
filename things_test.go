package bgg_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bgg "github.com/meeplelab/go-bgg"
)

const nucleumXML = `<?xml version="1.0" encoding="utf-8"?>
<items termsofuse="https://boardgamegeek.com/xmlapi/termsofuse">
  <item type="boardgame" id="396790">
    <thumbnail>https://cf.geekdo-images.com/thumb.jpg</thumbnail>
    <image>https://cf.geekdo-images.com/image.jpg</image>
    <name type="primary" sortindex="1" value="Nucleum"/>
    <name type="alternate" sortindex="1" value="Нуклеум"/>
    <description>Build reactors &mdash; power the empire.</description>
    <yearpublished value="2023"/>
    <minplayers value="1"/>
    <maxplayers value="4"/>
    <playingtime value="150"/>
    <minplaytime value="60"/>
    <maxplaytime value="150"/>
    <minage value="14"/>
    <poll name="suggested_numplayers" title="User Suggested Number of Players" totalvotes="44">
      <results numplayers="1">
        <result value="Best" numvotes="4"/>
        <result value="Recommended" numvotes="20"/>
        <result value="Not Recommended" numvotes="5"/>
      </results>
      <results numplayers="4+">
        <result value="Best" numvotes="0"/>
        <result value="Recommended" numvotes="2"/>
        <result value="Not Recommended" numvotes="16"/>
      </results>
    </poll>
    <poll name="suggested_playerage" title="User Suggested Player Age" totalvotes="12">
      <results>
        <result value="12" numvotes="5"/>
        <result value="21 and up" numvotes="1"/>
      </results>
    </poll>
    <poll name="language_dependence" title="Language Dependence" totalvotes="9">
      <results>
        <result level="1" value="No necessary in-game text" numvotes="7"/>
        <result level="2" value="Some necessary text" numvotes="2"/>
        <result level="3" value="Moderate in-game text" numvotes="0"/>
        <result level="4" value="Extensive use of text" numvotes="0"/>
        <result level="5" value="Unplayable in another language" numvotes="0"/>
      </results>
    </poll>
    <link type="boardgamecategory" id="1021" value="Economic"/>
    <link type="boardgamemechanic" id="2001" value="Action Points"/>
    <link type="boardgamedesigner" id="36423" value="David Turczi"/>
    <link type="boardgameexpansion" id="410123" value="Nucleum: Australia"/>
    <link type="boardgamepublisher" id="17917" value="Board&Dice"/>
    <statistics page="1">
      <ratings>
        <usersrated value="10881"/>
        <average value="8.11"/>
        <bayesaverage value="7.48"/>
        <ranks>
          <rank type="subtype" id="1" name="boardgame" friendlyname="Board Game Rank" value="105" bayesaverage="7.48"/>
          <rank type="family" id="5497" name="strategygames" friendlyname="Strategy Game Rank" value="62" bayesaverage="7.52"/>
        </ranks>
        <stddev value="1.3"/>
        <median value="0"/>
        <owned value="14357"/>
        <trading value="174"/>
        <wanting value="638"/>
        <wishing value="5352"/>
        <numcomments value="1423"/>
        <numweights value="407"/>
        <averageweight value="4.04"/>
      </ratings>
    </statistics>
  </item>
</items>`

// minimalItem builds a well-formed single-item document around extra
// markup, for cardinality and codec failure cases.
func minimalItem(extra string) string {
	return fmt.Sprintf(`<items>
  <item type="boardgame" id="42">
    <name type="primary" sortindex="1" value="Example"/>
    <description>A game.</description>
    <yearpublished value="2020"/>
    <minplayers value="2"/>
    <maxplayers value="4"/>
    <playingtime value="60"/>
    <minplaytime value="45"/>
    <maxplaytime value="60"/>
    <minage value="10"/>
    %s
  </item>
</items>`, extra)
}

func TestThingService_Get(t *testing.T) {
	t.Run("reconstructs a full game", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/thing", r.URL.Path)
			assert.Equal(t, "396790", r.URL.Query().Get("id"))
			assert.Equal(t, "1", r.URL.Query().Get("stats"))
			assert.Equal(t, "boardgame,boardgameexpansion", r.URL.Query().Get("type"))
			_, _ = w.Write([]byte(nucleumXML))
		})

		game, err := client.Things.Get(context.Background(), 396790, nil)
		require.NoError(t, err)

		assert.Equal(t, int64(396790), game.ID)
		assert.Equal(t, bgg.ItemTypeBoardGame, game.Type)
		assert.Equal(t, "Nucleum", game.Name)
		assert.Equal(t, []string{"Нуклеум"}, game.AlternateNames)
		assert.Equal(t, "Build reactors — power the empire.", game.Description)
		assert.Equal(t, 2023, game.YearPublished)
		assert.Equal(t, 1, game.MinPlayers)
		assert.Equal(t, 4, game.MaxPlayers)
		assert.Equal(t, 150*time.Minute, game.PlayingTime)
		assert.Equal(t, 60*time.Minute, game.MinPlayTime)
		assert.Equal(t, 14, game.MinAge)

		// Link buckets, including the raw ampersand in a publisher name.
		require.Len(t, game.Designers, 1)
		assert.Equal(t, "David Turczi", game.Designers[0].Name)
		require.Len(t, game.Expansions, 1)
		assert.Equal(t, int64(410123), game.Expansions[0].ID)
		require.Len(t, game.Publishers, 1)
		assert.Equal(t, "Board&Dice", game.Publishers[0].Name)
		assert.Empty(t, game.ExpansionFor)

		// Poll specializations.
		require.NotNil(t, game.SuggestedPlayerCount)
		require.Len(t, game.SuggestedPlayerCount.Results, 2)
		assert.Equal(t, bgg.PlayerCount{Count: 1}, game.SuggestedPlayerCount.Results[0].PlayerCount)
		assert.Equal(t, 20, game.SuggestedPlayerCount.Results[0].RecommendedVotes)
		assert.Equal(t, bgg.PlayerCount{Count: 4, OrAbove: true}, game.SuggestedPlayerCount.Results[1].PlayerCount)

		require.NotNil(t, game.SuggestedPlayerAge)
		require.Len(t, game.SuggestedPlayerAge.Results, 2)
		assert.Equal(t, bgg.PlayerAge{Age: 12}, game.SuggestedPlayerAge.Results[0].Age)
		assert.Equal(t, bgg.PlayerAge{Age: 21, AndUp: true}, game.SuggestedPlayerAge.Results[1].Age)

		require.NotNil(t, game.LanguageDependence)
		require.Len(t, game.LanguageDependence.Results, 5)
		assert.Equal(t, 1, game.LanguageDependence.Results[0].Level)
		assert.Equal(t, 7, game.LanguageDependence.Results[0].Votes)

		// Statistics and ranks.
		require.NotNil(t, game.Stats)
		assert.Equal(t, 10881, game.Stats.UsersRated)
		assert.InDelta(t, 8.11, game.Stats.Average, 0.0001)
		require.NotNil(t, game.Stats.BayesAverage)
		assert.InDelta(t, 7.48, *game.Stats.BayesAverage, 0.0001)
		assert.Equal(t, bgg.RankValue{Position: 105, Ranked: true}, game.Stats.Rank)
		require.Len(t, game.Stats.SubFamilyRanks, 1)
		assert.Equal(t, "strategygames", game.Stats.SubFamilyRanks[0].Name)
		assert.Equal(t, bgg.RankValue{Position: 62, Ranked: true}, game.Stats.SubFamilyRanks[0].Value)
	})

	t.Run("unranked game with no bayes rating", func(t *testing.T) {
		stats := `<statistics page="1">
      <ratings>
        <usersrated value="3"/>
        <average value="6.5"/>
        <bayesaverage value="N/A"/>
        <ranks>
          <rank type="subtype" id="1" name="boardgame" friendlyname="Board Game Rank" value="Not Ranked" bayesaverage="N/A"/>
        </ranks>
        <stddev value="0.5"/>
        <median value="0"/>
        <owned value="12"/>
        <trading value="0"/>
        <wanting value="1"/>
        <wishing value="4"/>
        <numcomments value="2"/>
        <numweights value="1"/>
        <averageweight value="2"/>
      </ratings>
    </statistics>`
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(minimalItem(stats)))
		})

		game, err := client.Things.Get(context.Background(), 42, nil)
		require.NoError(t, err)

		require.NotNil(t, game.Stats)
		assert.False(t, game.Stats.Rank.Ranked)
		assert.Nil(t, game.Stats.BayesAverage)
	})

	t.Run("duplicate canonical rank is rejected", func(t *testing.T) {
		stats := `<statistics page="1">
      <ratings>
        <usersrated value="3"/>
        <average value="6.5"/>
        <bayesaverage value="6.1"/>
        <ranks>
          <rank type="subtype" id="1" name="boardgame" friendlyname="Board Game Rank" value="10" bayesaverage="6.1"/>
          <rank type="subtype" id="2" name="boardgame" friendlyname="Board Game Rank" value="11" bayesaverage="6.0"/>
        </ranks>
        <stddev value="0.5"/>
        <median value="0"/>
        <owned value="12"/>
        <trading value="0"/>
        <wanting value="1"/>
        <wishing value="4"/>
        <numcomments value="2"/>
        <numweights value="1"/>
        <averageweight value="2"/>
      </ratings>
    </statistics>`
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(minimalItem(stats)))
		})

		_, err := client.Things.Get(context.Background(), 42, nil)
		require.Error(t, err)

		var fieldErr *bgg.InvalidFieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("unknown link type is rejected", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(minimalItem(`<link type="rpgartist" id="9" value="Somebody"/>`)))
		})

		_, err := client.Things.Get(context.Background(), 42, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rpgartist")
	})

	t.Run("missing item yields not found", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<items></items>`))
		})

		_, err := client.Things.Get(context.Background(), 42, nil)
		require.ErrorIs(t, err, bgg.ErrNotFound)
	})

	t.Run("conflicting comment options are rejected", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should be made")
		})

		_, err := client.Things.Get(context.Background(), 42, &bgg.ThingOptions{
			Comments:       true,
			RatingComments: true,
		})
		require.ErrorIs(t, err, bgg.ErrConflictingComments)
	})
}

func TestThingService_OptionalBlocks(t *testing.T) {
	t.Run("versions", func(t *testing.T) {
		versions := `<versions>
      <item type="boardgameversion" id="700001">
        <thumbnail>https://cf.geekdo-images.com/v-thumb.jpg</thumbnail>
        <name type="primary" sortindex="1" value="English edition"/>
        <yearpublished value="2023"/>
        <link type="boardgameversion" id="42" value="Example" inbound="true"/>
        <link type="boardgamepublisher" id="17917" value="Somebody"/>
        <link type="language" id="2184" value="English"/>
        <width value="11.7"/>
        <length value="11.7"/>
        <depth value="2.8"/>
        <weight value="4.3"/>
        <productcode value="EX-001"/>
      </item>
    </versions>`
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("versions"))
			_, _ = w.Write([]byte(minimalItem(versions)))
		})

		game, err := client.Things.Get(context.Background(), 42, &bgg.ThingOptions{Versions: true})
		require.NoError(t, err)

		require.Len(t, game.Versions, 1)
		v := game.Versions[0]
		assert.Equal(t, "English edition", v.Name)
		assert.Equal(t, int64(42), v.OriginalGame.ID)
		assert.Equal(t, []string{"English"}, v.Languages)
		require.NotNil(t, v.Dimensions)
		assert.InDelta(t, 11.7, v.Dimensions.Width, 0.0001)
		require.NotNil(t, v.Weight)
		assert.InDelta(t, 4.3, *v.Weight, 0.0001)
		assert.Equal(t, "EX-001", v.ProductCode)
	})

	t.Run("version without physical info", func(t *testing.T) {
		versions := `<versions>
      <item type="boardgameversion" id="700002">
        <name type="primary" sortindex="1" value="Promo edition"/>
        <yearpublished value="2024"/>
        <link type="boardgameversion" id="42" value="Example" inbound="true"/>
        <width value="0"/>
        <length value="0"/>
        <depth value="0"/>
        <weight value="0"/>
        <productcode value=""/>
      </item>
    </versions>`
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(minimalItem(versions)))
		})

		game, err := client.Things.Get(context.Background(), 42, &bgg.ThingOptions{Versions: true})
		require.NoError(t, err)

		require.Len(t, game.Versions, 1)
		assert.Nil(t, game.Versions[0].Dimensions)
		assert.Nil(t, game.Versions[0].Weight)
		assert.Empty(t, game.Versions[0].ProductCode)
	})

	t.Run("videos parse the compact date grammar", func(t *testing.T) {
		videos := `<videos total="1">
      <video id="500" title="How to play" category="instructional" language="English"
        link="https://boardgamegeek.com/video/500" username="teacher" userid="77"
        postdate="2019-01-02T11:33:11-06:00"/>
    </videos>`
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("videos"))
			_, _ = w.Write([]byte(minimalItem(videos)))
		})

		game, err := client.Things.Get(context.Background(), 42, &bgg.ThingOptions{Videos: true})
		require.NoError(t, err)

		require.Len(t, game.Videos, 1)
		v := game.Videos[0]
		assert.Equal(t, "How to play", v.Title)
		assert.Equal(t, bgg.User{ID: 77, Username: "teacher"}, v.Uploader)
		assert.Equal(t, 2019, v.PostDate.Year())
	})

	t.Run("marketplace parses the long date grammar", func(t *testing.T) {
		marketplace := `<marketplacelistings>
      <listing>
        <listdate value="Thu, 14 Jun 2007 01:06:46 +0000"/>
        <price currency="USD" value="42.50"/>
        <condition value="new"/>
        <notes value="shrinkwrapped"/>
        <link href="https://boardgamegeek.com/market/product/1" title="marketlisting"/>
      </listing>
    </marketplacelistings>`
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("marketplace"))
			_, _ = w.Write([]byte(minimalItem(marketplace)))
		})

		game, err := client.Things.Get(context.Background(), 42, &bgg.ThingOptions{Marketplace: true})
		require.NoError(t, err)

		require.Len(t, game.Marketplace, 1)
		l := game.Marketplace[0]
		assert.Equal(t, bgg.Price{Currency: "USD", Value: 42.5}, l.Price)
		assert.Equal(t, "new", l.Condition)
		assert.Equal(t, time.Date(2007, 6, 14, 1, 6, 46, 0, time.UTC), l.ListDate.UTC())
	})

	t.Run("rating comments keep unrated entries", func(t *testing.T) {
		comments := `<comments page="1" totalitems="2">
      <comment username="alice" rating="9" value="brilliant"/>
      <comment username="bob" rating="N/A" value="have not played yet"/>
    </comments>`
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("comments"))
			_, _ = w.Write([]byte(minimalItem(comments)))
		})

		game, err := client.Things.Get(context.Background(), 42, &bgg.ThingOptions{Comments: true})
		require.NoError(t, err)

		require.NotNil(t, game.Comments)
		assert.Equal(t, 2, game.Comments.TotalItems)
		require.Len(t, game.Comments.Comments, 2)
		require.NotNil(t, game.Comments.Comments[0].Rating)
		assert.InDelta(t, 9, *game.Comments.Comments[0].Rating, 0.0001)
		assert.Nil(t, game.Comments.Comments[1].Rating)
	})
}

func TestThingService_GetMany(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1,2", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`<items>
  <item type="boardgame" id="1">
    <name type="primary" sortindex="1" value="First"/>
    <description>one</description>
    <yearpublished value="2001"/>
    <minplayers value="2"/>
    <maxplayers value="4"/>
    <playingtime value="30"/>
    <minplaytime value="30"/>
    <maxplaytime value="30"/>
    <minage value="8"/>
  </item>
  <item type="boardgameexpansion" id="2">
    <name type="primary" sortindex="1" value="Second"/>
    <description>two</description>
    <yearpublished value="2002"/>
    <minplayers value="2"/>
    <maxplayers value="4"/>
    <playingtime value="30"/>
    <minplaytime value="30"/>
    <maxplaytime value="30"/>
    <minage value="8"/>
  </item>
</items>`))
	})

	games, err := client.Things.GetMany(context.Background(), []int64{1, 2}, nil)
	require.NoError(t, err)

	require.Len(t, games, 2)
	assert.Equal(t, "First", games[0].Name)
	assert.Equal(t, bgg.ItemTypeBoardGameExpansion, games[1].Type)
}
