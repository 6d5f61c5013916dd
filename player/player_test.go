package player

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/tock/board"
	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/config"
	"github.com/domino14/tock/game"
	"github.com/domino14/tock/move"
)

func testSituation() game.Situation {
	return game.Situation{
		Board:     board.NewDefaultBoard(),
		Seat:      1,
		Nickname:  "bot",
		Color:     board.Blue,
		Hand:      cards.MustFromStrings("AH", "5S", "KD"),
		PiecesOut: 2,
	}
}

func testOptions() []move.Move {
	c := cards.MustFromStrings("5S")[0]
	return []move.Move{
		move.NewRingMove(board.Coord{Color: board.Blue, Index: 1}, board.Coord{Color: board.Blue, Index: 6}, 5, c, board.Blue),
		move.NewRingMove(board.Coord{Color: board.Blue, Index: 9}, board.Coord{Color: board.Blue, Index: 14}, 5, c, board.Blue),
	}
}

func TestRandomKeepsExitCards(t *testing.T) {
	is := is.New(t)
	p := NewRandomPlayer("r")
	hand := cards.MustFromStrings("AH", "5S", "KD")
	for i := 0; i < 50; i++ {
		c, err := p.ChooseCard(context.Background(), testSituation(), hand)
		is.NoErr(err)
		is.Equal(c.String(), "♠5")
	}
	// Nothing but exit cards: one of them has to go.
	only := cards.MustFromStrings("AH", "KD")
	c, err := p.ChooseCard(context.Background(), testSituation(), only)
	is.NoErr(err)
	is.True(c.IsExitCard())
}

func TestRandomPicksAnOption(t *testing.T) {
	is := is.New(t)
	p := NewRandomPlayer("r")
	opts := testOptions()
	for i := 0; i < 20; i++ {
		m, err := p.ChooseMove(context.Background(), testSituation(), opts)
		is.NoErr(err)
		is.True(m == opts[0] || m == opts[1])
	}
	ok, err := p.ConfirmSevenSplit(context.Background(), testSituation(), nil)
	is.NoErr(err)
	is.True(ok)
}

const furthestScript = `
seen = 0
function choose_move(sit, options)
  local best, bestd = 1, -100
  for i, o in ipairs(options) do
    local d = tonumber(string.match(o.target, "%d+$"))
    if d > bestd then best, bestd = i, d end
  end
  return best
end

function choose_card(sit, hand)
  for i, c in ipairs(hand) do
    if c.value ~= "A" and c.value ~= "K" then return i end
  end
  return 1
end

function confirm_seven(sit, plan)
  return #plan > 0
end

function notify(evt)
  seen = seen + 1
end
`

func TestLuaChoosesByScript(t *testing.T) {
	is := is.New(t)
	p, err := NewLuaPlayerFromString("lua", furthestScript)
	is.NoErr(err)
	defer p.Close()
	opts := testOptions()
	m, err := p.ChooseMove(context.Background(), testSituation(), opts)
	is.NoErr(err)
	is.Equal(m, opts[1])

	c, err := p.ChooseCard(context.Background(), testSituation(), cards.MustFromStrings("AH", "KD", "3C"))
	is.NoErr(err)
	is.Equal(c.String(), "♣3")

	ok, err := p.ConfirmSevenSplit(context.Background(), testSituation(), nil)
	is.NoErr(err)
	is.True(!ok)

	p.Notify(game.Event{Kind: game.EventMove})
	p.Notify(game.Event{Kind: game.EventWin})
	is.Equal(p.L.GetGlobal("seen").String(), "2")
}

func TestLuaMissingHooksTakeFirst(t *testing.T) {
	is := is.New(t)
	p, err := NewLuaPlayerFromString("lua", `x = 1`)
	is.NoErr(err)
	defer p.Close()
	opts := testOptions()
	m, err := p.ChooseSevenStep(context.Background(), testSituation(), opts)
	is.NoErr(err)
	is.Equal(m, opts[0])
	ok, err := p.ConfirmSevenSplit(context.Background(), testSituation(), opts)
	is.NoErr(err)
	is.True(ok)
}

func TestLuaBadIndex(t *testing.T) {
	is := is.New(t)
	p, err := NewLuaPlayerFromString("lua", `function choose_move(s, o) return #o + 1 end`)
	is.NoErr(err)
	defer p.Close()
	_, err = p.ChooseMove(context.Background(), testSituation(), testOptions())
	is.True(err != nil)
}

func TestLuaHonorsContext(t *testing.T) {
	is := is.New(t)
	p, err := NewLuaPlayerFromString("lua", `function choose_move(s, o) while true do end end`)
	is.NoErr(err)
	defer p.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = p.ChooseMove(ctx, testSituation(), testOptions())
	is.True(err != nil)
}

func TestLuaJSONModule(t *testing.T) {
	is := is.New(t)
	p, err := NewLuaPlayerFromString("lua", `
local json = require("json")
last = ""
function choose_move(sit, options)
  last = json.encode(options[2])
  local back = json.decode(last)
  for i, o in ipairs(options) do
    if o.target == back.target then return i end
  end
  return 1
end
`)
	is.NoErr(err)
	defer p.Close()
	opts := testOptions()
	m, err := p.ChooseMove(context.Background(), testSituation(), opts)
	is.NoErr(err)
	is.Equal(m, opts[1])
	is.True(strings.Contains(p.L.GetGlobal("last").String(), `"target":"blue-14"`))
}

func TestLuaHTTPModule(t *testing.T) {
	is := is.New(t)
	seen := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen <- string(body)
		fmt.Fprint(w, "2")
	}))
	defer srv.Close()

	p, err := NewLuaPlayerFromString("lua", fmt.Sprintf(`
local http = require("http")
local json = require("json")
function choose_move(sit, options)
  local resp, err = http.post(%q, {body = json.encode(sit)})
  if resp == nil then error(err) end
  return tonumber(resp.body)
end
`, srv.URL))
	is.NoErr(err)
	defer p.Close()
	opts := testOptions()
	m, err := p.ChooseMove(context.Background(), testSituation(), opts)
	is.NoErr(err)
	is.Equal(m, opts[1])
	is.True(strings.Contains(<-seen, `"color":"blue"`))
}

func TestLuaFromFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "bot.lua")
	is.NoErr(os.WriteFile(path, []byte(furthestScript), 0o644))
	p, err := NewLuaPlayer("lua", path)
	is.NoErr(err)
	defer p.Close()

	_, err = NewLuaPlayer("lua", filepath.Join(t.TempDir(), "missing.lua"))
	is.True(err != nil)
}

const greedyScript = `
function choose_move(sit, options)
  for i, o in ipairs(options) do
    if o.action == "ENTER" or o.action == "OUT" then return i end
  end
  return #options
end
`

func TestBotsFinishGames(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 3; i++ {
		lp, err := NewLuaPlayerFromString("lua", greedyScript)
		is.NoErr(err)
		cfg := config.DefaultConfig()
		cfg.Set(config.ConfigMaxTurns, 3000)
		g, err := game.NewGame(cfg, cards.NewDeck(), []game.PlayerInfo{
			{Nickname: "r0", Player: NewRandomPlayer("r0")},
			{Nickname: "l1", Player: lp},
			{Nickname: "r2", Player: NewRandomPlayer("r2")},
			{Nickname: "r3", Player: NewRandomPlayer("r3")},
		})
		is.NoErr(err)
		err = g.Play(context.Background())
		if err != nil {
			is.Equal(err, game.ErrTurnLimit)
		} else {
			is.Equal(g.Playing(), game.PlayStateGameOver)
		}
		lp.Close()
	}
}
