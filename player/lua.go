package player

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/game"
	"github.com/domino14/tock/move"
)

// Script hooks. Each gets a table describing the situation and an array of
// options, and returns the 1-based index of its pick (or a boolean for
// confirm_seven). A missing hook means "take the first option".
const (
	hookChooseCard   = "choose_card"
	hookChooseMove   = "choose_move"
	hookChooseStep   = "choose_seven_step"
	hookConfirmSeven = "confirm_seven"
	hookNotify       = "notify"
)

var errBadPick = errors.New("script returned an index out of range")

// LuaPlayer runs a Lua script to make its decisions. An LState is not safe
// for concurrent use, so every call into the script is serialized.
type LuaPlayer struct {
	sync.Mutex
	name string
	L    *lua.LState
}

// NewLuaPlayer loads the script at path.
func NewLuaPlayer(name, path string) (*LuaPlayer, error) {
	p := newLuaPlayer(name)
	if err := p.L.DoFile(path); err != nil {
		p.L.Close()
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return p, nil
}

// NewLuaPlayerFromString loads the script from source.
func NewLuaPlayerFromString(name, source string) (*LuaPlayer, error) {
	p := newLuaPlayer(name)
	if err := p.L.DoString(source); err != nil {
		p.L.Close()
		return nil, err
	}
	return p, nil
}

// newLuaPlayer sets up a state with the json and http modules preloaded,
// so a script can ask an outside service for its decisions.
func newLuaPlayer(name string) *LuaPlayer {
	L := lua.NewState()
	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{Timeout: 30 * time.Second}).Loader)
	L.SetGlobal("tock_log", L.NewFunction(func(L *lua.LState) int {
		log.Info().Str("bot", name).Msg(L.ToString(1))
		return 0
	}))
	return &LuaPlayer{name: name, L: L}
}

func (p *LuaPlayer) Close() {
	p.Lock()
	defer p.Unlock()
	p.L.Close()
}

func (p *LuaPlayer) situationTable(sit game.Situation) *lua.LTable {
	t := p.L.NewTable()
	t.RawSetString("seat", lua.LNumber(sit.Seat))
	t.RawSetString("color", lua.LString(sit.Color.String()))
	t.RawSetString("pieces_out", lua.LNumber(sit.PiecesOut))
	hand := p.L.NewTable()
	for _, c := range sit.Hand {
		hand.Append(p.cardTable(c))
	}
	t.RawSetString("hand", hand)
	return t
}

func (p *LuaPlayer) cardTable(c cards.Card) *lua.LTable {
	t := p.L.NewTable()
	t.RawSetString("value", lua.LString(c.Value.String()))
	t.RawSetString("suit", lua.LString(c.Suit.Letter()))
	t.RawSetString("steps", lua.LNumber(c.NumValue()))
	return t
}

func (p *LuaPlayer) moveTable(m move.Move) *lua.LTable {
	t := p.L.NewTable()
	t.RawSetString("action", lua.LString(m.Action().String()))
	t.RawSetString("origin", lua.LString(m.Origin().String()))
	t.RawSetString("target", lua.LString(m.Target().String()))
	t.RawSetString("distance", lua.LNumber(m.Distance()))
	t.RawSetString("card", p.cardTable(m.Card()))
	return t
}

// call runs hook with the given arguments and returns its single result,
// or nil if the script doesn't define the hook.
func (p *LuaPlayer) call(ctx context.Context, hook string, args ...lua.LValue) (lua.LValue, error) {
	fn := p.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return nil, nil
	}
	p.L.SetContext(ctx)
	defer p.L.RemoveContext()
	err := p.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", hook, err)
	}
	ret := p.L.Get(-1)
	p.L.Pop(1)
	return ret, nil
}

func (p *LuaPlayer) pick(ctx context.Context, hook string, sit game.Situation, n int,
	option func(i int) *lua.LTable) (int, error) {

	p.Lock()
	defer p.Unlock()
	opts := p.L.NewTable()
	for i := 0; i < n; i++ {
		opts.Append(option(i))
	}
	ret, err := p.call(ctx, hook, p.situationTable(sit), opts)
	if err != nil || ret == nil {
		return 0, err
	}
	idx := int(lua.LVAsNumber(ret)) - 1
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("%w: %s gave %v for %d options", errBadPick, hook, ret, n)
	}
	return idx, nil
}

func (p *LuaPlayer) ChooseCard(ctx context.Context, sit game.Situation, hand []cards.Card) (cards.Card, error) {
	i, err := p.pick(ctx, hookChooseCard, sit, len(hand), func(i int) *lua.LTable {
		return p.cardTable(hand[i])
	})
	if err != nil {
		return cards.Card{}, err
	}
	return hand[i], nil
}

func (p *LuaPlayer) ChooseMove(ctx context.Context, sit game.Situation, options []move.Move) (move.Move, error) {
	i, err := p.pick(ctx, hookChooseMove, sit, len(options), func(i int) *lua.LTable {
		return p.moveTable(options[i])
	})
	if err != nil {
		return move.Move{}, err
	}
	return options[i], nil
}

func (p *LuaPlayer) ChooseSevenStep(ctx context.Context, sit game.Situation, options []move.Move) (move.Move, error) {
	i, err := p.pick(ctx, hookChooseStep, sit, len(options), func(i int) *lua.LTable {
		return p.moveTable(options[i])
	})
	if err != nil {
		return move.Move{}, err
	}
	return options[i], nil
}

func (p *LuaPlayer) ConfirmSevenSplit(ctx context.Context, sit game.Situation, plan []move.Move) (bool, error) {
	p.Lock()
	defer p.Unlock()
	steps := p.L.NewTable()
	for _, m := range plan {
		steps.Append(p.moveTable(m))
	}
	ret, err := p.call(ctx, hookConfirmSeven, p.situationTable(sit), steps)
	if err != nil {
		return false, err
	}
	if ret == nil {
		return true, nil
	}
	return lua.LVAsBool(ret), nil
}

func (p *LuaPlayer) Notify(evt game.Event) {
	p.Lock()
	defer p.Unlock()
	t := p.L.NewTable()
	t.RawSetString("kind", lua.LString(evt.Kind))
	t.RawSetString("player", lua.LString(evt.PlayerID))
	t.RawSetString("origin", lua.LString(evt.Origin))
	t.RawSetString("target", lua.LString(evt.Target))
	t.RawSetString("color", lua.LString(evt.Color))
	if _, err := p.call(context.Background(), hookNotify, t); err != nil {
		log.Err(err).Str("bot", p.name).Msg("lua-notify-failed")
	}
}
