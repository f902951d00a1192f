package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func template(key string, policy Stacking, dur, max int) *Effect {
	return &Effect{
		Key:       key,
		Name:      key,
		Kind:      Buff,
		Duration:  dur,
		MaxStacks: max,
		Stacking:  policy,
	}
}

func TestApplyNewEffect(t *testing.T) {
	e := New(nil)
	var l List
	tmpl := template("rally", Refresh, 3, 1)

	r := e.Apply("a", &l, tmpl)
	assert.Equal(t, Added, r.Outcome)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, r.Effect.Stacks)
	assert.NotEmpty(t, r.Log)

	//instance must not alias the template
	r.Effect.Duration = 99
	assert.Equal(t, 3, tmpl.Duration)
}

func TestApplyStackNeverExceedsMax(t *testing.T) {
	e := New(nil)
	var l List
	tmpl := template("poison", Stack, 2, 3)
	for i := 0; i < 10; i++ {
		r := e.Apply("a", &l, tmpl)
		assert.LessOrEqual(t, r.Effect.Stacks, 3)
		assert.GreaterOrEqual(t, r.Effect.Stacks, 1)
	}
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 3, l.Find("poison").Stacks)
	assert.Equal(t, 2, l.Find("poison").Duration)
}

func TestApplyRefreshTakesMax(t *testing.T) {
	cases := []struct {
		name     string
		old, new int
		want     int
	}{
		{"longer template", 2, 5, 5},
		{"shorter template", 4, 1, 4},
		{"equal", 3, 3, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := New(nil)
			var l List
			e.Apply("a", &l, template("guard", Refresh, c.old, 1))
			r := e.Apply("a", &l, template("guard", Refresh, c.new, 1))
			assert.Equal(t, Refreshed, r.Outcome)
			assert.Equal(t, c.want, l.Find("guard").Duration)
		})
	}
}

func TestApplyExtendAdds(t *testing.T) {
	e := New(nil)
	var l List
	e.Apply("a", &l, template("burn", Extend, 2, 1))
	r := e.Apply("a", &l, template("burn", Extend, 3, 1))
	assert.Equal(t, Extended, r.Outcome)
	assert.Equal(t, 5, l.Find("burn").Duration)
}

func TestEffectiveStatsOrder(t *testing.T) {
	e := New(nil)
	var l List
	base := StatBlock{100, 50, 10, 5}

	flat := template("flat", Stack, 3, 2)
	flat.Flat[ATK] = 10
	up := template("up", Refresh, 3, 1)
	up.Percent[ATK] = 0.5
	down := template("down", Refresh, 3, 1)
	down.Percent[ATK] = -0.5

	e.Apply("a", &l, up)
	e.Apply("a", &l, flat)
	e.Apply("a", &l, flat)
	e.Apply("a", &l, down)

	//flat first (100 + 10*2), then 1.5 then 0.5, compounding
	s := EffectiveStats(base, &l)
	assert.InDelta(t, 120*1.5*0.5, s[ATK], 1e-9)
	assert.InDelta(t, 50, s[DEF], 1e-9)

	//compounding, not summing: +50% then -50% is not 1.0
	assert.NotEqual(t, 120.0, s[ATK])
}

func TestModifyDamageShieldScenario(t *testing.T) {
	e := New(nil)
	var atk, def List

	fury := template("fury", Stack, 3, 2)
	fury.DmgDealtMult = 0.5
	e.Apply("a", &atk, fury)
	e.Apply("a", &atk, fury)

	wall := template("barrier", Refresh, 3, 1)
	wall.Shield = 50
	e.Apply("b", &def, wall)

	d := e.ModifyDamage(100, &atk, &def)
	assert.Equal(t, 150, d.Final)
	assert.InDelta(t, 50, d.Absorbed, 1e-9)
	assert.Equal(t, "barrier", d.Shield)
	assert.InDelta(t, 0, def.Find("barrier").Shield, 1e-9)

	//a drained shield stays until its duration runs out
	assert.True(t, def.Has("barrier"))
	d = e.ModifyDamage(10, &List{}, &def)
	assert.Equal(t, 10, d.Final)
}

func TestModifyDamageOnlyFirstShield(t *testing.T) {
	e := New(nil)
	var def List
	s1 := template("s1", Refresh, 3, 1)
	s1.Shield = 5
	s2 := template("s2", Refresh, 3, 1)
	s2.Shield = 100
	e.Apply("b", &def, s1)
	e.Apply("b", &def, s2)

	d := e.ModifyDamage(30, nil, &def)
	assert.Equal(t, 25, d.Final)
	assert.InDelta(t, 0, def.Find("s1").Shield, 1e-9)
	assert.InDelta(t, 100, def.Find("s2").Shield, 1e-9)
}

func TestModifyDamageNeverNegative(t *testing.T) {
	e := New(nil)
	var def List
	g := template("guard", Refresh, 1, 1)
	g.DmgTakenMult = -2
	g.Shield = 10
	e.Apply("b", &def, g)

	d := e.ModifyDamage(40, nil, &def)
	assert.Equal(t, 0, d.Final)
	assert.InDelta(t, 10, def.Find("guard").Shield, 1e-9)
}

func TestModifyDamageTruncates(t *testing.T) {
	e := New(nil)
	var atk List
	x := template("x", Refresh, 1, 1)
	x.DmgDealtMult = 0.25
	e.Apply("a", &atk, x)
	assert.Equal(t, 12, e.ModifyDamage(10, &atk, nil).Final)
}

func TestTickPhases(t *testing.T) {
	e := New(nil)
	var l List

	poison := template("poison", Stack, 2, 5)
	poison.Kind = Debuff
	poison.DoT = &Periodic{Amount: 4, Type: "toxic"}
	poison.TicksAt = TurnEnd
	poison.DecaysAt = TurnEnd
	e.Apply("a", &l, poison)
	e.Apply("a", &l, poison)

	regen := template("regen", Refresh, 1, 1)
	regen.HoT = &Periodic{Amount: 7}
	regen.TicksAt = TurnStart
	regen.DecaysAt = TurnEnd
	e.Apply("a", &l, regen)

	//phase mismatch on both tags: nothing happens
	guard := template("guard", Refresh, 1, 1)
	guard.TicksAt = TurnStart
	guard.DecaysAt = TurnStart
	e.Apply("a", &l, guard)

	r := e.Tick("a", &l, TurnEnd)
	assert.Equal(t, 8, r.DoT)
	assert.Equal(t, 0, r.HoT)
	assert.Equal(t, []string{"regen"}, r.Expired)
	assert.Equal(t, []string{"poison", "guard"}, l.Keys())
	assert.Equal(t, 1, l.Find("poison").Duration)
	assert.Equal(t, 1, l.Find("guard").Duration)

	r = e.Tick("a", &l, TurnStart)
	assert.Equal(t, 0, r.DoT)
	assert.Equal(t, []string{"guard"}, r.Expired)
	assert.Equal(t, []string{"poison"}, l.Keys())
}

func TestTickIdempotentOnMismatch(t *testing.T) {
	e := New(nil)
	var l List
	burn := template("burn", Refresh, 3, 1)
	burn.DoT = &Periodic{Amount: 5}
	burn.TicksAt = TurnEnd
	burn.DecaysAt = TurnEnd
	e.Apply("a", &l, burn)

	for i := 0; i < 5; i++ {
		r := e.Tick("a", &l, TurnStart)
		assert.Zero(t, r.DoT)
		assert.Zero(t, r.HoT)
		assert.Empty(t, r.Expired)
	}
	assert.Equal(t, 3, l.Find("burn").Duration)
}

func TestCrowdControl(t *testing.T) {
	e := New(nil)
	var l List
	assert.Equal(t, CC{}, CrowdControl(&l))

	stun := template("stun", Refresh, 1, 1)
	stun.Stun = true
	e.Apply("a", &l, stun)
	taunt := template("taunt", Refresh, 1, 1)
	taunt.Taunt = true
	e.Apply("a", &l, taunt)

	assert.Equal(t, CC{Stunned: true, Taunted: true}, CrowdControl(&l))
}

func TestValidate(t *testing.T) {
	ok := template("ok", Refresh, 1, 1)
	require.NoError(t, ok.Validate())

	bad := []*Effect{
		{Key: "", Kind: Buff, Duration: 1},
		{Key: "neg", Kind: Buff, Duration: -1},
		{Key: "kind", Kind: "aura", Duration: 1},
		{Key: "phase", Kind: Buff, Duration: 1, TicksAt: "midTurn"},
		{Key: "shield", Kind: Buff, Duration: 1, Shield: -3},
		{Key: "policy", Kind: Buff, Duration: 1, Stacking: "merge"},
	}
	for _, b := range bad {
		assert.ErrorIs(t, b.Validate(), ErrInvalidTemplate, b.Key)
	}
}

func TestRegistry(t *testing.T) {
	RegisterTemplate(Effect{Key: "test-registry", Name: "Test", Kind: Buff, Duration: 2})
	got, err := Template("test-registry")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stacks)
	assert.Equal(t, Refresh, got.Stacking)
	assert.Contains(t, Registered(), "test-registry")

	_, err = Template("nope")
	assert.Error(t, err)

	assert.Panics(t, func() {
		RegisterTemplate(Effect{Key: "test-registry", Kind: Buff, Duration: 1})
	})
	assert.Panics(t, func() {
		RegisterTemplate(Effect{Key: "bad", Kind: Buff, Duration: 0})
	})
}
