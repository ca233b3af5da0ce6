package battle

import (
	"github.com/samdwyer/netbattle/internal/stategraph"
)

// SoloStates exposes the constructed states so the loop and the renderer can
// query them directly.
type SoloStates struct {
	Intro       *IntroState
	CardSelect  *CardSelectState
	ComboCheck  *ComboCheckState
	FormChange  *FormChangeState
	BattleStart *BattleStartState
	Combat      *CombatState
	TimeFreeze  *TimeFreezeState
	BattleOver  *BattleOverState
	Rewards     *RewardsState
	Retreat     *RetreatState
	FadeOut     *FadeOutState
}

// BuildSoloGraph wires the solo battle flow. Edge declaration order is edge
// priority: within combat, defeat and victory outrank the interrupts, and
// interrupts outrank the gauge loop.
func BuildSoloGraph(session *Session) (*stategraph.Graph, *SoloStates) {
	g := stategraph.New()

	st := &SoloStates{
		Intro:       NewIntroState(session),
		CardSelect:  NewCardSelectState(session),
		ComboCheck:  NewComboCheckState(session),
		FormChange:  NewFormChangeState(session),
		BattleStart: NewBattleStartState(),
		Combat:      NewCombatState(session),
		TimeFreeze:  NewTimeFreezeState(session),
		BattleOver:  NewBattleOverState(),
		Rewards:     NewRewardsState(session),
		Retreat:     NewRetreatState(session),
		FadeOut:     NewFadeOutState(session),
	}

	intro := g.Add(st.Intro)
	cardSelect := g.Add(st.CardSelect)
	comboCheck := g.Add(st.ComboCheck)
	formChange := g.Add(st.FormChange)
	battleStart := g.Add(st.BattleStart)
	combat := g.Add(st.Combat)
	timeFreeze := g.Add(st.TimeFreeze)
	battleOver := g.Add(st.BattleOver)
	rewards := g.Add(st.Rewards)
	retreat := g.Add(st.Retreat)
	fadeOut := g.Add(st.FadeOut)

	intro.ChangeOnEvent(cardSelect, st.Intro.IntroComplete)

	cardSelect.
		ChangeOnEvent(retreat, st.CardSelect.RetreatRequested).
		ChangeOnEvent(comboCheck, st.CardSelect.NewCardsChosen).
		ChangeOnEvent(formChange, st.CardSelect.FormChosenOnly).
		ChangeOnEvent(battleStart, st.CardSelect.ConfirmedEmpty)

	comboCheck.
		ChangeOnEvent(formChange, func() bool {
			return st.ComboCheck.IsDone() && st.CardSelect.FormChosen()
		}).
		ChangeOnEvent(battleStart, st.ComboCheck.IsDone)

	formChange.ChangeOnEvent(battleStart, func() bool {
		return st.FormChange.AnimationFinished() && combatNotEntered(session)
	})
	formChange.ChangeOnEvent(combat, st.FormChange.AnimationFinished)

	battleStart.ChangeOnEvent(combat, st.BattleStart.BannerDone)

	combat.
		ChangeOnEvent(fadeOut, st.Combat.PlayerLost).
		ChangeOnEvent(battleOver, st.Combat.PlayerWon).
		ChangeOnEvent(timeFreeze, st.Combat.TimeFreezePending).
		ChangeOnEvent(formChange, st.Combat.FormShouldChange).
		ChangeOnEvent(cardSelect, st.Combat.GaugeFull)

	timeFreeze.ChangeOnEvent(combat, st.TimeFreeze.IsOver)

	battleOver.ChangeOnEvent(rewards, st.BattleOver.MessageDone)
	rewards.ChangeOnEvent(fadeOut, st.Rewards.Dismissed)

	retreat.
		ChangeOnEvent(fadeOut, st.Retreat.Escaped).
		ChangeOnEvent(combat, st.Retreat.Refused)

	g.Start(intro.Handle())
	return g, st
}

// combatNotEntered distinguishes the pre-round form change, which proceeds
// to the start banner, from a mid-round decross, which returns to combat.
func combatNotEntered(session *Session) bool {
	return session.Gauge == 0
}

// NetworkStates exposes the networked graph's states.
type NetworkStates struct {
	ConnectGate *SyncGateState
	CardSelect  *CardSelectState
	CardGate    *SyncGateState
	ComboCheck  *ComboCheckState
	ComboGate   *SyncGateState
	FormChange  *FormChangeState
	BattleStart *BattleStartState
	Combat      *CombatState
	TimeFreeze  *TimeFreezeState
	BattleOver  *BattleOverState
	FadeOut     *FadeOutState
}

// BuildNetworkGraph wires the head-to-head flow: every card-select round is
// bracketed by sync gates so combat never starts with a partially-known
// opponent hand, and any abort condition routes to fade-out from anywhere.
func BuildNetworkGraph(session *Session, link *NetLink) (*stategraph.Graph, *NetworkStates) {
	g := stategraph.New()

	st := &NetworkStates{
		ConnectGate: NewSyncGateState(link, SyncConnect, false),
		CardSelect:  NewCardSelectState(session),
		CardGate:    NewSyncGateState(link, SyncHandshake, true),
		ComboCheck:  NewComboCheckState(session),
		ComboGate:   NewSyncGateState(link, SyncCombo, false),
		FormChange:  NewFormChangeState(session),
		BattleStart: NewBattleStartState(),
		Combat:      NewCombatState(session),
		TimeFreeze:  NewTimeFreezeState(session),
		BattleOver:  NewBattleOverState(),
		FadeOut:     NewFadeOutState(session),
	}
	link.AttachBattleStart(st.BattleStart)

	st.CardSelect.OnOpen = link.SendCardSelectOpen
	st.CardSelect.OnConfirm = link.SendHandshake
	st.FormChange.OnApplied = link.SendForm
	st.Combat.OnDefeat = link.SendLoser
	st.Combat.OnCardUsed = func(id string) { link.QueueInput("use_card") }

	connectGate := g.Add(st.ConnectGate)
	cardSelect := g.Add(st.CardSelect)
	cardGate := g.Add(st.CardGate)
	comboCheck := g.Add(st.ComboCheck)
	comboGate := g.Add(st.ComboGate)
	formChange := g.Add(st.FormChange)
	battleStart := g.Add(st.BattleStart)
	combat := g.Add(st.Combat)
	timeFreeze := g.Add(st.TimeFreeze)
	battleOver := g.Add(st.BattleOver)
	fadeOut := g.Add(st.FadeOut)

	aborted := func() bool { return session.AbortRequested }
	remoteConceded := func() bool { return link.Remote.RemoteLoser }

	connectGate.
		ChangeOnEvent(fadeOut, aborted).
		ChangeOnEvent(cardSelect, func() bool {
			return st.ConnectGate.Ready() && link.Remote.RemoteConnected
		})

	cardSelect.
		ChangeOnEvent(fadeOut, aborted).
		ChangeOnEvent(cardGate, func() bool {
			return st.CardSelect.NewCardsChosen() ||
				st.CardSelect.FormChosenOnly() ||
				st.CardSelect.ConfirmedEmpty()
		})

	cardGate.
		ChangeOnEvent(fadeOut, aborted).
		ChangeOnEvent(comboCheck, st.CardGate.Ready)

	comboCheck.
		ChangeOnEvent(fadeOut, aborted).
		ChangeOnEvent(comboGate, st.ComboCheck.IsDone)

	comboGate.
		ChangeOnEvent(fadeOut, aborted).
		ChangeOnEvent(formChange, func() bool {
			return st.ComboGate.Ready() && session.FormShouldChange()
		}).
		ChangeOnEvent(battleStart, st.ComboGate.Ready)

	formChange.ChangeOnEvent(battleStart, func() bool {
		return st.FormChange.AnimationFinished() && combatNotEntered(session)
	})
	formChange.ChangeOnEvent(combat, st.FormChange.AnimationFinished)

	battleStart.ChangeOnEvent(combat, st.BattleStart.BannerDone)

	combat.
		ChangeOnEvent(fadeOut, aborted).
		ChangeOnEvent(battleOver, remoteConceded).
		ChangeOnEvent(fadeOut, st.Combat.PlayerLost).
		ChangeOnEvent(battleOver, st.Combat.PlayerWon).
		ChangeOnEvent(timeFreeze, st.Combat.TimeFreezePending).
		ChangeOnEvent(formChange, st.Combat.FormShouldChange).
		ChangeOnEvent(cardSelect, st.Combat.GaugeFull)

	timeFreeze.ChangeOnEvent(combat, st.TimeFreeze.IsOver)

	battleOver.ChangeOnEvent(fadeOut, st.BattleOver.MessageDone)

	g.Start(connectGate.Handle())
	link.SendConnect()
	return g, st
}
