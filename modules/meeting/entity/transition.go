package entity

import "github.com/google/uuid"

type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionCancel  Action = "cancel"
	ActionConfirm Action = "confirm"
)

type Actor int

const (
	ActorReceiver Actor = iota
	ActorRequester
	ActorEither
)

type Transition struct {
	From  Status
	To    Status
	Actor Actor
}

var transitions = map[Action]Transition{
	ActionAccept:  {From: StatusPending, To: StatusAccepted, Actor: ActorReceiver},
	ActionDecline: {From: StatusPending, To: StatusDeclined, Actor: ActorReceiver},
	ActionCancel:  {From: StatusPending, To: StatusCanceled, Actor: ActorRequester},
	ActionConfirm: {From: StatusAccepted, To: StatusConfirmed, Actor: ActorEither},
}

func TransitionFor(action Action) (Transition, bool) {
	t, ok := transitions[action]
	return t, ok
}

// Allows reports whether userID may perform t on m.
func (t Transition) Allows(m *Meeting, userID uuid.UUID) bool {
	switch t.Actor {
	case ActorReceiver:
		return m.ReceiverID == userID
	case ActorRequester:
		return m.RequesterID == userID
	default:
		return m.IsParty(userID)
	}
}
