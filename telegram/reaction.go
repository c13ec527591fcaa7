package telegram

import (
	"encoding/json"
	"fmt"
)

// ReactionType is a reaction on a message.
type ReactionType interface {
	Value
	Type() string
}

var ReactionTypeFamily = NewFamily("ReactionType", "type", map[string]Factory[ReactionType]{
	"emoji":        Variant[ReactionType, ReactionTypeEmoji](),
	"custom_emoji": Variant[ReactionType, ReactionTypeCustomEmoji](),
	"paid":         Variant[ReactionType, ReactionTypePaid](),
})

type ReactionTypeEmoji struct {
	Emoji string `json:"emoji"`
}

func (r ReactionTypeEmoji) Type() string { return "emoji" }

func (r ReactionTypeEmoji) MarshalJSON() ([]byte, error) {
	type plain ReactionTypeEmoji
	return marshalTagged("type", r.Type(), plain(r))
}

type ReactionTypeCustomEmoji struct {
	CustomEmojiID string `json:"custom_emoji_id"`
}

func (r ReactionTypeCustomEmoji) Type() string { return "custom_emoji" }

func (r ReactionTypeCustomEmoji) MarshalJSON() ([]byte, error) {
	type plain ReactionTypeCustomEmoji
	return marshalTagged("type", r.Type(), plain(r))
}

// ReactionTypePaid carries no data besides its type.
type ReactionTypePaid struct{}

func (r ReactionTypePaid) Type() string { return "paid" }

func (r ReactionTypePaid) MarshalJSON() ([]byte, error) {
	type plain ReactionTypePaid
	return marshalTagged("type", r.Type(), plain(r))
}

// MessageReactionUpdated reports a user changing reactions on a message.
type MessageReactionUpdated struct {
	Chat        Chat           `json:"chat"`
	MessageID   int64          `json:"message_id"`
	User        *User          `json:"user,omitempty"`
	ActorChat   *Chat          `json:"actor_chat,omitempty"`
	Date        int64          `json:"date"`
	OldReaction []ReactionType `json:"old_reaction"`
	NewReaction []ReactionType `json:"new_reaction"`
}

func (u MessageReactionUpdated) MarshalJSON() ([]byte, error) {
	type plain MessageReactionUpdated
	if u.OldReaction == nil {
		u.OldReaction = []ReactionType{}
	}
	if u.NewReaction == nil {
		u.NewReaction = []ReactionType{}
	}
	return json.Marshal(plain(u))
}

func (u *MessageReactionUpdated) UnmarshalJSON(data []byte) error {
	type plain MessageReactionUpdated
	var aux struct {
		*plain
		OldReaction []json.RawMessage `json:"old_reaction"`
		NewReaction []json.RawMessage `json:"new_reaction"`
	}
	aux.plain = (*plain)(u)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if u.OldReaction, err = resolveAll(ReactionTypeFamily.Resolve, aux.OldReaction); err != nil {
		return fmt.Errorf("old_reaction%w", err)
	}
	if u.NewReaction, err = resolveAll(ReactionTypeFamily.Resolve, aux.NewReaction); err != nil {
		return fmt.Errorf("new_reaction%w", err)
	}
	return nil
}
