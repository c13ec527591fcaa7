package telegram

import (
	"encoding/json"
	"fmt"
)

// ChatBoostSource is how a chat boost was obtained, keyed by "source".
type ChatBoostSource interface {
	Value
	Source() string
}

var ChatBoostSourceFamily = NewFamily("ChatBoostSource", "source", map[string]Factory[ChatBoostSource]{
	"premium":   Variant[ChatBoostSource, ChatBoostSourcePremium](),
	"gift_code": Variant[ChatBoostSource, ChatBoostSourceGiftCode](),
	"giveaway":  Variant[ChatBoostSource, ChatBoostSourceGiveaway](),
})

type ChatBoostSourcePremium struct {
	User User `json:"user"`
}

func (s ChatBoostSourcePremium) Source() string { return "premium" }

func (s ChatBoostSourcePremium) MarshalJSON() ([]byte, error) {
	type plain ChatBoostSourcePremium
	return marshalTagged("source", s.Source(), plain(s))
}

type ChatBoostSourceGiftCode struct {
	User User `json:"user"`
}

func (s ChatBoostSourceGiftCode) Source() string { return "gift_code" }

func (s ChatBoostSourceGiftCode) MarshalJSON() ([]byte, error) {
	type plain ChatBoostSourceGiftCode
	return marshalTagged("source", s.Source(), plain(s))
}

type ChatBoostSourceGiveaway struct {
	GiveawayMessageID int64 `json:"giveaway_message_id"`
	User              *User `json:"user,omitempty"`
	PrizeStarCount    int   `json:"prize_star_count,omitempty"`
	IsUnclaimed       bool  `json:"is_unclaimed,omitempty"`
}

func (s ChatBoostSourceGiveaway) Source() string { return "giveaway" }

func (s ChatBoostSourceGiveaway) MarshalJSON() ([]byte, error) {
	type plain ChatBoostSourceGiveaway
	return marshalTagged("source", s.Source(), plain(s))
}

type ChatBoost struct {
	BoostID        string          `json:"boost_id"`
	AddDate        int64           `json:"add_date"`
	ExpirationDate int64           `json:"expiration_date"`
	Source         ChatBoostSource `json:"source"`
}

func (b ChatBoost) MarshalJSON() ([]byte, error) {
	type plain ChatBoost
	return json.Marshal(plain(b))
}

func (b *ChatBoost) UnmarshalJSON(data []byte) error {
	type plain ChatBoost
	var aux struct {
		*plain
		Source json.RawMessage `json:"source"`
	}
	aux.plain = (*plain)(b)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	src, err := ChatBoostSourceFamily.Resolve(aux.Source)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	b.Source = src
	return nil
}

type UserChatBoosts struct {
	Boosts []ChatBoost `json:"boosts"`
}

func (u UserChatBoosts) MarshalJSON() ([]byte, error) {
	type plain UserChatBoosts
	if u.Boosts == nil {
		u.Boosts = []ChatBoost{}
	}
	return json.Marshal(plain(u))
}

// ChatBoostUpdated reports a boost added to or changed in a chat.
type ChatBoostUpdated struct {
	Chat  Chat      `json:"chat"`
	Boost ChatBoost `json:"boost"`
}

func (u ChatBoostUpdated) MarshalJSON() ([]byte, error) {
	type plain ChatBoostUpdated
	return json.Marshal(plain(u))
}
