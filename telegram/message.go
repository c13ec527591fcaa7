package telegram

import (
	"encoding/json"
	"fmt"
)

// Message is a message the bot can see in full.
type Message struct {
	MessageID       int64                    `json:"message_id"`
	MessageThreadID int64                    `json:"message_thread_id,omitempty"`
	From            *User                    `json:"from,omitempty"`
	SenderChat      *Chat                    `json:"sender_chat,omitempty"`
	Date            int64                    `json:"date"`
	Chat            Chat                     `json:"chat"`
	ForwardOrigin   MessageOrigin            `json:"forward_origin,omitempty"`
	ReplyToMessage  *Message                 `json:"reply_to_message,omitempty"`
	PinnedMessage   MaybeInaccessibleMessage `json:"pinned_message,omitempty"`
	EditDate        int64                    `json:"edit_date,omitempty"`
	MediaGroupID    string                   `json:"media_group_id,omitempty"`

	Text            string          `json:"text,omitempty"`
	Entities        []MessageEntity `json:"entities,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`

	Photo     []PhotoSize    `json:"photo,omitempty"`
	Document  *Document      `json:"document,omitempty"`
	Audio     *Audio         `json:"audio,omitempty"`
	Voice     *Voice         `json:"voice,omitempty"`
	Video     *Video         `json:"video,omitempty"`
	Animation *Animation     `json:"animation,omitempty"`
	Sticker   *Sticker       `json:"sticker,omitempty"`
	PaidMedia *PaidMediaInfo `json:"paid_media,omitempty"`
	Location  *Location      `json:"location,omitempty"`
	Venue     *Venue         `json:"venue,omitempty"`
	Contact   *Contact       `json:"contact,omitempty"`

	ChatBackgroundSet *ChatBackground       `json:"chat_background_set,omitempty"`
	ReplyMarkup       *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// IsAccessible is always true for a Message.
func (m Message) IsAccessible() bool { return true }

func (m Message) MarshalJSON() ([]byte, error) {
	type plain Message
	return json.Marshal(plain(m))
}

func (m *Message) UnmarshalJSON(data []byte) error {
	type plain Message
	var aux struct {
		*plain
		ForwardOrigin json.RawMessage `json:"forward_origin"`
		PinnedMessage json.RawMessage `json:"pinned_message"`
	}
	aux.plain = (*plain)(m)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if m.ForwardOrigin, err = resolveOptional(MessageOriginFamily.Resolve, aux.ForwardOrigin); err != nil {
		return fmt.Errorf("forward_origin: %w", err)
	}
	if m.PinnedMessage, err = resolveOptional(ResolveMaybeInaccessible, aux.PinnedMessage); err != nil {
		return fmt.Errorf("pinned_message: %w", err)
	}
	return nil
}

// InaccessibleMessage is a stub for a message the bot can no longer read.
// Its Date is always 0 on the wire.
type InaccessibleMessage struct {
	Chat      Chat  `json:"chat"`
	MessageID int64 `json:"message_id"`
	Date      int64 `json:"date"`
}

// IsAccessible is always false for an InaccessibleMessage.
func (m InaccessibleMessage) IsAccessible() bool { return false }

func (m InaccessibleMessage) MarshalJSON() ([]byte, error) {
	type plain InaccessibleMessage
	m.Date = 0
	return json.Marshal(plain(m))
}

// MaybeInaccessibleMessage is either a Message or an InaccessibleMessage.
type MaybeInaccessibleMessage interface {
	Value
	IsAccessible() bool
}

// ResolveMaybeInaccessible picks the variant by the date sentinel: a date of
// 0 marks an InaccessibleMessage, any other date a full Message. A missing
// date is an error rather than a guess.
func ResolveMaybeInaccessible(data []byte) (MaybeInaccessibleMessage, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("MaybeInaccessibleMessage: %w", err)
	}
	raw, ok := fields["date"]
	if !ok || isNull(raw) {
		return nil, fmt.Errorf("MaybeInaccessibleMessage: %w", &ShapeError{Want: "date", Got: "missing"})
	}
	var date int64
	if err := json.Unmarshal(raw, &date); err != nil {
		return nil, fmt.Errorf("MaybeInaccessibleMessage: date: %w", err)
	}
	if date == 0 {
		var m InaccessibleMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// MaybeInaccessible is the shape of results that may be a message stub.
func MaybeInaccessible() Shape[MaybeInaccessibleMessage] {
	return func(raw json.RawMessage) (MaybeInaccessibleMessage, error) {
		if err := expect(raw, "object"); err != nil {
			return nil, err
		}
		return ResolveMaybeInaccessible(raw)
	}
}

// CallbackQuery is a press on an inline keyboard button.
type CallbackQuery struct {
	ID              string                   `json:"id"`
	From            User                     `json:"from"`
	Message         MaybeInaccessibleMessage `json:"message,omitempty"`
	InlineMessageID string                   `json:"inline_message_id,omitempty"`
	ChatInstance    string                   `json:"chat_instance"`
	Data            string                   `json:"data,omitempty"`
	GameShortName   string                   `json:"game_short_name,omitempty"`
}

func (q CallbackQuery) MarshalJSON() ([]byte, error) {
	type plain CallbackQuery
	return json.Marshal(plain(q))
}

func (q *CallbackQuery) UnmarshalJSON(data []byte) error {
	type plain CallbackQuery
	var aux struct {
		*plain
		Message json.RawMessage `json:"message"`
	}
	aux.plain = (*plain)(q)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if q.Message, err = resolveOptional(ResolveMaybeInaccessible, aux.Message); err != nil {
		return fmt.Errorf("message: %w", err)
	}
	return nil
}

// Update is one incoming event. At most one of the optional fields is set.
type Update struct {
	UpdateID          int64                   `json:"update_id"`
	Message           *Message                `json:"message,omitempty"`
	EditedMessage     *Message                `json:"edited_message,omitempty"`
	ChannelPost       *Message                `json:"channel_post,omitempty"`
	EditedChannelPost *Message                `json:"edited_channel_post,omitempty"`
	MessageReaction   *MessageReactionUpdated `json:"message_reaction,omitempty"`
	InlineQuery       *InlineQuery            `json:"inline_query,omitempty"`
	CallbackQuery     *CallbackQuery          `json:"callback_query,omitempty"`
	MyChatMember      *ChatMemberUpdated      `json:"my_chat_member,omitempty"`
	ChatMember        *ChatMemberUpdated      `json:"chat_member,omitempty"`
	ChatBoost         *ChatBoostUpdated       `json:"chat_boost,omitempty"`
}

func (u Update) MarshalJSON() ([]byte, error) {
	type plain Update
	return json.Marshal(plain(u))
}
