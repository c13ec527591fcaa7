package telegram

// MessageOrigin describes where a forwarded message came from.
type MessageOrigin interface {
	Value
	Type() string
}

var MessageOriginFamily = NewFamily("MessageOrigin", "type", map[string]Factory[MessageOrigin]{
	"user":        Variant[MessageOrigin, MessageOriginUser](),
	"hidden_user": Variant[MessageOrigin, MessageOriginHiddenUser](),
	"chat":        Variant[MessageOrigin, MessageOriginChat](),
	"channel":     Variant[MessageOrigin, MessageOriginChannel](),
})

type MessageOriginUser struct {
	Date       int64 `json:"date"`
	SenderUser User  `json:"sender_user"`
}

func (o MessageOriginUser) Type() string { return "user" }

func (o MessageOriginUser) MarshalJSON() ([]byte, error) {
	type plain MessageOriginUser
	return marshalTagged("type", o.Type(), plain(o))
}

type MessageOriginHiddenUser struct {
	Date           int64  `json:"date"`
	SenderUserName string `json:"sender_user_name"`
}

func (o MessageOriginHiddenUser) Type() string { return "hidden_user" }

func (o MessageOriginHiddenUser) MarshalJSON() ([]byte, error) {
	type plain MessageOriginHiddenUser
	return marshalTagged("type", o.Type(), plain(o))
}

type MessageOriginChat struct {
	Date            int64  `json:"date"`
	SenderChat      Chat   `json:"sender_chat"`
	AuthorSignature string `json:"author_signature,omitempty"`
}

func (o MessageOriginChat) Type() string { return "chat" }

func (o MessageOriginChat) MarshalJSON() ([]byte, error) {
	type plain MessageOriginChat
	return marshalTagged("type", o.Type(), plain(o))
}

type MessageOriginChannel struct {
	Date            int64  `json:"date"`
	Chat            Chat   `json:"chat"`
	MessageID       int64  `json:"message_id"`
	AuthorSignature string `json:"author_signature,omitempty"`
}

func (o MessageOriginChannel) Type() string { return "channel" }

func (o MessageOriginChannel) MarshalJSON() ([]byte, error) {
	type plain MessageOriginChannel
	return marshalTagged("type", o.Type(), plain(o))
}
