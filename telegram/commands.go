package telegram

// BotCommandScope selects the users a command list applies to.
type BotCommandScope interface {
	Value
	Type() string
}

var BotCommandScopeFamily = NewFamily("BotCommandScope", "type", map[string]Factory[BotCommandScope]{
	"default":                 Variant[BotCommandScope, BotCommandScopeDefault](),
	"all_private_chats":       Variant[BotCommandScope, BotCommandScopeAllPrivateChats](),
	"all_group_chats":         Variant[BotCommandScope, BotCommandScopeAllGroupChats](),
	"all_chat_administrators": Variant[BotCommandScope, BotCommandScopeAllChatAdministrators](),
	"chat":                    Variant[BotCommandScope, BotCommandScopeChat](),
	"chat_administrators":     Variant[BotCommandScope, BotCommandScopeChatAdministrators](),
	"chat_member":             Variant[BotCommandScope, BotCommandScopeChatMember](),
})

type BotCommandScopeDefault struct{}

func (s BotCommandScopeDefault) Type() string { return "default" }

func (s BotCommandScopeDefault) MarshalJSON() ([]byte, error) {
	type plain BotCommandScopeDefault
	return marshalTagged("type", s.Type(), plain(s))
}

type BotCommandScopeAllPrivateChats struct{}

func (s BotCommandScopeAllPrivateChats) Type() string { return "all_private_chats" }

func (s BotCommandScopeAllPrivateChats) MarshalJSON() ([]byte, error) {
	type plain BotCommandScopeAllPrivateChats
	return marshalTagged("type", s.Type(), plain(s))
}

type BotCommandScopeAllGroupChats struct{}

func (s BotCommandScopeAllGroupChats) Type() string { return "all_group_chats" }

func (s BotCommandScopeAllGroupChats) MarshalJSON() ([]byte, error) {
	type plain BotCommandScopeAllGroupChats
	return marshalTagged("type", s.Type(), plain(s))
}

type BotCommandScopeAllChatAdministrators struct{}

func (s BotCommandScopeAllChatAdministrators) Type() string { return "all_chat_administrators" }

func (s BotCommandScopeAllChatAdministrators) MarshalJSON() ([]byte, error) {
	type plain BotCommandScopeAllChatAdministrators
	return marshalTagged("type", s.Type(), plain(s))
}

type BotCommandScopeChat struct {
	ChatID ChatID `json:"chat_id"`
}

func (s BotCommandScopeChat) Type() string { return "chat" }

func (s BotCommandScopeChat) MarshalJSON() ([]byte, error) {
	type plain BotCommandScopeChat
	return marshalTagged("type", s.Type(), plain(s))
}

type BotCommandScopeChatAdministrators struct {
	ChatID ChatID `json:"chat_id"`
}

func (s BotCommandScopeChatAdministrators) Type() string { return "chat_administrators" }

func (s BotCommandScopeChatAdministrators) MarshalJSON() ([]byte, error) {
	type plain BotCommandScopeChatAdministrators
	return marshalTagged("type", s.Type(), plain(s))
}

type BotCommandScopeChatMember struct {
	ChatID ChatID `json:"chat_id"`
	UserID int64  `json:"user_id"`
}

func (s BotCommandScopeChatMember) Type() string { return "chat_member" }

func (s BotCommandScopeChatMember) MarshalJSON() ([]byte, error) {
	type plain BotCommandScopeChatMember
	return marshalTagged("type", s.Type(), plain(s))
}

// MenuButton is the bot's menu button in a private chat.
type MenuButton interface {
	Value
	Type() string
}

var MenuButtonFamily = NewFamily("MenuButton", "type", map[string]Factory[MenuButton]{
	"commands": Variant[MenuButton, MenuButtonCommands](),
	"web_app":  Variant[MenuButton, MenuButtonWebApp](),
	"default":  Variant[MenuButton, MenuButtonDefault](),
})

type MenuButtonCommands struct{}

func (b MenuButtonCommands) Type() string { return "commands" }

func (b MenuButtonCommands) MarshalJSON() ([]byte, error) {
	type plain MenuButtonCommands
	return marshalTagged("type", b.Type(), plain(b))
}

type MenuButtonWebApp struct {
	Text   string     `json:"text"`
	WebApp WebAppInfo `json:"web_app"`
}

func (b MenuButtonWebApp) Type() string { return "web_app" }

func (b MenuButtonWebApp) MarshalJSON() ([]byte, error) {
	type plain MenuButtonWebApp
	return marshalTagged("type", b.Type(), plain(b))
}

type MenuButtonDefault struct{}

func (b MenuButtonDefault) Type() string { return "default" }

func (b MenuButtonDefault) MarshalJSON() ([]byte, error) {
	type plain MenuButtonDefault
	return marshalTagged("type", b.Type(), plain(b))
}

var (
	_ BotCommandScope = BotCommandScopeChatMember{}
	_ MenuButton      = MenuButtonWebApp{}
)
