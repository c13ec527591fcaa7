package telegram

import (
	"context"
	"log/slog"
	"time"
)

// optional maps the zero value to nil so the parameter is left unset.
func optional[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

// GetMe returns the bot's own user.
func (c *Client) GetMe(ctx context.Context) (User, error) {
	return Invoke(ctx, c, NewRequest("getMe"), Object[User]())
}

// SendMessageOptions are the optional parameters of SendMessage.
type SendMessageOptions struct {
	MessageThreadID     int64
	ParseMode           string
	Entities            []MessageEntity
	DisableNotification bool
	ProtectContent      bool
	ReplyToMessageID    int64
	ReplyMarkup         *InlineKeyboardMarkup
}

// SendMessage sends a text message.
func (c *Client) SendMessage(ctx context.Context, chatID ChatID, text string, opts *SendMessageOptions) (Message, error) {
	if opts == nil {
		opts = &SendMessageOptions{}
	}
	req := NewRequest("sendMessage").
		Set("chat_id", chatID).
		Set("message_thread_id", optional(opts.MessageThreadID)).
		Set("text", text).
		Set("parse_mode", optional(opts.ParseMode)).
		Set("entities", opts.Entities).
		Set("disable_notification", optional(opts.DisableNotification)).
		Set("protect_content", optional(opts.ProtectContent)).
		Set("reply_markup", opts.ReplyMarkup)
	if opts.ReplyToMessageID != 0 {
		var reply Params
		reply.Set("message_id", opts.ReplyToMessageID)
		req.Set("reply_parameters", reply)
	}

	msg, err := Invoke(ctx, c, req, Object[Message]())
	if err != nil {
		return Message{}, err
	}
	slog.Debug("message sent", "component", "telegram", "operation", "send", "chat_id", chatID.String(), "message_id", msg.MessageID)
	return msg, nil
}

// ForwardMessage forwards a message of any kind.
func (c *Client) ForwardMessage(ctx context.Context, chatID, fromChatID ChatID, messageID int64) (Message, error) {
	req := NewRequest("forwardMessage").
		Set("chat_id", chatID).
		Set("from_chat_id", fromChatID).
		Set("message_id", messageID)
	return Invoke(ctx, c, req, Object[Message]())
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, chatID ChatID, messageID int64) error {
	req := NewRequest("deleteMessage").
		Set("chat_id", chatID).
		Set("message_id", messageID)
	_, err := Invoke(ctx, c, req, True())
	return err
}

// SetMessageReaction replaces the bot's reactions on a message. An empty
// list is left out of the request, which the Bot API reads as "remove all".
func (c *Client) SetMessageReaction(ctx context.Context, chatID ChatID, messageID int64, reactions []ReactionType, isBig bool) error {
	slog.Debug("setting reaction", "component", "telegram", "operation", "react", "chat_id", chatID.String(), "count", len(reactions))
	req := NewRequest("setMessageReaction").
		Set("chat_id", chatID).
		Set("message_id", messageID).
		Set("reaction", reactions).
		Set("is_big", optional(isBig))
	_, err := Invoke(ctx, c, req, True())
	return err
}

// GetChatMember returns one member of a chat, resolved by its status.
func (c *Client) GetChatMember(ctx context.Context, chatID ChatID, userID int64) (ChatMember, error) {
	req := NewRequest("getChatMember").
		Set("chat_id", chatID).
		Set("user_id", userID)
	return Invoke(ctx, c, req, Union(ChatMemberFamily))
}

// GetChatAdministrators lists the administrators of a chat, bots excluded.
func (c *Client) GetChatAdministrators(ctx context.Context, chatID ChatID) ([]ChatMember, error) {
	req := NewRequest("getChatAdministrators").Set("chat_id", chatID)
	return Invoke(ctx, c, req, ListOf(Union(ChatMemberFamily)))
}

// GetChatMemberCount returns the number of members in a chat.
func (c *Client) GetChatMemberCount(ctx context.Context, chatID ChatID) (int64, error) {
	req := NewRequest("getChatMemberCount").Set("chat_id", chatID)
	return Invoke(ctx, c, req, Int())
}

// ExportChatInviteLink revokes the primary invite link and returns a new one.
func (c *Client) ExportChatInviteLink(ctx context.Context, chatID ChatID) (string, error) {
	req := NewRequest("exportChatInviteLink").Set("chat_id", chatID)
	return Invoke(ctx, c, req, String())
}

// GetFile prepares a file for download; see DownloadURL.
func (c *Client) GetFile(ctx context.Context, fileID string) (File, error) {
	slog.Debug("telegram API getFile", "component", "telegram", "operation", "get_file", "file_id", fileID)
	req := NewRequest("getFile").Set("file_id", fileID)
	return Invoke(ctx, c, req, Object[File]())
}

// SendDocumentOptions are the optional parameters of SendDocument.
type SendDocumentOptions struct {
	Thumbnail                   *InputFile
	Caption                     string
	ParseMode                   string
	DisableContentTypeDetection bool
	DisableNotification         bool
	ReplyMarkup                 *InlineKeyboardMarkup
}

// SendDocument sends a general file. Local uploads must be registered in
// files; files may be nil when document and thumbnail are remote.
func (c *Client) SendDocument(ctx context.Context, chatID ChatID, document InputFile, files *Attachments, opts *SendDocumentOptions) (Message, error) {
	if opts == nil {
		opts = &SendDocumentOptions{}
	}
	req := NewRequest("sendDocument").
		Set("chat_id", chatID).
		Set("document", document).
		Set("thumbnail", opts.Thumbnail).
		Set("caption", optional(opts.Caption)).
		Set("parse_mode", optional(opts.ParseMode)).
		Set("disable_content_type_detection", optional(opts.DisableContentTypeDetection)).
		Set("disable_notification", optional(opts.DisableNotification)).
		Set("reply_markup", opts.ReplyMarkup)
	req.Files = files
	return Invoke(ctx, c, req, Object[Message]())
}

// SendMediaGroup sends 2 to 10 media as an album.
func (c *Client) SendMediaGroup(ctx context.Context, chatID ChatID, media []InputMedia, files *Attachments) ([]Message, error) {
	req := NewRequest("sendMediaGroup").
		Set("chat_id", chatID).
		Set("media", media)
	req.Files = files
	return Invoke(ctx, c, req, ListOf(Object[Message]()))
}

// AnswerInlineQueryOptions are the optional parameters of AnswerInlineQuery.
type AnswerInlineQueryOptions struct {
	// CacheTime in seconds; nil keeps the server default of 300.
	CacheTime  *int
	IsPersonal bool
	NextOffset string
}

// AnswerInlineQuery sends the results for an inline query.
func (c *Client) AnswerInlineQuery(ctx context.Context, queryID string, results []InlineQueryResult, opts *AnswerInlineQueryOptions) error {
	if opts == nil {
		opts = &AnswerInlineQueryOptions{}
	}
	req := NewRequest("answerInlineQuery").
		Set("inline_query_id", queryID).
		Set("results", results).
		Set("cache_time", opts.CacheTime).
		Set("is_personal", optional(opts.IsPersonal)).
		Set("next_offset", optional(opts.NextOffset))
	_, err := Invoke(ctx, c, req, True())
	return err
}

// SetMyCommands sets the command list for scope. A nil scope is the default
// scope; an empty languageCode applies to all users without a dedicated list.
func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand, scope BotCommandScope, languageCode string) error {
	req := NewRequest("setMyCommands").
		Set("commands", commands).
		Set("scope", scope).
		Set("language_code", optional(languageCode))
	_, err := Invoke(ctx, c, req, True())
	return err
}

// GetMyCommands returns the command list for scope and languageCode.
func (c *Client) GetMyCommands(ctx context.Context, scope BotCommandScope, languageCode string) ([]BotCommand, error) {
	req := NewRequest("getMyCommands").
		Set("scope", scope).
		Set("language_code", optional(languageCode))
	return Invoke(ctx, c, req, ListOf(Object[BotCommand]()))
}

// SetChatMenuButton changes the menu button of a private chat, or the
// default button when chatID is 0.
func (c *Client) SetChatMenuButton(ctx context.Context, chatID int64, button MenuButton) error {
	req := NewRequest("setChatMenuButton").
		Set("chat_id", optional(chatID)).
		Set("menu_button", button)
	_, err := Invoke(ctx, c, req, True())
	return err
}

// GetChatMenuButton returns the menu button of a private chat, or the
// default one when chatID is zero.
func (c *Client) GetChatMenuButton(ctx context.Context, chatID int64) (MenuButton, error) {
	req := NewRequest("getChatMenuButton").Set("chat_id", optional(chatID))
	return Invoke(ctx, c, req, Union(MenuButtonFamily))
}

// GetStarTransactions pages through the bot's Star transactions. Zero
// values keep the server defaults.
func (c *Client) GetStarTransactions(ctx context.Context, offset, limit int) (StarTransactions, error) {
	req := NewRequest("getStarTransactions").
		Set("offset", optional(offset)).
		Set("limit", optional(limit))
	return Invoke(ctx, c, req, Object[StarTransactions]())
}

// GetUserChatBoosts lists the boosts a user added to a chat.
func (c *Client) GetUserChatBoosts(ctx context.Context, chatID ChatID, userID int64) (UserChatBoosts, error) {
	req := NewRequest("getUserChatBoosts").
		Set("chat_id", chatID).
		Set("user_id", userID)
	return Invoke(ctx, c, req, Object[UserChatBoosts]())
}

// SetPassportDataErrors tells a user that some Passport elements must be
// resubmitted.
func (c *Client) SetPassportDataErrors(ctx context.Context, userID int64, errs []PassportElementError) error {
	req := NewRequest("setPassportDataErrors").
		Set("user_id", userID).
		Set("errors", errs)
	_, err := Invoke(ctx, c, req, True())
	return err
}

// GetUpdatesOptions are the parameters of GetUpdates.
type GetUpdatesOptions struct {
	Offset int64
	Limit  int
	// Timeout is the long-polling wait in seconds.
	Timeout        int
	AllowedUpdates []string
}

// pollGrace is added to the long-polling wait when bounding the read.
const pollGrace = 5 * time.Second

// GetUpdates fetches pending updates. The read and total timeouts of the
// call are stretched by the long-polling wait so an idle poll is not
// mistaken for a timeout.
func (c *Client) GetUpdates(ctx context.Context, opts GetUpdatesOptions) ([]Update, error) {
	return Invoke(ctx, c, c.getUpdatesRequest(opts), ListOf(Object[Update]()))
}

func (c *Client) getUpdatesRequest(opts GetUpdatesOptions) *Request {
	req := NewRequest("getUpdates").
		Set("offset", optional(opts.Offset)).
		Set("limit", optional(opts.Limit)).
		Set("timeout", optional(opts.Timeout)).
		Set("allowed_updates", opts.AllowedUpdates)
	if opts.Timeout > 0 {
		wait := time.Duration(opts.Timeout)*time.Second + pollGrace
		t := c.opts.Timeouts
		req.Timeouts = Timeouts{Connect: t.Connect, Read: t.Read + wait, Total: t.Total + wait}
	}
	return req
}
