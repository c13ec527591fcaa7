package telegram

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// User is a Telegram user or bot.
type User struct {
	ID                      int64  `json:"id"`
	IsBot                   bool   `json:"is_bot"`
	FirstName               string `json:"first_name"`
	LastName                string `json:"last_name,omitempty"`
	Username                string `json:"username,omitempty"`
	LanguageCode            string `json:"language_code,omitempty"`
	IsPremium               bool   `json:"is_premium,omitempty"`
	CanJoinGroups           bool   `json:"can_join_groups,omitempty"`
	CanReadAllGroupMessages bool   `json:"can_read_all_group_messages,omitempty"`
	SupportsInlineQueries   bool   `json:"supports_inline_queries,omitempty"`
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return json.Marshal(plain(u))
}

// Chat is a private chat, group, supergroup or channel.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsForum   bool   `json:"is_forum,omitempty"`
}

func (c Chat) MarshalJSON() ([]byte, error) {
	type plain Chat
	return json.Marshal(plain(c))
}

// ChatID identifies a chat by numeric ID or by @username.
type ChatID struct {
	id       int64
	username string
}

// ChatIDInt is a numeric chat identifier.
func ChatIDInt(id int64) ChatID { return ChatID{id: id} }

// ChatUsername is a public @username of a channel or supergroup.
func ChatUsername(name string) ChatID { return ChatID{username: name} }

func (c ChatID) String() string {
	if c.username != "" {
		return c.username
	}
	return strconv.FormatInt(c.id, 10)
}

func (c ChatID) MarshalJSON() ([]byte, error) {
	if c.username != "" {
		return json.Marshal(c.username)
	}
	return json.Marshal(c.id)
}

func (c *ChatID) UnmarshalJSON(b []byte) error {
	switch kindOf(b) {
	case "string":
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = ChatUsername(s)
	case "number":
		var n int64
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*c = ChatIDInt(n)
	default:
		return &ShapeError{Want: "chat id", Got: kindOf(b)}
	}
	return nil
}

// MessageEntity is one special entity in a text message.
type MessageEntity struct {
	Type          string `json:"type"`
	Offset        int    `json:"offset"`
	Length        int    `json:"length"`
	URL           string `json:"url,omitempty"`
	User          *User  `json:"user,omitempty"`
	Language      string `json:"language,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`
}

func (e MessageEntity) MarshalJSON() ([]byte, error) {
	type plain MessageEntity
	return json.Marshal(plain(e))
}

type PhotoSize struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	FileSize     int64  `json:"file_size,omitempty"`
}

func (p PhotoSize) MarshalJSON() ([]byte, error) {
	type plain PhotoSize
	return json.Marshal(plain(p))
}

type Document struct {
	FileID       string     `json:"file_id"`
	FileUniqueID string     `json:"file_unique_id"`
	Thumbnail    *PhotoSize `json:"thumbnail,omitempty"`
	FileName     string     `json:"file_name,omitempty"`
	MimeType     string     `json:"mime_type,omitempty"`
	FileSize     int64      `json:"file_size,omitempty"`
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return json.Marshal(plain(d))
}

type Audio struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	Duration     int    `json:"duration"`
	Performer    string `json:"performer,omitempty"`
	Title        string `json:"title,omitempty"`
	FileName     string `json:"file_name,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
}

func (a Audio) MarshalJSON() ([]byte, error) {
	type plain Audio
	return json.Marshal(plain(a))
}

type Voice struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	Duration     int    `json:"duration"`
	MimeType     string `json:"mime_type,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
}

func (v Voice) MarshalJSON() ([]byte, error) {
	type plain Voice
	return json.Marshal(plain(v))
}

type Video struct {
	FileID       string     `json:"file_id"`
	FileUniqueID string     `json:"file_unique_id"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Duration     int        `json:"duration"`
	Thumbnail    *PhotoSize `json:"thumbnail,omitempty"`
	FileName     string     `json:"file_name,omitempty"`
	MimeType     string     `json:"mime_type,omitempty"`
	FileSize     int64      `json:"file_size,omitempty"`
}

func (v Video) MarshalJSON() ([]byte, error) {
	type plain Video
	return json.Marshal(plain(v))
}

type Animation struct {
	FileID       string     `json:"file_id"`
	FileUniqueID string     `json:"file_unique_id"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Duration     int        `json:"duration"`
	Thumbnail    *PhotoSize `json:"thumbnail,omitempty"`
	FileName     string     `json:"file_name,omitempty"`
	MimeType     string     `json:"mime_type,omitempty"`
	FileSize     int64      `json:"file_size,omitempty"`
}

func (a Animation) MarshalJSON() ([]byte, error) {
	type plain Animation
	return json.Marshal(plain(a))
}

type Sticker struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	Type         string `json:"type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	IsAnimated   bool   `json:"is_animated"`
	IsVideo      bool   `json:"is_video"`
	Emoji        string `json:"emoji,omitempty"`
	SetName      string `json:"set_name,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
}

func (s Sticker) MarshalJSON() ([]byte, error) {
	type plain Sticker
	return json.Marshal(plain(s))
}

// File is a file ready to be downloaded; see Client.DownloadURL.
type File struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	FileSize     int64  `json:"file_size,omitempty"`
	FilePath     string `json:"file_path,omitempty"`
}

func (f File) MarshalJSON() ([]byte, error) {
	type plain File
	return json.Marshal(plain(f))
}

type Location struct {
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	HorizontalAccuracy   float64 `json:"horizontal_accuracy,omitempty"`
	LivePeriod           int     `json:"live_period,omitempty"`
	Heading              int     `json:"heading,omitempty"`
	ProximityAlertRadius int     `json:"proximity_alert_radius,omitempty"`
}

func (l Location) MarshalJSON() ([]byte, error) {
	type plain Location
	return json.Marshal(plain(l))
}

type Venue struct {
	Location     Location `json:"location"`
	Title        string   `json:"title"`
	Address      string   `json:"address"`
	FoursquareID string   `json:"foursquare_id,omitempty"`
}

func (v Venue) MarshalJSON() ([]byte, error) {
	type plain Venue
	return json.Marshal(plain(v))
}

type Contact struct {
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	UserID      int64  `json:"user_id,omitempty"`
	VCard       string `json:"vcard,omitempty"`
}

func (c Contact) MarshalJSON() ([]byte, error) {
	type plain Contact
	return json.Marshal(plain(c))
}

// LabeledPrice is one price portion, in the smallest currency unit.
type LabeledPrice struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

func (p LabeledPrice) MarshalJSON() ([]byte, error) {
	type plain LabeledPrice
	return json.Marshal(plain(p))
}

type WebAppInfo struct {
	URL string `json:"url"`
}

func (w WebAppInfo) MarshalJSON() ([]byte, error) {
	type plain WebAppInfo
	return json.Marshal(plain(w))
}

type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

func (b BotCommand) MarshalJSON() ([]byte, error) {
	type plain BotCommand
	return json.Marshal(plain(b))
}

type InlineKeyboardButton struct {
	Text                         string      `json:"text"`
	URL                          string      `json:"url,omitempty"`
	CallbackData                 string      `json:"callback_data,omitempty"`
	WebApp                       *WebAppInfo `json:"web_app,omitempty"`
	SwitchInlineQuery            *string     `json:"switch_inline_query,omitempty"`
	SwitchInlineQueryCurrentChat *string     `json:"switch_inline_query_current_chat,omitempty"`
	Pay                          bool        `json:"pay,omitempty"`
}

func (b InlineKeyboardButton) MarshalJSON() ([]byte, error) {
	type plain InlineKeyboardButton
	return json.Marshal(plain(b))
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

func (m InlineKeyboardMarkup) MarshalJSON() ([]byte, error) {
	type plain InlineKeyboardMarkup
	if m.InlineKeyboard == nil {
		m.InlineKeyboard = [][]InlineKeyboardButton{}
	}
	return json.Marshal(plain(m))
}

// ResponseParameters explain why a request failed and how to recover.
type ResponseParameters struct {
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
	RetryAfter      int   `json:"retry_after,omitempty"`
}

func (p ResponseParameters) MarshalJSON() ([]byte, error) {
	type plain ResponseParameters
	return json.Marshal(plain(p))
}

func (p ResponseParameters) String() string {
	return fmt.Sprintf("retry_after=%d migrate_to_chat_id=%d", p.RetryAfter, p.MigrateToChatID)
}
