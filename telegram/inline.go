package telegram

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// InlineQuery is an incoming inline query.
type InlineQuery struct {
	ID       string    `json:"id"`
	From     User      `json:"from"`
	Query    string    `json:"query"`
	Offset   string    `json:"offset"`
	ChatType string    `json:"chat_type,omitempty"`
	Location *Location `json:"location,omitempty"`
}

func (q InlineQuery) MarshalJSON() ([]byte, error) {
	type plain InlineQuery
	return json.Marshal(plain(q))
}

// InputMessageContent is the content of a message sent as the result of an
// inline query. The Bot API sends no discriminator for it; see
// InputMessageContentFamily.
type InputMessageContent interface {
	Value
	inputMessageContent()
}

// InputMessageContentFamily resolves InputMessageContent by the fields
// present. Rules are fragile: venue must be probed before location since a
// venue also carries latitude and longitude.
var InputMessageContentFamily = Structural("InputMessageContent",
	Rule[InputMessageContent]{Match: HasField("message_text"), New: Variant[InputMessageContent, InputTextMessageContent]()},
	Rule[InputMessageContent]{Match: HasAll("latitude", "longitude", "title", "address"), New: Variant[InputMessageContent, InputVenueMessageContent]()},
	Rule[InputMessageContent]{Match: HasAll("latitude", "longitude"), New: Variant[InputMessageContent, InputLocationMessageContent]()},
	Rule[InputMessageContent]{Match: HasField("phone_number"), New: Variant[InputMessageContent, InputContactMessageContent]()},
	Rule[InputMessageContent]{Match: HasAll("payload", "currency", "prices"), New: Variant[InputMessageContent, InputInvoiceMessageContent]()},
)

// InputTextMessageContent is a text message sent as an inline result.
type InputTextMessageContent struct {
	MessageText string          `json:"message_text"`
	ParseMode   string          `json:"parse_mode,omitempty"`
	Entities    []MessageEntity `json:"entities,omitempty"`
}

func (InputTextMessageContent) inputMessageContent() {}

func (c InputTextMessageContent) MarshalJSON() ([]byte, error) {
	type plain InputTextMessageContent
	return json.Marshal(plain(c))
}

// InputLocationMessageContent is a location message.
type InputLocationMessageContent struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	LivePeriod int     `json:"live_period,omitempty"`
}

func (InputLocationMessageContent) inputMessageContent() {}

func (c InputLocationMessageContent) MarshalJSON() ([]byte, error) {
	type plain InputLocationMessageContent
	return json.Marshal(plain(c))
}

// InputVenueMessageContent is a venue message.
type InputVenueMessageContent struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Title        string  `json:"title"`
	Address      string  `json:"address"`
	FoursquareID string  `json:"foursquare_id,omitempty"`
}

func (InputVenueMessageContent) inputMessageContent() {}

func (c InputVenueMessageContent) MarshalJSON() ([]byte, error) {
	type plain InputVenueMessageContent
	return json.Marshal(plain(c))
}

// InputContactMessageContent is a contact message.
type InputContactMessageContent struct {
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	VCard       string `json:"vcard,omitempty"`
}

func (InputContactMessageContent) inputMessageContent() {}

func (c InputContactMessageContent) MarshalJSON() ([]byte, error) {
	type plain InputContactMessageContent
	return json.Marshal(plain(c))
}

// InputInvoiceMessageContent is an invoice message.
type InputInvoiceMessageContent struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Payload       string         `json:"payload"`
	ProviderToken string         `json:"provider_token,omitempty"`
	Currency      string         `json:"currency"`
	Prices        []LabeledPrice `json:"prices"`
}

func (InputInvoiceMessageContent) inputMessageContent() {}

func (c InputInvoiceMessageContent) MarshalJSON() ([]byte, error) {
	type plain InputInvoiceMessageContent
	return json.Marshal(plain(c))
}

// InlineQueryResult is one answer to an inline query.
type InlineQueryResult interface {
	Value
	Type() string
	ResultID() string
}

// InlineResultCommon holds the members every inline result carries.
type InlineResultCommon struct {
	ID                  string                `json:"id"`
	ReplyMarkup         *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	InputMessageContent InputMessageContent   `json:"input_message_content,omitempty"`
}

func (c InlineResultCommon) ResultID() string { return c.ID }

func (c *InlineResultCommon) common() *InlineResultCommon { return c }

// inlineVariant decodes an inline result into V, resolving the nested
// input_message_content separately since it carries no discriminator.
func inlineVariant[V any, PV interface {
	*V
	common() *InlineResultCommon
}]() Factory[InlineQueryResult] {
	return func(data []byte) (InlineQueryResult, error) {
		fields, err := decodeObject(data)
		if err != nil {
			return nil, err
		}
		content := fields["input_message_content"]
		delete(fields, "input_message_content")
		rest, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}

		var v V
		if err := json.Unmarshal(rest, &v); err != nil {
			return nil, err
		}
		imc, err := resolveOptional[InputMessageContent](InputMessageContentFamily, content)
		if err != nil {
			return nil, fmt.Errorf("input_message_content: %w", err)
		}
		PV(&v).common().InputMessageContent = imc

		r, ok := any(v).(InlineQueryResult)
		if !ok {
			return nil, fmt.Errorf("%s does not implement InlineQueryResult", reflect.TypeFor[V]())
		}
		return r, nil
	}
}

// InlineQueryResultFamily resolves inline results by "type". Seven types
// come in a cached flavour (a file_id member) and a fresh one (a URL
// member) under the same type value; those are split structurally, which
// is fragile if the Bot API ever adds the other flavour's member to one.
var InlineQueryResultFamily = NewFamily("InlineQueryResult", "type", map[string]Factory[InlineQueryResult]{
	"article": inlineVariant[InlineQueryResultArticle](),
	"photo": Structural("InlineQueryResult(photo)",
		Rule[InlineQueryResult]{Match: HasField("photo_file_id"), New: inlineVariant[InlineQueryResultCachedPhoto]()},
		Rule[InlineQueryResult]{Match: HasField("photo_url"), New: inlineVariant[InlineQueryResultPhoto]()},
	),
	"gif": Structural("InlineQueryResult(gif)",
		Rule[InlineQueryResult]{Match: HasField("gif_file_id"), New: inlineVariant[InlineQueryResultCachedGif]()},
		Rule[InlineQueryResult]{Match: HasField("gif_url"), New: inlineVariant[InlineQueryResultGif]()},
	),
	"mpeg4_gif": Structural("InlineQueryResult(mpeg4_gif)",
		Rule[InlineQueryResult]{Match: HasField("mpeg4_file_id"), New: inlineVariant[InlineQueryResultCachedMpeg4Gif]()},
		Rule[InlineQueryResult]{Match: HasField("mpeg4_url"), New: inlineVariant[InlineQueryResultMpeg4Gif]()},
	),
	"video": Structural("InlineQueryResult(video)",
		Rule[InlineQueryResult]{Match: HasField("video_file_id"), New: inlineVariant[InlineQueryResultCachedVideo]()},
		Rule[InlineQueryResult]{Match: HasField("video_url"), New: inlineVariant[InlineQueryResultVideo]()},
	),
	"audio": Structural("InlineQueryResult(audio)",
		Rule[InlineQueryResult]{Match: HasField("audio_file_id"), New: inlineVariant[InlineQueryResultCachedAudio]()},
		Rule[InlineQueryResult]{Match: HasField("audio_url"), New: inlineVariant[InlineQueryResultAudio]()},
	),
	"voice": Structural("InlineQueryResult(voice)",
		Rule[InlineQueryResult]{Match: HasField("voice_file_id"), New: inlineVariant[InlineQueryResultCachedVoice]()},
		Rule[InlineQueryResult]{Match: HasField("voice_url"), New: inlineVariant[InlineQueryResultVoice]()},
	),
	"document": Structural("InlineQueryResult(document)",
		Rule[InlineQueryResult]{Match: HasField("document_file_id"), New: inlineVariant[InlineQueryResultCachedDocument]()},
		Rule[InlineQueryResult]{Match: HasField("document_url"), New: inlineVariant[InlineQueryResultDocument]()},
	),
	"sticker":  inlineVariant[InlineQueryResultCachedSticker](),
	"location": inlineVariant[InlineQueryResultLocation](),
	"venue":    inlineVariant[InlineQueryResultVenue](),
	"contact":  inlineVariant[InlineQueryResultContact](),
})

// InlineQueryResultArticle links to an article or web page.
type InlineQueryResultArticle struct {
	InlineResultCommon
	Title        string `json:"title"`
	URL          string `json:"url,omitempty"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

func (r InlineQueryResultArticle) Type() string { return "article" }

func (r InlineQueryResultArticle) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultArticle
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultPhoto links to a photo by URL.
type InlineQueryResultPhoto struct {
	InlineResultCommon
	PhotoURL     string `json:"photo_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	PhotoWidth   int    `json:"photo_width,omitempty"`
	PhotoHeight  int    `json:"photo_height,omitempty"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Caption      string `json:"caption,omitempty"`
	ParseMode    string `json:"parse_mode,omitempty"`
}

func (r InlineQueryResultPhoto) Type() string { return "photo" }

func (r InlineQueryResultPhoto) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultPhoto
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultCachedPhoto is a photo already on the Telegram servers.
type InlineQueryResultCachedPhoto struct {
	InlineResultCommon
	PhotoFileID string `json:"photo_file_id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Caption     string `json:"caption,omitempty"`
	ParseMode   string `json:"parse_mode,omitempty"`
}

func (r InlineQueryResultCachedPhoto) Type() string { return "photo" }

func (r InlineQueryResultCachedPhoto) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedPhoto
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultGif links to an animated GIF.
type InlineQueryResultGif struct {
	InlineResultCommon
	GifURL       string `json:"gif_url"`
	GifWidth     int    `json:"gif_width,omitempty"`
	GifHeight    int    `json:"gif_height,omitempty"`
	GifDuration  int    `json:"gif_duration,omitempty"`
	ThumbnailURL string `json:"thumbnail_url"`
	Title        string `json:"title,omitempty"`
	Caption      string `json:"caption,omitempty"`
	ParseMode    string `json:"parse_mode,omitempty"`
}

func (r InlineQueryResultGif) Type() string { return "gif" }

func (r InlineQueryResultGif) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultGif
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultCachedGif is a stored animated GIF.
type InlineQueryResultCachedGif struct {
	InlineResultCommon
	GifFileID string `json:"gif_file_id"`
	Title     string `json:"title,omitempty"`
	Caption   string `json:"caption,omitempty"`
	ParseMode string `json:"parse_mode,omitempty"`
}

func (r InlineQueryResultCachedGif) Type() string { return "gif" }

func (r InlineQueryResultCachedGif) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedGif
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultMpeg4Gif links to a soundless H.264 animation.
type InlineQueryResultMpeg4Gif struct {
	InlineResultCommon
	Mpeg4URL      string `json:"mpeg4_url"`
	Mpeg4Width    int    `json:"mpeg4_width,omitempty"`
	Mpeg4Height   int    `json:"mpeg4_height,omitempty"`
	Mpeg4Duration int    `json:"mpeg4_duration,omitempty"`
	ThumbnailURL  string `json:"thumbnail_url"`
	Title         string `json:"title,omitempty"`
	Caption       string `json:"caption,omitempty"`
	ParseMode     string `json:"parse_mode,omitempty"`
}

func (r InlineQueryResultMpeg4Gif) Type() string { return "mpeg4_gif" }

func (r InlineQueryResultMpeg4Gif) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultMpeg4Gif
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultCachedMpeg4Gif is a stored soundless H.264 animation.
type InlineQueryResultCachedMpeg4Gif struct {
	InlineResultCommon
	Mpeg4FileID string `json:"mpeg4_file_id"`
	Title       string `json:"title,omitempty"`
	Caption     string `json:"caption,omitempty"`
	ParseMode   string `json:"parse_mode,omitempty"`
}

func (r InlineQueryResultCachedMpeg4Gif) Type() string { return "mpeg4_gif" }

func (r InlineQueryResultCachedMpeg4Gif) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedMpeg4Gif
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultVideo links to a video player or file.
type InlineQueryResultVideo struct {
	InlineResultCommon
	VideoURL      string `json:"video_url"`
	MimeType      string `json:"mime_type"`
	ThumbnailURL  string `json:"thumbnail_url"`
	Title         string `json:"title"`
	Caption       string `json:"caption,omitempty"`
	ParseMode     string `json:"parse_mode,omitempty"`
	VideoWidth    int    `json:"video_width,omitempty"`
	VideoHeight   int    `json:"video_height,omitempty"`
	VideoDuration int    `json:"video_duration,omitempty"`
	Description   string `json:"description,omitempty"`
}

func (r InlineQueryResultVideo) Type() string { return "video" }

func (r InlineQueryResultVideo) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultVideo
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultCachedVideo is a stored video file.
type InlineQueryResultCachedVideo struct {
	InlineResultCommon
	VideoFileID string `json:"video_file_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Caption     string `json:"caption,omitempty"`
	ParseMode   string `json:"parse_mode,omitempty"`
}

func (r InlineQueryResultCachedVideo) Type() string { return "video" }

func (r InlineQueryResultCachedVideo) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedVideo
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultAudio links to an MP3 file.
type InlineQueryResultAudio struct {
	InlineResultCommon
	AudioURL      string `json:"audio_url"`
	Title         string `json:"title"`
	Caption       string `json:"caption,omitempty"`
	ParseMode     string `json:"parse_mode,omitempty"`
	Performer     string `json:"performer,omitempty"`
	AudioDuration int    `json:"audio_duration,omitempty"`
}

func (r InlineQueryResultAudio) Type() string { return "audio" }

func (r InlineQueryResultAudio) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultAudio
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultCachedAudio is a stored MP3 file.
type InlineQueryResultCachedAudio struct {
	InlineResultCommon
	AudioFileID string `json:"audio_file_id"`
	Caption     string `json:"caption,omitempty"`
	ParseMode   string `json:"parse_mode,omitempty"`
}

func (r InlineQueryResultCachedAudio) Type() string { return "audio" }

func (r InlineQueryResultCachedAudio) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedAudio
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultVoice links to an OGG/Opus voice recording.
type InlineQueryResultVoice struct {
	InlineResultCommon
	VoiceURL      string `json:"voice_url"`
	Title         string `json:"title"`
	Caption       string `json:"caption,omitempty"`
	ParseMode     string `json:"parse_mode,omitempty"`
	VoiceDuration int    `json:"voice_duration,omitempty"`
}

func (r InlineQueryResultVoice) Type() string { return "voice" }

func (r InlineQueryResultVoice) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultVoice
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultCachedVoice is a stored voice message.
type InlineQueryResultCachedVoice struct {
	InlineResultCommon
	VoiceFileID string `json:"voice_file_id"`
	Title       string `json:"title"`
	Caption     string `json:"caption,omitempty"`
	ParseMode   string `json:"parse_mode,omitempty"`
}

func (r InlineQueryResultCachedVoice) Type() string { return "voice" }

func (r InlineQueryResultCachedVoice) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedVoice
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultDocument links to a PDF or ZIP file.
type InlineQueryResultDocument struct {
	InlineResultCommon
	Title        string `json:"title"`
	DocumentURL  string `json:"document_url"`
	MimeType     string `json:"mime_type"`
	Description  string `json:"description,omitempty"`
	Caption      string `json:"caption,omitempty"`
	ParseMode    string `json:"parse_mode,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

func (r InlineQueryResultDocument) Type() string { return "document" }

func (r InlineQueryResultDocument) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultDocument
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultCachedDocument is a stored file.
type InlineQueryResultCachedDocument struct {
	InlineResultCommon
	Title          string `json:"title"`
	DocumentFileID string `json:"document_file_id"`
	Description    string `json:"description,omitempty"`
	Caption        string `json:"caption,omitempty"`
	ParseMode      string `json:"parse_mode,omitempty"`
}

func (r InlineQueryResultCachedDocument) Type() string { return "document" }

func (r InlineQueryResultCachedDocument) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedDocument
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultCachedSticker is a stored sticker.
type InlineQueryResultCachedSticker struct {
	InlineResultCommon
	StickerFileID string `json:"sticker_file_id"`
}

func (r InlineQueryResultCachedSticker) Type() string { return "sticker" }

func (r InlineQueryResultCachedSticker) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultCachedSticker
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultLocation is a point on the map.
type InlineQueryResultLocation struct {
	InlineResultCommon
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Title        string  `json:"title"`
	LivePeriod   int     `json:"live_period,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
}

func (r InlineQueryResultLocation) Type() string { return "location" }

func (r InlineQueryResultLocation) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultLocation
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultVenue is a named place.
type InlineQueryResultVenue struct {
	InlineResultCommon
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Title        string  `json:"title"`
	Address      string  `json:"address"`
	FoursquareID string  `json:"foursquare_id,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
}

func (r InlineQueryResultVenue) Type() string { return "venue" }

func (r InlineQueryResultVenue) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultVenue
	return marshalTagged("type", r.Type(), plain(r))
}

// InlineQueryResultContact is a phone contact.
type InlineQueryResultContact struct {
	InlineResultCommon
	PhoneNumber  string `json:"phone_number"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	VCard        string `json:"vcard,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

func (r InlineQueryResultContact) Type() string { return "contact" }

func (r InlineQueryResultContact) MarshalJSON() ([]byte, error) {
	type plain InlineQueryResultContact
	return marshalTagged("type", r.Type(), plain(r))
}
