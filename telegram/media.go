package telegram

import (
	"encoding/json"
	"fmt"
)

// PaidMedia is one item of paid media, visible in full only after purchase.
type PaidMedia interface {
	Value
	Type() string
}

var PaidMediaFamily = NewFamily("PaidMedia", "type", map[string]Factory[PaidMedia]{
	"preview": Variant[PaidMedia, PaidMediaPreview](),
	"photo":   Variant[PaidMedia, PaidMediaPhoto](),
	"video":   Variant[PaidMedia, PaidMediaVideo](),
})

type PaidMediaPreview struct {
	Width    int `json:"width,omitempty"`
	Height   int `json:"height,omitempty"`
	Duration int `json:"duration,omitempty"`
}

func (m PaidMediaPreview) Type() string { return "preview" }

func (m PaidMediaPreview) MarshalJSON() ([]byte, error) {
	type plain PaidMediaPreview
	return marshalTagged("type", m.Type(), plain(m))
}

type PaidMediaPhoto struct {
	Photo []PhotoSize `json:"photo"`
}

func (m PaidMediaPhoto) Type() string { return "photo" }

func (m PaidMediaPhoto) MarshalJSON() ([]byte, error) {
	type plain PaidMediaPhoto
	return marshalTagged("type", m.Type(), plain(m))
}

type PaidMediaVideo struct {
	Video Video `json:"video"`
}

func (m PaidMediaVideo) Type() string { return "video" }

func (m PaidMediaVideo) MarshalJSON() ([]byte, error) {
	type plain PaidMediaVideo
	return marshalTagged("type", m.Type(), plain(m))
}

type PaidMediaInfo struct {
	StarCount int         `json:"star_count"`
	PaidMedia []PaidMedia `json:"paid_media"`
}

func (i PaidMediaInfo) MarshalJSON() ([]byte, error) {
	type plain PaidMediaInfo
	if i.PaidMedia == nil {
		i.PaidMedia = []PaidMedia{}
	}
	return json.Marshal(plain(i))
}

func (i *PaidMediaInfo) UnmarshalJSON(data []byte) error {
	type plain PaidMediaInfo
	var aux struct {
		*plain
		PaidMedia []json.RawMessage `json:"paid_media"`
	}
	aux.plain = (*plain)(i)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	media, err := resolveAll(PaidMediaFamily.Resolve, aux.PaidMedia)
	if err != nil {
		return fmt.Errorf("paid_media%w", err)
	}
	i.PaidMedia = media
	return nil
}

// InputMedia is one item of an outgoing media group. Media may be a file_id,
// a URL or an attach:// reference from the request's Attachments.
type InputMedia interface {
	Value
	Type() string
}

var InputMediaFamily = NewFamily("InputMedia", "type", map[string]Factory[InputMedia]{
	"photo":     Variant[InputMedia, InputMediaPhoto](),
	"video":     Variant[InputMedia, InputMediaVideo](),
	"animation": Variant[InputMedia, InputMediaAnimation](),
	"audio":     Variant[InputMedia, InputMediaAudio](),
	"document":  Variant[InputMedia, InputMediaDocument](),
})

type InputMediaPhoto struct {
	Media           InputFile       `json:"media"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       string          `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	HasSpoiler      bool            `json:"has_spoiler,omitempty"`
}

func (m InputMediaPhoto) Type() string { return "photo" }

func (m InputMediaPhoto) MarshalJSON() ([]byte, error) {
	type plain InputMediaPhoto
	return marshalTagged("type", m.Type(), plain(m))
}

type InputMediaVideo struct {
	Media             InputFile       `json:"media"`
	Thumbnail         *InputFile      `json:"thumbnail,omitempty"`
	Caption           string          `json:"caption,omitempty"`
	ParseMode         string          `json:"parse_mode,omitempty"`
	CaptionEntities   []MessageEntity `json:"caption_entities,omitempty"`
	Width             int             `json:"width,omitempty"`
	Height            int             `json:"height,omitempty"`
	Duration          int             `json:"duration,omitempty"`
	SupportsStreaming bool            `json:"supports_streaming,omitempty"`
	HasSpoiler        bool            `json:"has_spoiler,omitempty"`
}

func (m InputMediaVideo) Type() string { return "video" }

func (m InputMediaVideo) MarshalJSON() ([]byte, error) {
	type plain InputMediaVideo
	return marshalTagged("type", m.Type(), plain(m))
}

type InputMediaAnimation struct {
	Media           InputFile       `json:"media"`
	Thumbnail       *InputFile      `json:"thumbnail,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       string          `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	Width           int             `json:"width,omitempty"`
	Height          int             `json:"height,omitempty"`
	Duration        int             `json:"duration,omitempty"`
	HasSpoiler      bool            `json:"has_spoiler,omitempty"`
}

func (m InputMediaAnimation) Type() string { return "animation" }

func (m InputMediaAnimation) MarshalJSON() ([]byte, error) {
	type plain InputMediaAnimation
	return marshalTagged("type", m.Type(), plain(m))
}

type InputMediaAudio struct {
	Media           InputFile       `json:"media"`
	Thumbnail       *InputFile      `json:"thumbnail,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	ParseMode       string          `json:"parse_mode,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	Duration        int             `json:"duration,omitempty"`
	Performer       string          `json:"performer,omitempty"`
	Title           string          `json:"title,omitempty"`
}

func (m InputMediaAudio) Type() string { return "audio" }

func (m InputMediaAudio) MarshalJSON() ([]byte, error) {
	type plain InputMediaAudio
	return marshalTagged("type", m.Type(), plain(m))
}

type InputMediaDocument struct {
	Media                       InputFile       `json:"media"`
	Thumbnail                   *InputFile      `json:"thumbnail,omitempty"`
	Caption                     string          `json:"caption,omitempty"`
	ParseMode                   string          `json:"parse_mode,omitempty"`
	CaptionEntities             []MessageEntity `json:"caption_entities,omitempty"`
	DisableContentTypeDetection bool            `json:"disable_content_type_detection,omitempty"`
}

func (m InputMediaDocument) Type() string { return "document" }

func (m InputMediaDocument) MarshalJSON() ([]byte, error) {
	type plain InputMediaDocument
	return marshalTagged("type", m.Type(), plain(m))
}
